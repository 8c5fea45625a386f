package moderation

// Texts are the messages posted by moderation.
type Texts struct {
	// ProfileAlert is formatted with the user id, username and profile snapshot.
	ProfileAlert    string
	UnknownUsername string
	BanButton       string
	AllowButton     string
	Banned          string
	// BanFailed is formatted with the ban error.
	BanFailed string
	Allowed   string
}

// DefaultTexts returns the stock moderation messages.
func DefaultTexts() Texts {
	return Texts{
		ProfileAlert:    "⚠️ Обнаружена реклама в профиле:\nID: %d\nUsername: @%s\nБио: %s",
		UnknownUsername: "нет",
		BanButton:       "Заблокировать",
		AllowButton:     "Добавить в исключения",
		Banned:          "✅ Пользователь заблокирован.",
		BanFailed:       "❌ Ошибка: %v",
		Allowed:         "✅ Пользователь добавлен в исключения.",
	}
}

// withDefaults fills empty fields from DefaultTexts.
func (t Texts) withDefaults() Texts {
	d := DefaultTexts()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&t.ProfileAlert, d.ProfileAlert)
	fill(&t.UnknownUsername, d.UnknownUsername)
	fill(&t.BanButton, d.BanButton)
	fill(&t.AllowButton, d.AllowButton)
	fill(&t.Banned, d.Banned)
	fill(&t.BanFailed, d.BanFailed)
	fill(&t.Allowed, d.Allowed)
	return t
}
