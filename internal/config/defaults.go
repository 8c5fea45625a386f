package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/edgard/guardbot/internal/moderation"
)

// Default values for configuration
const (
	DefaultLogLevel = "info"

	DefaultSupportUsername = "@lihvan_team_sup"
	DefaultRequestTimeout  = 30 * time.Second

	DefaultAlertSnapshotLimit = 100

	DefaultDBPath         = "guardbot.db"
	DefaultEventRetention = 30 * 24 * time.Hour

	DefaultSessionTTL = 24 * time.Hour

	DefaultMaintenanceSchedule   = "0 0 4 * * *" // daily at 04:00
	DefaultWizardCleanupSchedule = "0 */15 * * * *"
)

// DefaultAdMarkers are the advertising markers used when none are configured.
var DefaultAdMarkers = moderation.DefaultAdMarkers

// defaultMessages are the texts of the command handlers.
var defaultMessages = map[string]string{
	"chat_id":        "ID: %d",
	"not_authorized": "🚫 Доступ запрещён.",
	"announce_usage": "ℹ️ Использование: /announce <текст> (можно ответом на фото)",
	"announce_done":  "✅ Объявление опубликовано.",
	"general_error":  "❌ Произошла ошибка. Попробуйте позже.",
	"pending_none":   "✅ Нет открытых обращений.",
	"pending_header": "🕵️ Открытые обращения:",
	"cmd_lottery":    "Создать розыгрыш",
	"cmd_id":         "Показать ID чата",
	"cmd_announce":   "Опубликовать объявление (админ)",
	"cmd_pending":    "Открытые обращения (админ)",
	"cmd_cancel":     "Отменить создание розыгрыша",
	"cancel_none":    "ℹ️ Нет активного розыгрыша.",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", false)

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.moderated_chat_id", 0)
	v.SetDefault("telegram.escalation_chat_id", 0)
	v.SetDefault("telegram.support_username", DefaultSupportUsername)
	v.SetDefault("telegram.admin_user_ids", []int64{})
	v.SetDefault("telegram.request_timeout", DefaultRequestTimeout)
	v.SetDefault("telegram.drop_pending_updates", false)

	v.SetDefault("moderation.ad_markers", DefaultAdMarkers)
	v.SetDefault("moderation.alert_snapshot_limit", DefaultAlertSnapshotLimit)

	v.SetDefault("database.path", DefaultDBPath)
	v.SetDefault("database.event_retention", DefaultEventRetention)

	v.SetDefault("wizard.session_ttl", DefaultSessionTTL)

	v.SetDefault("scheduler.tasks", map[string]any{
		"sql_maintenance": map[string]any{
			"enabled":  true,
			"schedule": DefaultMaintenanceSchedule,
		},
		"wizard_cleanup": map[string]any{
			"enabled":  true,
			"schedule": DefaultWizardCleanupSchedule,
		},
	})

	for key, text := range defaultMessages {
		v.SetDefault("messages."+key, text)
	}
}
