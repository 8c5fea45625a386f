package dialogue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/edgard/guardbot/internal/keylock"
	"github.com/edgard/guardbot/internal/platform"
)

// ActionCheckPermissions is the data of the "check permissions" button.
const ActionCheckPermissions = "check_perms"

// ErrNotImplemented is returned for input reaching a step whose collection
// logic does not exist yet. The dialogue stays where it is.
var ErrNotImplemented = errors.New("dialogue step not implemented")

// Texts are the prompts sent by the wizard.
type Texts struct {
	Welcome            string
	PermissionsRequest string
	CheckPrompt        string
	CheckButton        string
	Cancelled          string
}

// DefaultTexts returns the stock wizard prompts.
func DefaultTexts() Texts {
	return Texts{
		Welcome: "🎉 Добро пожаловать в мастер розыгрышей!\n" +
			"Пожалуйста, пришлите ссылки на каналы/группы, где провести розыгрыш (через запятую):",
		PermissionsRequest: "Проверяю права... Пожалуйста, добавьте меня в эти чаты и дайте права администратора.",
		CheckPrompt:        "Нажмите кнопку, чтобы проверить права:",
		CheckButton:        "Проверить",
		Cancelled:          "❌ Создание розыгрыша отменено.",
	}
}

func (t Texts) withDefaults() Texts {
	d := DefaultTexts()
	if t.Welcome == "" {
		t.Welcome = d.Welcome
	}
	if t.PermissionsRequest == "" {
		t.PermissionsRequest = d.PermissionsRequest
	}
	if t.CheckPrompt == "" {
		t.CheckPrompt = d.CheckPrompt
	}
	if t.CheckButton == "" {
		t.CheckButton = d.CheckButton
	}
	if t.Cancelled == "" {
		t.Cancelled = d.Cancelled
	}
	return t
}

// Outcome describes how Handle treated an input.
type Outcome struct {
	// Handled is false when no transition matched the input.
	Handled bool
	From    State
	To      State
}

// step applies an input to a session. It may mutate the session and send replies.
type step func(ctx context.Context, s *Session, in Input) error

// transition is one row of the table: input of kind (and, for actions, with
// matching data; empty matches any) in a state runs step and moves to next.
type transition struct {
	kind   InputKind
	action string
	step   step
	next   State
}

func (t transition) matches(in Input) bool {
	if t.kind != in.Kind {
		return false
	}
	return t.kind != InputAction || t.action == "" || t.action == in.Action
}

// Machine drives wizard sessions. It is safe for concurrent use; inputs for
// the same user are applied one at a time.
type Machine struct {
	client   platform.Client
	sessions SessionStore
	texts    Texts
	table    map[State][]transition
	locks    *keylock.Locks
	logger   *slog.Logger
	now      func() time.Time
}

// NewMachine creates a Machine. Empty text fields fall back to DefaultTexts.
func NewMachine(client platform.Client, sessions SessionStore, texts Texts, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	texts = texts.withDefaults()

	m := &Machine{
		client:   client,
		sessions: sessions,
		texts:    texts,
		locks:    keylock.New(),
		logger:   logger.With("component", "lottery_wizard"),
		now:      time.Now,
	}
	m.table = m.transitions()
	return m
}

func (m *Machine) transitions() map[State][]transition {
	table := map[State][]transition{
		WaitingChannels: {
			{kind: InputText, step: m.receiveChannels, next: CheckingPermissions},
		},
		CheckingPermissions: {
			{kind: InputAction, action: ActionCheckPermissions, step: m.checkPermissions, next: CheckingPermissions},
		},
	}
	for _, s := range []State{WaitingMessage, WaitingPhoto, WaitingStartTime, WaitingEndTime, WaitingWinnersCount, WaitingSettings, Confirmation} {
		table[s] = []transition{
			{kind: InputText, step: notImplemented, next: s},
			{kind: InputAction, step: notImplemented, next: s},
		}
	}
	return table
}

// Start opens a new session for userID and prompts for the channel list.
// While a session started in chatID is running, Start is ignored; a session
// left in another chat is replaced.
func (m *Machine) Start(ctx context.Context, userID, chatID int64) Outcome {
	unlock := m.locks.Lock(userID)
	defer unlock()

	if sess, ok := m.sessions.Get(userID); ok && sess.ChatID == chatID {
		m.logger.DebugContext(ctx, "Lottery wizard already running", "user_id", userID, "chat_id", chatID, "state", sess.State)
		return Outcome{From: sess.State, To: sess.State}
	}

	now := m.now()
	m.sessions.Put(Session{
		UserID:    userID,
		ChatID:    chatID,
		State:     WaitingChannels,
		StartedAt: now,
		UpdatedAt: now,
	})
	m.logger.InfoContext(ctx, "Lottery wizard started", "user_id", userID, "chat_id", chatID)

	m.reply(ctx, chatID, m.texts.Welcome, nil)
	return Outcome{Handled: true, From: WaitingChannels, To: WaitingChannels}
}

// Cancel ends the session of userID and confirms in chatID. It reports
// whether a session existed.
func (m *Machine) Cancel(ctx context.Context, userID, chatID int64) bool {
	unlock := m.locks.Lock(userID)
	defer unlock()

	sess, ok := m.sessions.Get(userID)
	if !ok {
		return false
	}
	m.sessions.Delete(userID)
	m.logger.InfoContext(ctx, "Lottery wizard cancelled", "user_id", userID, "state", sess.State)

	m.reply(ctx, chatID, m.texts.Cancelled, nil)
	return true
}

// ExpireIdle removes sessions without input for longer than maxIdle and
// returns how many were removed.
func (m *Machine) ExpireIdle(ctx context.Context, maxIdle time.Duration) int {
	n := m.sessions.DeleteIdle(m.now().Add(-maxIdle))
	if n > 0 {
		m.logger.InfoContext(ctx, "Expired idle lottery sessions", "count", n, "max_idle", maxIdle)
	}
	return n
}

// Handle applies in to the session of userID. Input without a session, from
// another chat than the one the session was started in, or without a
// matching transition is left unhandled and gets no reply.
func (m *Machine) Handle(ctx context.Context, userID int64, in Input) (Outcome, error) {
	unlock := m.locks.Lock(userID)
	defer unlock()

	sess, ok := m.sessions.Get(userID)
	if !ok {
		return Outcome{}, nil
	}

	out := Outcome{From: sess.State, To: sess.State}
	if in.ChatID != sess.ChatID {
		return out, nil
	}

	for _, t := range m.table[sess.State] {
		if !t.matches(in) {
			continue
		}

		if err := t.step(ctx, &sess, in); err != nil {
			m.logger.DebugContext(ctx, "Wizard step rejected input", "user_id", userID, "state", sess.State, "input", in.Kind, "error", err)
			return out, err
		}

		sess.State = t.next
		sess.UpdatedAt = m.now()
		m.sessions.Put(sess)

		out.Handled = true
		out.To = t.next
		m.logger.DebugContext(ctx, "Wizard transition", "user_id", userID, "from", out.From, "to", out.To, "input", in.Kind)
		return out, nil
	}

	return out, nil
}

// Session returns the current session of userID.
func (m *Machine) Session(userID int64) (Session, bool) {
	return m.sessions.Get(userID)
}

func (m *Machine) receiveChannels(ctx context.Context, s *Session, in Input) error {
	s.Campaign.Channels = ParseChannels(in.Text)
	m.logger.InfoContext(ctx, "Lottery channels received", "user_id", s.UserID, "count", len(s.Campaign.Channels))

	m.reply(ctx, in.ChatID, m.texts.PermissionsRequest, m.checkKeyboard())
	return nil
}

func (m *Machine) checkPermissions(ctx context.Context, _ *Session, in Input) error {
	m.reply(ctx, in.ChatID, m.texts.CheckPrompt, m.checkKeyboard())
	return nil
}

func notImplemented(context.Context, *Session, Input) error {
	return ErrNotImplemented
}

func (m *Machine) checkKeyboard() [][]platform.Button {
	return [][]platform.Button{{{Text: m.texts.CheckButton, Data: ActionCheckPermissions}}}
}

func (m *Machine) reply(ctx context.Context, chatID int64, text string, keyboard [][]platform.Button) {
	if _, err := m.client.SendMessage(ctx, chatID, text, platform.SendOptions{Keyboard: keyboard}); err != nil {
		m.logger.ErrorContext(ctx, "Failed to send wizard prompt", "chat_id", chatID, "error", err)
	}
}

// ParseChannels splits a comma-separated list, trims each entry and drops empty ones.
func ParseChannels(text string) []string {
	parts := strings.Split(text, ",")
	channels := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			channels = append(channels, p)
		}
	}
	return channels
}
