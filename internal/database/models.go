package database

import (
	"database/sql"
	"time"
)

// Escalation case statuses.
const (
	CaseStatusPending   = "pending"
	CaseStatusBanned    = "banned"
	CaseStatusBanFailed = "ban_failed"
	CaseStatusAllowed   = "allowed"
)

// Moderation event reasons.
const (
	ReasonMuted       = "muted"
	ReasonAdvertising = "advertising"
)

// EscalationCase records a profile alert posted to the escalation chat and,
// once a moderator acts on it, how it was resolved.
type EscalationCase struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	UserID         int64  `db:"user_id"`
	Username       string `db:"username"`
	Snapshot       string `db:"snapshot"`
	AlertChatID    int64  `db:"alert_chat_id"`
	AlertMessageID int    `db:"alert_message_id"`

	Status         string       `db:"status"`
	ResolutionNote string       `db:"resolution_note"`
	ResolvedAt     sql.NullTime `db:"resolved_at"`
}

// ModerationEvent is one message deleted from the moderated chat.
type ModerationEvent struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	ChatID    int64  `db:"chat_id"`
	UserID    int64  `db:"user_id"`
	MessageID int    `db:"message_id"`
	Reason    string `db:"reason"`
}
