// Package config loads and validates the bot configuration from an optional
// YAML file and the environment.
package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Logger     LoggerConfig     `mapstructure:"logger"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Wizard     WizardConfig     `mapstructure:"wizard"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Messages   MessagesConfig   `mapstructure:"messages"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot credentials and the chats it works with.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`
	// ModeratedChatID is the group where advertising is suppressed.
	ModeratedChatID int64 `mapstructure:"moderated_chat_id" validate:"required"`
	// EscalationChatID is where moderators receive profile alerts.
	EscalationChatID int64  `mapstructure:"escalation_chat_id" validate:"required,nefield=ModeratedChatID"`
	SupportUsername  string `mapstructure:"support_username" validate:"required"`
	// AdminUserIDs may use admin-only commands.
	AdminUserIDs []int64 `mapstructure:"admin_user_ids" validate:"dive,ne=0"`
	// RequestTimeout bounds every outbound platform call.
	RequestTimeout     time.Duration `mapstructure:"request_timeout" validate:"min=1s,max=2m"`
	DropPendingUpdates bool          `mapstructure:"drop_pending_updates"`
}

// ModerationConfig tunes advertising detection.
type ModerationConfig struct {
	AdMarkers          []string `mapstructure:"ad_markers" validate:"dive,required"`
	AlertSnapshotLimit int      `mapstructure:"alert_snapshot_limit" validate:"min=1,max=1000"`
}

// DatabaseConfig holds the audit store settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
	// EventRetention is how long deleted-message events are kept.
	EventRetention time.Duration `mapstructure:"event_retention" validate:"min=1h"`
}

// WizardConfig tunes the lottery wizard.
type WizardConfig struct {
	// SessionTTL is how long a dialogue may stay without input before it is dropped.
	SessionTTL time.Duration `mapstructure:"session_ttl" validate:"min=1m"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig configures one scheduled task.
type TaskConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Schedule is a six-field cron expression (with seconds).
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// MessagesConfig holds user-facing texts. Empty moderation and wizard texts
// fall back to the built-in ones of their packages.
type MessagesConfig struct {
	ProfileAlert    string `mapstructure:"profile_alert"`
	UnknownUsername string `mapstructure:"unknown_username"`
	BanButton       string `mapstructure:"ban_button"`
	AllowButton     string `mapstructure:"allow_button"`
	Banned          string `mapstructure:"banned"`
	BanFailed       string `mapstructure:"ban_failed"`
	Allowed         string `mapstructure:"allowed"`

	WizardWelcome            string `mapstructure:"wizard_welcome"`
	WizardPermissionsRequest string `mapstructure:"wizard_permissions_request"`
	WizardCheckPrompt        string `mapstructure:"wizard_check_prompt"`
	WizardCheckButton        string `mapstructure:"wizard_check_button"`
	WizardCancelled          string `mapstructure:"wizard_cancelled"`

	FraudWarning string `mapstructure:"fraud_warning"`

	ChatID        string `mapstructure:"chat_id"          validate:"required"`
	NotAuthorized string `mapstructure:"not_authorized"   validate:"required"`
	AnnounceUsage string `mapstructure:"announce_usage"   validate:"required"`
	AnnounceDone  string `mapstructure:"announce_done"    validate:"required"`
	GeneralError  string `mapstructure:"general_error"    validate:"required"`
	PendingNone   string `mapstructure:"pending_none"     validate:"required"`
	PendingHeader string `mapstructure:"pending_header"   validate:"required"`
	CmdLottery    string `mapstructure:"cmd_lottery"      validate:"required"`
	CmdID         string `mapstructure:"cmd_id"           validate:"required"`
	CmdAnnounce   string `mapstructure:"cmd_announce"     validate:"required"`
	CmdPending    string `mapstructure:"cmd_pending"      validate:"required"`
	CmdCancel     string `mapstructure:"cmd_cancel"       validate:"required"`
	CancelNone    string `mapstructure:"cancel_none"      validate:"required"`
}

// IsAdmin reports whether userID may use admin-only commands.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.Telegram.AdminUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
