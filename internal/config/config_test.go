package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalYAML = `
telegram:
  token: "123:abc"
  moderated_chat_id: -1001
  escalation_chat_id: -2002
`

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, int64(-1001), cfg.Telegram.ModeratedChatID)
	assert.Equal(t, int64(-2002), cfg.Telegram.EscalationChatID)
	assert.Equal(t, DefaultSupportUsername, cfg.Telegram.SupportUsername)
	assert.Equal(t, DefaultRequestTimeout, cfg.Telegram.RequestTimeout)
	assert.Equal(t, DefaultLogLevel, cfg.Logger.Level)
	assert.Equal(t, DefaultAdMarkers, cfg.Moderation.AdMarkers)
	assert.Equal(t, DefaultAlertSnapshotLimit, cfg.Moderation.AlertSnapshotLimit)
	assert.Equal(t, DefaultDBPath, cfg.Database.Path)
	assert.Equal(t, DefaultEventRetention, cfg.Database.EventRetention)

	task, ok := cfg.Scheduler.Tasks["sql_maintenance"]
	require.True(t, ok)
	assert.True(t, task.Enabled)
	assert.Equal(t, DefaultMaintenanceSchedule, task.Schedule)

	cleanup, ok := cfg.Scheduler.Tasks["wizard_cleanup"]
	require.True(t, ok)
	assert.True(t, cleanup.Enabled)
	assert.Equal(t, DefaultWizardCleanupSchedule, cleanup.Schedule)
	assert.Equal(t, DefaultSessionTTL, cfg.Wizard.SessionTTL)

	assert.Equal(t, "ID: %d", cfg.Messages.ChatID)
	assert.Empty(t, cfg.Messages.ProfileAlert, "moderation texts default in their package")
}

func TestLoadConfigFileOverrides(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: debug
  json: true
telegram:
  token: "123:abc"
  moderated_chat_id: -1001
  escalation_chat_id: -2002
  admin_user_ids: [42, 43]
  request_timeout: 5s
moderation:
  ad_markers: ["promo"]
scheduler:
  tasks:
    sql_maintenance:
      enabled: false
messages:
  fraud_warning: "beware, contact %s"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.Logger.JSON)
	assert.Equal(t, []int64{42, 43}, cfg.Telegram.AdminUserIDs)
	assert.Equal(t, 5*time.Second, cfg.Telegram.RequestTimeout)
	assert.Equal(t, []string{"promo"}, cfg.Moderation.AdMarkers)
	assert.False(t, cfg.Scheduler.Tasks["sql_maintenance"].Enabled)
	assert.Equal(t, "beware, contact %s", cfg.Messages.FraudWarning)

	assert.True(t, cfg.IsAdmin(42))
	assert.False(t, cfg.IsAdmin(7))
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("BOT_TOKEN", "env-token")
	t.Setenv("MAIN_CHAT_ID", "-100500")
	t.Setenv("SYSTEM_CHAT_ID", "-100600")
	t.Setenv("SUPPORT_USERNAME", "@help")
	t.Setenv("BOT_LOGGER_LEVEL", "warn")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Telegram.Token)
	assert.Equal(t, int64(-100500), cfg.Telegram.ModeratedChatID)
	assert.Equal(t, int64(-100600), cfg.Telegram.EscalationChatID)
	assert.Equal(t, "@help", cfg.Telegram.SupportUsername)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing token",
			yaml: "telegram:\n  moderated_chat_id: -1\n  escalation_chat_id: -2\n",
		},
		{
			name: "missing moderated chat",
			yaml: "telegram:\n  token: t\n  escalation_chat_id: -2\n",
		},
		{
			name: "escalation chat equals moderated chat",
			yaml: "telegram:\n  token: t\n  moderated_chat_id: -1\n  escalation_chat_id: -1\n",
		},
		{
			name: "unknown log level",
			yaml: minimalYAML + "logger:\n  level: verbose\n",
		},
		{
			name: "enabled task without schedule",
			yaml: minimalYAML + "scheduler:\n  tasks:\n    other:\n      enabled: true\n",
		},
		{
			name: "session ttl too short",
			yaml: minimalYAML + "wizard:\n  session_ttl: 5s\n",
		},
		{
			name: "request timeout too short",
			yaml: minimalYAML + "  request_timeout: 10ms\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
		})
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "telegram: [unclosed"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}
