package moderation_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/guardbot/internal/moderation"
	"github.com/edgard/guardbot/internal/platform"
	"github.com/edgard/guardbot/internal/platform/platformtest"
)

func newEvaluator(fake *platformtest.Fake, mutes *moderation.MuteRegistry, audit moderation.AuditStore) *moderation.ProfileEvaluator {
	return moderation.NewProfileEvaluator(fake, moderation.NewClassifier(nil), mutes, audit,
		moderation.ProfileEvaluatorConfig{EscalationChatID: escalationChat}, nil)
}

func TestProfileEvaluatorFlagsAdvertisingBio(t *testing.T) {
	t.Parallel()

	fake := platformtest.NewFake()
	fake.Profiles[42] = platform.Profile{Bio: "cheap stuff t.me/spamlink", FirstName: "Ivan", Username: "ivan"}
	mutes := moderation.NewMuteRegistry()
	audit := &memoryAudit{}

	decision := newEvaluator(fake, mutes, audit).Evaluate(context.Background(), 42)

	assert.Equal(t, moderation.RiskFlagged, decision)
	assert.True(t, mutes.Contains(42))

	require.Len(t, fake.Sent, 1)
	alert := fake.Sent[0]
	assert.Equal(t, escalationChat, alert.Ref.ChatID)
	assert.Equal(t, "⚠️ Обнаружена реклама в профиле:\nID: 42\nUsername: @ivan\nБио: cheap stuff t.me/spamlinkIvan", alert.Text)
	require.Len(t, alert.Options.Keyboard, 1)
	require.Len(t, alert.Options.Keyboard[0], 2)
	assert.Equal(t, "ban_42", alert.Options.Keyboard[0][0].Data)
	assert.Equal(t, "allow_42", alert.Options.Keyboard[0][1].Data)

	require.Len(t, audit.cases, 1)
	assert.Equal(t, int64(42), audit.cases[0].UserID)
	assert.Equal(t, alert.Ref.MessageID, audit.cases[0].AlertMessageID)
}

func TestProfileEvaluatorCleanProfile(t *testing.T) {
	t.Parallel()

	fake := platformtest.NewFake()
	fake.Profiles[7] = platform.Profile{Bio: "just a person", FirstName: "Anna", LastName: "K"}
	mutes := moderation.NewMuteRegistry()

	assert.Equal(t, moderation.RiskClean, newEvaluator(fake, mutes, nil).Evaluate(context.Background(), 7))
	assert.False(t, mutes.Contains(7))
	assert.Empty(t, fake.Sent)
}

func TestProfileEvaluatorFailsOpen(t *testing.T) {
	t.Parallel()

	fake := platformtest.NewFake()
	fake.FetchErr = errors.New("timeout")
	mutes := moderation.NewMuteRegistry()

	assert.Equal(t, moderation.RiskClean, newEvaluator(fake, mutes, nil).Evaluate(context.Background(), 9))
	assert.Zero(t, mutes.Len())
	assert.Empty(t, fake.Sent)
}

func TestProfileEvaluatorFieldsBlendWithoutDelimiter(t *testing.T) {
	t.Parallel()

	// Neither field advertises on its own; the concatenation does.
	fake := platformtest.NewFake()
	fake.Profiles[5] = platform.Profile{FirstName: "shop.c", LastName: "om"}
	mutes := moderation.NewMuteRegistry()

	assert.Equal(t, moderation.RiskFlagged, newEvaluator(fake, mutes, nil).Evaluate(context.Background(), 5))
}

func TestProfileEvaluatorAlertDetails(t *testing.T) {
	t.Parallel()

	fake := platformtest.NewFake()
	long := "https://" + strings.Repeat("я", 150)
	fake.Profiles[3] = platform.Profile{Bio: long}
	mutes := moderation.NewMuteRegistry()
	audit := &memoryAudit{}

	newEvaluator(fake, mutes, audit).Evaluate(context.Background(), 3)

	require.Len(t, fake.Sent, 1)
	text := fake.Sent[0].Text
	assert.Contains(t, text, "Username: @нет\n")
	quoted := text[strings.Index(text, "Био: ")+len("Био: "):]
	assert.Equal(t, 100, len([]rune(quoted)))

	require.Len(t, audit.cases, 1)
	assert.Empty(t, audit.cases[0].Username, "placeholder stays in the alert text")
}

func TestProfileEvaluatorAlertSendFailureKeepsMute(t *testing.T) {
	t.Parallel()

	fake := platformtest.NewFake()
	fake.Profiles[8] = platform.Profile{Bio: "www.spam"}
	fake.SendErr = errors.New("chat not found")
	mutes := moderation.NewMuteRegistry()
	audit := &memoryAudit{}

	assert.Equal(t, moderation.RiskFlagged, newEvaluator(fake, mutes, audit).Evaluate(context.Background(), 8))
	assert.True(t, mutes.Contains(8))
	assert.Empty(t, audit.cases)
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "biofirstlast", moderation.Snapshot(platform.Profile{Bio: "bio", FirstName: "first", LastName: "last", Username: "u"}))
}
