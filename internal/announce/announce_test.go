package announce_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/guardbot/internal/announce"
	"github.com/edgard/guardbot/internal/platform/platformtest"
)

const chatID int64 = -1001

func TestPostText(t *testing.T) {
	t.Parallel()

	fake := platformtest.NewFake()
	a := announce.New(fake, "", "@lihvan_team_sup", nil)

	ref, err := a.Post(context.Background(), chatID, "Giveaway starts!", "")
	require.NoError(t, err)

	require.Len(t, fake.Sent, 2)
	assert.Equal(t, "Giveaway starts!", fake.Sent[0].Text)
	assert.Equal(t, ref, fake.Sent[0].Ref)

	warning := fake.Sent[1]
	assert.Equal(t, ref.MessageID, warning.Options.ReplyTo)
	assert.Equal(t, "⚠️ Осторожно, мошенники! Мы НИКОГДА не пишем в ЛС с предложениями оплатить или что-то сделать.\nЕдинственный контакт: @lihvan_team_sup", warning.Text)
}

func TestPostPhoto(t *testing.T) {
	t.Parallel()

	fake := platformtest.NewFake()
	a := announce.New(fake, "", "@support", nil)

	ref, err := a.Post(context.Background(), chatID, "caption", "file-id")
	require.NoError(t, err)

	assert.Equal(t, []string{"SendPhoto", "SendMessage"}, fake.Calls)
	assert.Equal(t, "file-id", fake.Sent[0].Photo)
	assert.Equal(t, ref.MessageID, fake.Sent[1].Options.ReplyTo)
}

func TestPostWarningFailureIgnored(t *testing.T) {
	t.Parallel()

	fake := platformtest.NewFake()
	a := announce.New(fake, "contact %s", "@s", nil)
	fake.SendErr = errors.New("replies not allowed")

	_, err := a.Post(context.Background(), chatID, "caption", "file-id")
	require.NoError(t, err)
	assert.Equal(t, "contact @s", a.Warning())
}

func TestPostAnnouncementFailure(t *testing.T) {
	t.Parallel()

	fake := platformtest.NewFake()
	fake.SendErr = errors.New("forbidden")
	a := announce.New(fake, "", "@s", nil)

	_, err := a.Post(context.Background(), chatID, "text", "")
	assert.Error(t, err)
	assert.Equal(t, []string{"SendMessage"}, fake.Calls)
}
