package dialogue_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/guardbot/internal/dialogue"
	"github.com/edgard/guardbot/internal/platform/platformtest"
)

const (
	userID int64 = 100
	chatID int64 = 100
)

func newMachine() (*dialogue.Machine, *dialogue.MemoryStore, *platformtest.Fake) {
	fake := platformtest.NewFake()
	store := dialogue.NewMemoryStore()
	return dialogue.NewMachine(fake, store, dialogue.Texts{}, nil), store, fake
}

func TestStartEntersWaitingChannels(t *testing.T) {
	t.Parallel()

	m, _, fake := newMachine()
	out := m.Start(context.Background(), userID, chatID)

	assert.True(t, out.Handled)
	sess, ok := m.Session(userID)
	require.True(t, ok)
	assert.Equal(t, dialogue.WaitingChannels, sess.State)
	require.Len(t, fake.Sent, 1)
	assert.Equal(t, dialogue.DefaultTexts().Welcome, fake.Sent[0].Text)
	assert.Equal(t, chatID, fake.Sent[0].Ref.ChatID)
}

func TestReceiveChannels(t *testing.T) {
	t.Parallel()

	m, _, fake := newMachine()
	ctx := context.Background()
	m.Start(ctx, userID, chatID)

	out, err := m.Handle(ctx, userID, dialogue.TextInput(chatID, "chan1, chan2 ,, chan3"))
	require.NoError(t, err)

	assert.Equal(t, dialogue.Outcome{Handled: true, From: dialogue.WaitingChannels, To: dialogue.CheckingPermissions}, out)
	sess, _ := m.Session(userID)
	assert.Equal(t, []string{"chan1", "chan2", "chan3"}, sess.Campaign.Channels)
	assert.Equal(t, dialogue.CheckingPermissions, sess.State)

	require.Len(t, fake.Sent, 2)
	assert.Equal(t, dialogue.DefaultTexts().PermissionsRequest, fake.Sent[1].Text)
}

func TestCheckPermissionsLoops(t *testing.T) {
	t.Parallel()

	m, _, fake := newMachine()
	ctx := context.Background()
	m.Start(ctx, userID, chatID)
	_, err := m.Handle(ctx, userID, dialogue.TextInput(chatID, "@mychannel"))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		out, err := m.Handle(ctx, userID, dialogue.ActionInput(chatID, dialogue.ActionCheckPermissions))
		require.NoError(t, err)
		assert.True(t, out.Handled)
		assert.Equal(t, dialogue.CheckingPermissions, out.To)
	}

	last := fake.Sent[len(fake.Sent)-1]
	assert.Equal(t, dialogue.DefaultTexts().CheckPrompt, last.Text)
	require.Len(t, last.Options.Keyboard, 1)
	assert.Equal(t, dialogue.ActionCheckPermissions, last.Options.Keyboard[0][0].Data)
}

func TestUnmatchedInputIsIgnored(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(m *dialogue.Machine)
		input dialogue.Input
		state dialogue.State
	}{
		{
			name:  "action while waiting for channels",
			setup: func(m *dialogue.Machine) { m.Start(ctx, userID, chatID) },
			input: dialogue.ActionInput(chatID, dialogue.ActionCheckPermissions),
			state: dialogue.WaitingChannels,
		},
		{
			name: "text while checking permissions",
			setup: func(m *dialogue.Machine) {
				m.Start(ctx, userID, chatID)
				_, _ = m.Handle(ctx, userID, dialogue.TextInput(chatID, "a"))
			},
			input: dialogue.TextInput(chatID, "done"),
			state: dialogue.CheckingPermissions,
		},
		{
			name: "unknown action while checking permissions",
			setup: func(m *dialogue.Machine) {
				m.Start(ctx, userID, chatID)
				_, _ = m.Handle(ctx, userID, dialogue.TextInput(chatID, "a"))
			},
			input: dialogue.ActionInput(chatID, "something_else"),
			state: dialogue.CheckingPermissions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, fake := newMachine()
			tt.setup(m)
			sent := len(fake.Sent)

			out, err := m.Handle(ctx, userID, tt.input)
			require.NoError(t, err)
			assert.False(t, out.Handled)
			assert.Equal(t, tt.state, out.To)
			assert.Len(t, fake.Sent, sent, "no fallback reply")

			sess, _ := m.Session(userID)
			assert.Equal(t, tt.state, sess.State)
		})
	}
}

func TestInputFromOtherChatIsIgnored(t *testing.T) {
	t.Parallel()

	m, _, fake := newMachine()
	ctx := context.Background()
	m.Start(ctx, userID, chatID)

	out, err := m.Handle(ctx, userID, dialogue.TextInput(-1001, "hello group"))
	require.NoError(t, err)
	assert.False(t, out.Handled)
	assert.Len(t, fake.Sent, 1)

	sess, _ := m.Session(userID)
	assert.Equal(t, dialogue.WaitingChannels, sess.State)
	assert.Empty(t, sess.Campaign.Channels)
}

func TestNoSessionIsIgnored(t *testing.T) {
	t.Parallel()

	m, _, fake := newMachine()
	out, err := m.Handle(context.Background(), userID, dialogue.TextInput(chatID, "chan1"))
	require.NoError(t, err)
	assert.False(t, out.Handled)
	assert.Empty(t, fake.Sent)
}

func TestDeferredStatesAreNotImplemented(t *testing.T) {
	t.Parallel()

	states := []dialogue.State{
		dialogue.WaitingMessage,
		dialogue.WaitingPhoto,
		dialogue.WaitingStartTime,
		dialogue.WaitingEndTime,
		dialogue.WaitingWinnersCount,
		dialogue.WaitingSettings,
		dialogue.Confirmation,
	}

	for _, state := range states {
		t.Run(state.String(), func(t *testing.T) {
			m, store, fake := newMachine()
			store.Put(dialogue.Session{UserID: userID, ChatID: chatID, State: state})

			for _, in := range []dialogue.Input{
				dialogue.TextInput(chatID, "anything"),
				dialogue.ActionInput(chatID, "anything"),
			} {
				out, err := m.Handle(context.Background(), userID, in)
				assert.True(t, errors.Is(err, dialogue.ErrNotImplemented))
				assert.False(t, out.Handled)
				assert.Equal(t, state, out.To)
			}

			sess, _ := m.Session(userID)
			assert.Equal(t, state, sess.State)
			assert.Empty(t, fake.Sent)
		})
	}
}

func TestStartIgnoredWhileDialogueRuns(t *testing.T) {
	t.Parallel()

	m, store, fake := newMachine()
	ctx := context.Background()
	m.Start(ctx, userID, chatID)
	_, err := m.Handle(ctx, userID, dialogue.TextInput(chatID, "a, b"))
	require.NoError(t, err)
	sent := len(fake.Sent)

	out := m.Start(ctx, userID, chatID)
	assert.False(t, out.Handled)
	assert.Equal(t, dialogue.CheckingPermissions, out.From)

	sess, ok := m.Session(userID)
	require.True(t, ok)
	assert.Equal(t, dialogue.CheckingPermissions, sess.State)
	assert.Equal(t, []string{"a", "b"}, sess.Campaign.Channels)
	assert.Len(t, fake.Sent, sent, "no reply")
	assert.Equal(t, 1, store.Len())
}

func TestStartInOtherChatReplacesSession(t *testing.T) {
	t.Parallel()

	m, store, _ := newMachine()
	ctx := context.Background()
	m.Start(ctx, userID, chatID)
	_, err := m.Handle(ctx, userID, dialogue.TextInput(chatID, "a, b"))
	require.NoError(t, err)

	out := m.Start(ctx, userID, -500)
	assert.True(t, out.Handled)

	sess, ok := m.Session(userID)
	require.True(t, ok)
	assert.Equal(t, int64(-500), sess.ChatID)
	assert.Equal(t, dialogue.WaitingChannels, sess.State)
	assert.Empty(t, sess.Campaign.Channels)
	assert.Equal(t, 1, store.Len())
}

func TestCancel(t *testing.T) {
	t.Parallel()

	m, store, fake := newMachine()
	ctx := context.Background()

	assert.False(t, m.Cancel(ctx, userID, chatID))
	assert.Empty(t, fake.Sent)

	m.Start(ctx, userID, chatID)
	assert.True(t, m.Cancel(ctx, userID, chatID))
	assert.Zero(t, store.Len())
	assert.Equal(t, dialogue.DefaultTexts().Cancelled, fake.Sent[len(fake.Sent)-1].Text)

	out, err := m.Handle(ctx, userID, dialogue.TextInput(chatID, "a"))
	require.NoError(t, err)
	assert.False(t, out.Handled)

	assert.True(t, m.Start(ctx, userID, chatID).Handled, "a new dialogue can start after cancel")
}

func TestExpireIdle(t *testing.T) {
	t.Parallel()

	m, store, _ := newMachine()
	ctx := context.Background()

	store.Put(dialogue.Session{UserID: 1, ChatID: 1, State: dialogue.WaitingChannels, UpdatedAt: time.Now().Add(-2 * time.Hour)})
	m.Start(ctx, 2, 2)

	assert.Equal(t, 1, m.ExpireIdle(ctx, time.Hour))
	_, ok := m.Session(1)
	assert.False(t, ok)
	_, ok = m.Session(2)
	assert.True(t, ok)
	assert.Zero(t, m.ExpireIdle(ctx, time.Hour))
}

func TestSendFailureStillTransitions(t *testing.T) {
	t.Parallel()

	m, _, fake := newMachine()
	ctx := context.Background()
	m.Start(ctx, userID, chatID)
	fake.SendErr = errors.New("blocked by user")

	out, err := m.Handle(ctx, userID, dialogue.TextInput(chatID, "x"))
	require.NoError(t, err)
	assert.Equal(t, dialogue.CheckingPermissions, out.To)
}

func TestConcurrentUsers(t *testing.T) {
	t.Parallel()

	m, store, _ := newMachine()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := int64(1); i <= 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.Start(ctx, id, id)
			_, _ = m.Handle(ctx, id, dialogue.TextInput(id, "one, two"))
			_, _ = m.Handle(ctx, id, dialogue.ActionInput(id, dialogue.ActionCheckPermissions))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, store.Len())
	for i := int64(1); i <= 20; i++ {
		sess, ok := m.Session(i)
		require.True(t, ok)
		assert.Equal(t, dialogue.CheckingPermissions, sess.State)
		assert.Equal(t, []string{"one", "two"}, sess.Campaign.Channels)
	}
}

func TestParseChannels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected []string
	}{
		{"chan1, chan2 ,, chan3", []string{"chan1", "chan2", "chan3"}},
		{"", []string{}},
		{" , ,", []string{}},
		{"https://t.me/a", []string{"https://t.me/a"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, dialogue.ParseChannels(tt.input), tt.input)
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "waiting_channels", dialogue.WaitingChannels.String())
	assert.Equal(t, "confirmation", dialogue.Confirmation.String())
	assert.Equal(t, "state(42)", dialogue.State(42).String())
}
