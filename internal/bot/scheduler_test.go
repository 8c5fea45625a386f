package bot

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/guardbot/internal/bot/tasks"
	"github.com/edgard/guardbot/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSchedulerRunsEnabledTasks(t *testing.T) {
	t.Parallel()

	ran := make(chan struct{}, 10)
	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"every_second": {Enabled: true, Schedule: "* * * * * *"},
		"disabled":     {Enabled: false, Schedule: "* * * * * *"},
		"unregistered": {Enabled: true, Schedule: "* * * * * *"},
		"bad_schedule": {Enabled: true, Schedule: "not a cron"},
	}}
	taskMap := map[string]tasks.ScheduledTaskFunc{
		"every_second": func(context.Context) error {
			ran <- struct{}{}
			return nil
		},
		"disabled":     func(context.Context) error { t.Error("disabled task ran"); return nil },
		"bad_schedule": func(context.Context) error { return nil },
	}

	s, err := NewScheduler(discardLogger(), cfg, taskMap)
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Stop() })

	assert.Equal(t, 1, s.Scheduled())
	assert.Error(t, s.Start(context.Background()), "second start fails")

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduled task did not run")
	}
}

func TestSchedulerWithoutTasks(t *testing.T) {
	t.Parallel()

	s, err := NewScheduler(discardLogger(), &config.SchedulerConfig{}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	assert.Zero(t, s.Scheduled())
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop(), "stopping twice is a no-op")
}
