package moderation

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/edgard/guardbot/internal/database"
)

const (
	auditAttemptTimeout = 5 * time.Second
	auditMaxRetries     = 2
)

// AuditStore is the subset of database.Store that moderation writes to.
type AuditStore interface {
	CreateEscalationCase(ctx context.Context, c *database.EscalationCase) error
	ResolveEscalationCases(ctx context.Context, userID int64, status, note string) (int64, error)
	RecordModerationEvent(ctx context.Context, e *database.ModerationEvent) error
}

// auditor writes to an optional AuditStore. Failures are logged and never
// change a moderation outcome.
type auditor struct {
	store  AuditStore
	logger *slog.Logger
}

func (a auditor) write(ctx context.Context, what string, op func(context.Context) error) {
	if a.store == nil {
		return
	}

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(200*time.Millisecond),
		backoff.WithMaxInterval(time.Second),
		backoff.WithMaxElapsedTime(10*time.Second),
	), auditMaxRetries)

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		opCtx, cancel := context.WithTimeout(ctx, auditAttemptTimeout)
		defer cancel()
		return op(opCtx)
	}, backoff.WithContext(b, ctx))
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to write audit record", "record", what, "attempts", attempt, "error", err)
	}
}

func (a auditor) escalationOpened(ctx context.Context, c *database.EscalationCase) {
	a.write(ctx, "escalation_case", func(ctx context.Context) error {
		return a.store.CreateEscalationCase(ctx, c)
	})
}

func (a auditor) escalationResolved(ctx context.Context, userID int64, status, note string) {
	a.write(ctx, "escalation_resolution", func(ctx context.Context) error {
		_, err := a.store.ResolveEscalationCases(ctx, userID, status, note)
		return err
	})
}

func (a auditor) messageDeleted(ctx context.Context, chatID, userID int64, messageID int, reason string) {
	a.write(ctx, "moderation_event", func(ctx context.Context) error {
		return a.store.RecordModerationEvent(ctx, &database.ModerationEvent{
			ChatID:    chatID,
			UserID:    userID,
			MessageID: messageID,
			Reason:    reason,
		})
	})
}
