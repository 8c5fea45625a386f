package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the persistence operations of the moderation audit trail.
// Methods accept a context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// CreateEscalationCase inserts a new case and sets its ID.
	CreateEscalationCase(ctx context.Context, c *EscalationCase) error

	// ResolveEscalationCases marks every pending case of userID with status and note.
	// It returns the number of cases resolved.
	ResolveEscalationCases(ctx context.Context, userID int64, status, note string) (int64, error)

	// GetPendingEscalationCases returns up to limit unresolved cases, oldest first.
	GetPendingEscalationCases(ctx context.Context, limit int) ([]*EscalationCase, error)

	// RecordModerationEvent inserts a deleted-message event and sets its ID.
	RecordModerationEvent(ctx context.Context, e *ModerationEvent) error

	// PurgeModerationEvents deletes events created before the cutoff and returns the count.
	PurgeModerationEvents(ctx context.Context, before time.Time) (int64, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) CreateEscalationCase(ctx context.Context, c *EscalationCase) error {
	if c == nil {
		return fmt.Errorf("cannot save nil escalation case")
	}
	if c.UserID == 0 {
		return fmt.Errorf("escalation case must have a non-zero user_id")
	}
	if c.AlertChatID == 0 || c.AlertMessageID == 0 {
		return fmt.Errorf("escalation case must reference its alert message")
	}
	if c.Status == "" {
		c.Status = CaseStatusPending
	}
	c.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO escalation_cases (user_id, username, snapshot, alert_chat_id, alert_message_id, status, resolution_note, created_at, resolved_at)
        VALUES (:user_id, :username, :snapshot, :alert_chat_id, :alert_message_id, :status, :resolution_note, :created_at, :resolved_at);
    `
	result, err := s.db.NamedExecContext(ctx, query, c)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving escalation case", "user_id", c.UserID, "error", err)
		return fmt.Errorf("failed to save escalation case (user %d): %w", c.UserID, err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		//nolint:gosec // ids are positive and small
		c.ID = uint(id)
	} else {
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID for escalation case", "user_id", c.UserID, "error", err)
	}

	s.logger.DebugContext(ctx, "Escalation case saved", "user_id", c.UserID, "case_id", c.ID)
	return nil
}

func (s *sqlxStore) ResolveEscalationCases(ctx context.Context, userID int64, status, note string) (int64, error) {
	if userID == 0 {
		return 0, fmt.Errorf("user_id cannot be zero")
	}
	switch status {
	case CaseStatusBanned, CaseStatusBanFailed, CaseStatusAllowed:
	default:
		return 0, fmt.Errorf("invalid resolution status %q", status)
	}

	query := `
        UPDATE escalation_cases
        SET status = ?, resolution_note = ?, resolved_at = ?
        WHERE user_id = ? AND status = ?;
    `
	result, err := s.db.ExecContext(ctx, query, status, note, time.Now().UTC(), userID, CaseStatusPending)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error resolving escalation cases", "user_id", userID, "status", status, "error", err)
		return 0, fmt.Errorf("failed to resolve escalation cases (user %d): %w", userID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	s.logger.DebugContext(ctx, "Escalation cases resolved", "user_id", userID, "status", status, "count", affected)
	return affected, nil
}

func (s *sqlxStore) GetPendingEscalationCases(ctx context.Context, limit int) ([]*EscalationCase, error) {
	if limit <= 0 {
		limit = 20
	} else if limit > 100 {
		limit = 100
	}

	var cases []*EscalationCase
	query := `
        SELECT id, user_id, username, snapshot, alert_chat_id, alert_message_id, status, resolution_note, created_at, resolved_at
        FROM escalation_cases
        WHERE status = ?
        ORDER BY created_at ASC, id ASC
        LIMIT ?;
    `
	if err := s.db.SelectContext(ctx, &cases, query, CaseStatusPending, limit); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []*EscalationCase{}, nil
		}
		s.logger.ErrorContext(ctx, "Error fetching pending escalation cases", "error", err)
		return nil, fmt.Errorf("failed to get pending escalation cases: %w", err)
	}

	return cases, nil
}

func (s *sqlxStore) RecordModerationEvent(ctx context.Context, e *ModerationEvent) error {
	if e == nil {
		return fmt.Errorf("cannot save nil moderation event")
	}
	if e.ChatID == 0 || e.UserID == 0 {
		return fmt.Errorf("moderation event must have non-zero chat_id and user_id")
	}
	if e.Reason == "" {
		return fmt.Errorf("moderation event must have a reason")
	}
	e.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO moderation_events (chat_id, user_id, message_id, reason, created_at)
        VALUES (:chat_id, :user_id, :message_id, :reason, :created_at);
    `
	result, err := s.db.NamedExecContext(ctx, query, e)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving moderation event", "chat_id", e.ChatID, "user_id", e.UserID, "error", err)
		return fmt.Errorf("failed to save moderation event (chat %d, user %d): %w", e.ChatID, e.UserID, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		//nolint:gosec // ids are positive and small
		e.ID = uint(id)
	}
	return nil
}

func (s *sqlxStore) PurgeModerationEvents(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM moderation_events WHERE created_at < ?;`, before.UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Error purging moderation events", "before", before, "error", err)
		return 0, fmt.Errorf("failed to purge moderation events: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	s.logger.InfoContext(ctx, "Purged moderation events", "before", before, "count", affected)
	return affected, nil
}

// RunSQLMaintenance executes VACUUM, which SQLite requires to run outside a transaction.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context done before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	_, err := s.db.ExecContext(ctx, "VACUUM;")
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)
	case err != nil:
		s.logger.ErrorContext(ctx, "Failed to execute VACUUM", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully.")
	return nil
}
