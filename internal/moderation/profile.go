package moderation

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/edgard/guardbot/internal/database"
	"github.com/edgard/guardbot/internal/platform"
)

// DefaultSnapshotLimit is the number of snapshot characters quoted in an alert.
const DefaultSnapshotLimit = 100

// RiskDecision is the outcome of a profile evaluation.
type RiskDecision int

const (
	RiskClean RiskDecision = iota
	RiskFlagged
)

func (d RiskDecision) String() string {
	if d == RiskFlagged {
		return "flagged"
	}
	return "clean"
}

// RiskEvaluator decides whether a user's profile advertises.
type RiskEvaluator interface {
	Evaluate(ctx context.Context, userID int64) RiskDecision
}

// ProfileEvaluatorConfig configures a ProfileEvaluator.
type ProfileEvaluatorConfig struct {
	EscalationChatID int64
	// SnapshotLimit caps the quoted snapshot in characters; 0 selects DefaultSnapshotLimit.
	SnapshotLimit int
	Texts         Texts
}

// ProfileEvaluator flags users whose bio or name advertises. A flagged user is
// muted and an alert with ban/allow actions is posted to the escalation chat.
type ProfileEvaluator struct {
	client   platform.Client
	detector Detector
	mutes    *MuteRegistry
	audit    auditor
	cfg      ProfileEvaluatorConfig
	logger   *slog.Logger
}

// NewProfileEvaluator creates a ProfileEvaluator. store may be nil.
func NewProfileEvaluator(
	client platform.Client,
	detector Detector,
	mutes *MuteRegistry,
	store AuditStore,
	cfg ProfileEvaluatorConfig,
	logger *slog.Logger,
) *ProfileEvaluator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.SnapshotLimit <= 0 {
		cfg.SnapshotLimit = DefaultSnapshotLimit
	}
	cfg.Texts = cfg.Texts.withDefaults()
	log := logger.With("component", "profile_evaluator")

	return &ProfileEvaluator{
		client:   client,
		detector: detector,
		mutes:    mutes,
		audit:    auditor{store: store, logger: log},
		cfg:      cfg,
		logger:   log,
	}
}

// Snapshot concatenates bio, first name and last name without a delimiter.
func Snapshot(p platform.Profile) string {
	return p.Bio + p.FirstName + p.LastName
}

// Evaluate fetches the profile of userID and classifies its snapshot. A failed
// fetch is logged and evaluates as clean.
func (e *ProfileEvaluator) Evaluate(ctx context.Context, userID int64) RiskDecision {
	profile, err := e.client.FetchProfile(ctx, userID)
	if err != nil {
		e.logger.ErrorContext(ctx, "Failed to fetch profile, treating as clean", "user_id", userID, "error", err)
		return RiskClean
	}

	snapshot := Snapshot(profile)
	if !e.detector.IsAdvertisement(snapshot) {
		return RiskClean
	}

	e.mutes.Add(userID)
	e.logger.InfoContext(ctx, "Advertising detected in profile, user muted", "user_id", userID, "muted_total", e.mutes.Len())

	e.escalate(ctx, userID, profile.Username, snapshot)
	return RiskFlagged
}

func (e *ProfileEvaluator) escalate(ctx context.Context, userID int64, username, snapshot string) {
	shown := username
	if shown == "" {
		shown = e.cfg.Texts.UnknownUsername
	}
	quoted := truncateRunes(snapshot, e.cfg.SnapshotLimit)

	text := fmt.Sprintf(e.cfg.Texts.ProfileAlert, userID, shown, quoted)
	keyboard := [][]platform.Button{{
		{Text: e.cfg.Texts.BanButton, Data: BanActionData(userID)},
		{Text: e.cfg.Texts.AllowButton, Data: AllowActionData(userID)},
	}}

	alert, err := e.client.SendMessage(ctx, e.cfg.EscalationChatID, text, platform.SendOptions{Keyboard: keyboard})
	if err != nil {
		e.logger.ErrorContext(ctx, "Failed to post escalation alert", "user_id", userID, "chat_id", e.cfg.EscalationChatID, "error", err)
		return
	}

	e.audit.escalationOpened(ctx, &database.EscalationCase{
		UserID:         userID,
		Username:       username,
		Snapshot:       quoted,
		AlertChatID:    alert.ChatID,
		AlertMessageID: alert.MessageID,
	})
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
