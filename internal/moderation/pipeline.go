package moderation

import (
	"context"
	"io"
	"log/slog"

	"github.com/edgard/guardbot/internal/database"
	"github.com/edgard/guardbot/internal/keylock"
	"github.com/edgard/guardbot/internal/platform"
)

// Decision is what the pipeline did with a message.
type Decision int

const (
	// DecisionIgnored means the message is outside the moderated chat.
	DecisionIgnored Decision = iota
	DecisionAllowed
	DecisionDeleted
)

func (d Decision) String() string {
	switch d {
	case DecisionAllowed:
		return "allowed"
	case DecisionDeleted:
		return "deleted"
	default:
		return "ignored"
	}
}

// Verdict is the result of Pipeline.Handle.
type Verdict struct {
	Decision Decision
	// Escalated is set when the sender's profile was flagged while handling this message.
	Escalated bool
	// Reason is the moderation event reason of a deletion.
	Reason string
}

// Pipeline runs the per-message moderation sequence for the moderated chat.
type Pipeline struct {
	client          platform.Client
	detector        Detector
	mutes           *MuteRegistry
	evaluator       RiskEvaluator
	moderatedChatID int64
	audit           auditor
	locks           *keylock.Locks
	logger          *slog.Logger
}

// NewPipeline creates a Pipeline. store may be nil.
func NewPipeline(
	client platform.Client,
	detector Detector,
	mutes *MuteRegistry,
	evaluator RiskEvaluator,
	moderatedChatID int64,
	store AuditStore,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log := logger.With("component", "moderation_pipeline")

	return &Pipeline{
		client:          client,
		detector:        detector,
		mutes:           mutes,
		evaluator:       evaluator,
		moderatedChatID: moderatedChatID,
		audit:           auditor{store: store, logger: log},
		locks:           keylock.New(),
		logger:          log,
	}
}

// Handle moderates msg. Steps run in a fixed order and stop at the first deletion:
// chat filter, mute check, profile evaluation, content classification.
// Messages of the same sender are moderated one at a time.
func (p *Pipeline) Handle(ctx context.Context, msg platform.Message) Verdict {
	if msg.Ref.ChatID != p.moderatedChatID {
		return Verdict{Decision: DecisionIgnored}
	}

	unlock := p.locks.Lock(msg.SenderID)
	defer unlock()

	if p.mutes.Contains(msg.SenderID) {
		p.delete(ctx, msg, database.ReasonMuted)
		return Verdict{Decision: DecisionDeleted, Reason: database.ReasonMuted}
	}

	escalated := p.evaluator.Evaluate(ctx, msg.SenderID) == RiskFlagged

	if p.detector.IsAdvertisement(msg.Content()) {
		p.delete(ctx, msg, database.ReasonAdvertising)
		return Verdict{Decision: DecisionDeleted, Escalated: escalated, Reason: database.ReasonAdvertising}
	}

	return Verdict{Decision: DecisionAllowed, Escalated: escalated}
}

// delete removes msg without notifying anyone. Failures are only logged at debug level.
func (p *Pipeline) delete(ctx context.Context, msg platform.Message, reason string) {
	if err := p.client.DeleteMessage(ctx, msg.Ref); err != nil {
		p.logger.DebugContext(ctx, "Message deletion failed", "chat_id", msg.Ref.ChatID, "message_id", msg.Ref.MessageID, "error", err)
	} else {
		p.logger.InfoContext(ctx, "Message deleted", "chat_id", msg.Ref.ChatID, "user_id", msg.SenderID, "message_id", msg.Ref.MessageID, "reason", reason)
	}
	p.audit.messageDeleted(ctx, msg.Ref.ChatID, msg.SenderID, msg.Ref.MessageID, reason)
}
