package moderation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/edgard/guardbot/internal/database"
	"github.com/edgard/guardbot/internal/platform"
)

// Action data prefixes carried by the buttons of an escalation alert.
const (
	BanActionPrefix   = "ban_"
	AllowActionPrefix = "allow_"
)

// ErrMalformedAction is returned for action data that is not a ban or allow action.
var ErrMalformedAction = errors.New("malformed escalation action")

// ReviewKind is the moderator's decision on an alert.
type ReviewKind int

const (
	ReviewBan ReviewKind = iota + 1
	ReviewAllow
)

// BanActionData returns the ban button data for userID.
func BanActionData(userID int64) string {
	return BanActionPrefix + strconv.FormatInt(userID, 10)
}

// AllowActionData returns the allow-exception button data for userID.
func AllowActionData(userID int64) string {
	return AllowActionPrefix + strconv.FormatInt(userID, 10)
}

// ParseActionData decodes escalation button data.
func ParseActionData(data string) (ReviewKind, int64, error) {
	var kind ReviewKind
	var raw string
	switch {
	case strings.HasPrefix(data, BanActionPrefix):
		kind, raw = ReviewBan, strings.TrimPrefix(data, BanActionPrefix)
	case strings.HasPrefix(data, AllowActionPrefix):
		kind, raw = ReviewAllow, strings.TrimPrefix(data, AllowActionPrefix)
	default:
		return 0, 0, fmt.Errorf("%w: unknown prefix in %q", ErrMalformedAction, data)
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad user id in %q: %v", ErrMalformedAction, data, err)
	}
	return kind, userID, nil
}

// Resolution reports what a review did.
type Resolution struct {
	Kind   ReviewKind
	UserID int64
	// Status is the escalation case status the review resolved to.
	Status string
	// BanErr is the ban failure, if any.
	BanErr error
}

// Reviewer applies moderator decisions made on escalation alerts.
type Reviewer struct {
	client          platform.Client
	mutes           *MuteRegistry
	moderatedChatID int64
	texts           Texts
	audit           auditor
	logger          *slog.Logger
}

// NewReviewer creates a Reviewer. store may be nil.
func NewReviewer(client platform.Client, mutes *MuteRegistry, moderatedChatID int64, texts Texts, store AuditStore, logger *slog.Logger) *Reviewer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log := logger.With("component", "escalation_reviewer")

	return &Reviewer{
		client:          client,
		mutes:           mutes,
		moderatedChatID: moderatedChatID,
		texts:           texts.withDefaults(),
		audit:           auditor{store: store, logger: log},
		logger:          log,
	}
}

// Review acknowledges the action, then bans or allows the user it names and
// reports the outcome by editing the alert. The user is unmuted in every case.
func (r *Reviewer) Review(ctx context.Context, action platform.Action) (Resolution, error) {
	if err := r.client.AnswerAction(ctx, action.ID); err != nil {
		r.logger.WarnContext(ctx, "Failed to acknowledge action", "action_id", action.ID, "error", err)
	}

	kind, userID, err := ParseActionData(action.Data)
	if err != nil {
		r.logger.WarnContext(ctx, "Ignoring escalation action", "data", action.Data, "error", err)
		return Resolution{}, err
	}

	res := Resolution{Kind: kind, UserID: userID}
	var reply string

	switch kind {
	case ReviewBan:
		res.BanErr = r.client.BanMember(ctx, r.moderatedChatID, userID)
		if res.BanErr != nil {
			r.logger.ErrorContext(ctx, "Failed to ban user", "user_id", userID, "chat_id", r.moderatedChatID, "moderator_id", action.UserID, "error", res.BanErr)
			res.Status = database.CaseStatusBanFailed
			reply = fmt.Sprintf(r.texts.BanFailed, res.BanErr)
		} else {
			r.logger.InfoContext(ctx, "User banned", "user_id", userID, "chat_id", r.moderatedChatID, "moderator_id", action.UserID)
			res.Status = database.CaseStatusBanned
			reply = r.texts.Banned
		}
		r.mutes.Remove(userID)
	case ReviewAllow:
		r.mutes.Remove(userID)
		r.logger.InfoContext(ctx, "User allowed by moderator", "user_id", userID, "moderator_id", action.UserID)
		res.Status = database.CaseStatusAllowed
		reply = r.texts.Allowed
	}

	r.editAlert(ctx, action.Origin, reply)

	note := ""
	if res.BanErr != nil {
		note = res.BanErr.Error()
	}
	r.audit.escalationResolved(ctx, userID, res.Status, note)

	return res, nil
}

func (r *Reviewer) editAlert(ctx context.Context, alert platform.MessageRef, text string) {
	if alert.MessageID == 0 {
		r.logger.WarnContext(ctx, "Alert message not accessible, cannot report result", "chat_id", alert.ChatID)
		return
	}
	if err := r.client.EditMessageText(ctx, alert, text); err != nil {
		r.logger.ErrorContext(ctx, "Failed to edit alert message", "chat_id", alert.ChatID, "message_id", alert.MessageID, "error", err)
	}
}
