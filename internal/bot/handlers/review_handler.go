package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewReviewHandler returns a handler for the ban and allow buttons of escalation alerts.
func NewReviewHandler(deps HandlerDeps) bot.HandlerFunc {
	return reviewHandler{deps}.Handle
}

type reviewHandler struct {
	deps HandlerDeps
}

func (h reviewHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "review")

	if update.CallbackQuery == nil {
		log.WarnContext(ctx, "Review handler received update without callback query", "update_id", update.ID)
		return
	}

	action := toAction(update.CallbackQuery)
	if escalation := h.deps.Config.Telegram.EscalationChatID; action.Origin.ChatID != 0 && action.Origin.ChatID != escalation {
		log.WarnContext(ctx, "Review action outside the escalation chat", "chat_id", action.Origin.ChatID, "user_id", action.UserID)
		if err := h.deps.Client.AnswerAction(ctx, action.ID); err != nil {
			log.ErrorContext(ctx, "Failed to answer callback", "error", err)
		}
		return
	}

	res, err := h.deps.Reviewer.Review(ctx, action)
	if err != nil {
		return
	}
	log.DebugContext(ctx, "Review applied", "user_id", res.UserID, "status", res.Status)
}
