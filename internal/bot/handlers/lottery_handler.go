package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewLotteryHandler returns a handler for the /lottery command.
func NewLotteryHandler(deps HandlerDeps) bot.HandlerFunc {
	return lotteryHandler{deps}.Handle
}

// lotteryHandler starts the lottery wizard for the sender.
type lotteryHandler struct {
	deps HandlerDeps
}

func (h lotteryHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "lottery")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Lottery handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	h.deps.Wizard.Start(ctx, update.Message.From.ID, update.Message.Chat.ID)
}
