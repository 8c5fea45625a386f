package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewIDHandler returns a handler for the /id command.
func NewIDHandler(deps HandlerDeps) bot.HandlerFunc {
	return idHandler{deps}.Handle
}

// idHandler replies with the id of the current chat, used to fill in the chat settings.
type idHandler struct {
	deps HandlerDeps
}

func (h idHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "id")

	if update.Message == nil {
		log.WarnContext(ctx, "ID handler received update with nil message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Chat id requested", "chat_id", chatID)
	reply(ctx, h.deps.Client, log, chatID, fmt.Sprintf(h.deps.Config.Messages.ChatID, chatID))
}
