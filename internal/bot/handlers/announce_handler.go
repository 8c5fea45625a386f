package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewAnnounceHandler returns a handler for the /announce command.
func NewAnnounceHandler(deps HandlerDeps) bot.HandlerFunc {
	return announceHandler{deps}.Handle
}

// announceHandler posts an announcement to the moderated chat. When the command
// replies to a photo, the photo is posted with the text as caption.
type announceHandler struct {
	deps HandlerDeps
}

func (h announceHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "announce")

	if update.Message == nil || update.Message.From == nil {
		log.ErrorContext(ctx, "Announce handler called with nil Message or From", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	text := commandArgs(update.Message.Text)
	photo := largestPhoto(update.Message.ReplyToMessage)

	if text == "" && photo == "" {
		reply(ctx, h.deps.Client, log, chatID, h.deps.Config.Messages.AnnounceUsage)
		return
	}

	target := h.deps.Config.Telegram.ModeratedChatID
	ref, err := h.deps.Announcer.Post(ctx, target, text, photo)
	if err != nil {
		log.ErrorContext(ctx, "Failed to post announcement", "error", err, "target_chat_id", target, "user_id", update.Message.From.ID)
		reply(ctx, h.deps.Client, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	log.InfoContext(ctx, "Announcement posted by admin", "user_id", update.Message.From.ID, "target_chat_id", target, "message_id", ref.MessageID)
	reply(ctx, h.deps.Client, log, chatID, h.deps.Config.Messages.AnnounceDone)
}
