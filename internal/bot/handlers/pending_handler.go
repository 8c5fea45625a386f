package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const pendingListLimit = 20

// NewPendingHandler returns a handler for the /pending command.
func NewPendingHandler(deps HandlerDeps) bot.HandlerFunc {
	return pendingHandler{deps}.Handle
}

// pendingHandler lists escalation alerts no moderator has acted on yet.
type pendingHandler struct {
	deps HandlerDeps
}

func (h pendingHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "pending")

	if update.Message == nil || update.Message.From == nil {
		log.ErrorContext(ctx, "Pending handler called with nil Message or From", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Admin requested pending escalations", "chat_id", chatID, "user_id", update.Message.From.ID)

	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cases, err := h.deps.Store.GetPendingEscalationCases(timeoutCtx, pendingListLimit)
	if err != nil {
		log.ErrorContext(ctx, "Failed to get pending escalations", "error", err, "chat_id", chatID)
		reply(ctx, h.deps.Client, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	if len(cases) == 0 {
		reply(ctx, h.deps.Client, log, chatID, h.deps.Config.Messages.PendingNone)
		return
	}

	var sb strings.Builder
	sb.WriteString(h.deps.Config.Messages.PendingHeader)
	for _, c := range cases {
		name := c.Username
		if name == "" {
			name = "?"
		}
		fmt.Fprintf(&sb, "\n• %s (%d), %s", name, c.UserID, c.CreatedAt.UTC().Format("2006-01-02 15:04"))
	}

	reply(ctx, h.deps.Client, log, chatID, sb.String())
}
