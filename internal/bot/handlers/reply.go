package handlers

import (
	"context"
	"log/slog"

	"github.com/edgard/guardbot/internal/platform"
)

// reply sends text to chatID and logs a failure.
func reply(ctx context.Context, client platform.Client, log *slog.Logger, chatID int64, text string) {
	if _, err := client.SendMessage(ctx, chatID, text, platform.SendOptions{}); err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
	}
}
