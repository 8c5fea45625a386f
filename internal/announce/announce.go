// Package announce posts bot announcements followed by an anti-fraud warning.
package announce

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/edgard/guardbot/internal/platform"
)

// DefaultWarning is formatted with the support contact.
const DefaultWarning = "⚠️ Осторожно, мошенники! Мы НИКОГДА не пишем в ЛС с предложениями оплатить или что-то сделать.\n" +
	"Единственный контакт: %s"

// Announcer posts announcements and replies to each with the warning.
type Announcer struct {
	client  platform.Client
	warning string
	logger  *slog.Logger
}

// New creates an Announcer. warningFmt is formatted with supportContact; empty selects DefaultWarning.
func New(client platform.Client, warningFmt, supportContact string, logger *slog.Logger) *Announcer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if warningFmt == "" {
		warningFmt = DefaultWarning
	}
	return &Announcer{
		client:  client,
		warning: fmt.Sprintf(warningFmt, supportContact),
		logger:  logger.With("component", "announcer"),
	}
}

// Warning returns the rendered warning text.
func (a *Announcer) Warning() string {
	return a.warning
}

// Post sends text to chatID, as the caption of photo when photo is set. The
// warning reply is best-effort; only a failed announcement is returned.
func (a *Announcer) Post(ctx context.Context, chatID int64, text, photo string) (platform.MessageRef, error) {
	var (
		ref platform.MessageRef
		err error
	)
	if photo != "" {
		ref, err = a.client.SendPhoto(ctx, chatID, photo, text)
	} else {
		ref, err = a.client.SendMessage(ctx, chatID, text, platform.SendOptions{})
	}
	if err != nil {
		return platform.MessageRef{}, fmt.Errorf("failed to post announcement: %w", err)
	}

	if _, err := a.client.SendMessage(ctx, chatID, a.warning, platform.SendOptions{ReplyTo: ref.MessageID}); err != nil {
		// Channels without comments reject replies.
		a.logger.DebugContext(ctx, "Warning reply not posted", "chat_id", chatID, "message_id", ref.MessageID, "error", err)
	}

	a.logger.InfoContext(ctx, "Announcement posted", "chat_id", chatID, "message_id", ref.MessageID, "with_photo", photo != "")
	return ref, nil
}
