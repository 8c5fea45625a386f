package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/guardbot/internal/dialogue"
)

// NewDefaultHandler returns the handler for updates no other handler matched.
// Plain text from users with an open wizard session is fed to the wizard.
func NewDefaultHandler(deps HandlerDeps) bot.HandlerFunc {
	return wizardTextHandler{deps}.Handle
}

type wizardTextHandler struct {
	deps HandlerDeps
}

func (h wizardTextHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Text == "" || isCommand(msg.Text) {
		return
	}

	out, err := h.deps.Wizard.Handle(ctx, msg.From.ID, dialogue.TextInput(msg.Chat.ID, msg.Text))
	logWizardOutcome(ctx, h.deps.Logger.With("handler", "wizard_text"), out, err, msg.From.ID)
}

// NewWizardActionHandler returns a handler for wizard buttons.
func NewWizardActionHandler(deps HandlerDeps) bot.HandlerFunc {
	return wizardActionHandler{deps}.Handle
}

type wizardActionHandler struct {
	deps HandlerDeps
}

func (h wizardActionHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "wizard_action")

	if update.CallbackQuery == nil {
		log.WarnContext(ctx, "Wizard action handler received update without callback query", "update_id", update.ID)
		return
	}

	action := toAction(update.CallbackQuery)
	if err := h.deps.Client.AnswerAction(ctx, action.ID); err != nil {
		log.ErrorContext(ctx, "Failed to answer callback", "error", err, "user_id", action.UserID)
	}

	if action.Origin.ChatID == 0 {
		log.WarnContext(ctx, "Wizard action without origin chat", "user_id", action.UserID)
		return
	}

	out, err := h.deps.Wizard.Handle(ctx, action.UserID, dialogue.ActionInput(action.Origin.ChatID, action.Data))
	logWizardOutcome(ctx, log, out, err, action.UserID)
}

func logWizardOutcome(ctx context.Context, log *slog.Logger, out dialogue.Outcome, err error, userID int64) {
	switch {
	case errors.Is(err, dialogue.ErrNotImplemented):
		log.InfoContext(ctx, "Wizard step not available yet", "user_id", userID, "state", out.From)
	case err != nil:
		log.ErrorContext(ctx, "Wizard input failed", "user_id", userID, "error", err)
	case out.Handled:
		log.DebugContext(ctx, "Wizard advanced", "user_id", userID, "from", out.From, "to", out.To)
	}
}
