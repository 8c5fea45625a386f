// Package handlers contains Telegram bot command, callback and message
// handlers, along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/guardbot/internal/moderation"
)

// AdminOnly creates a middleware that checks if the message sender is a configured admin.
// If not, it sends a "Not Authorized" message and stops processing by returning early.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				return
			}

			userID := update.Message.From.ID
			if !deps.Config.IsAdmin(userID) {
				chatID := update.Message.Chat.ID
				log := deps.Logger.With("middleware", "AdminOnly")
				log.WarnContext(ctx, "Unauthorized access attempt", "user_id", userID, "chat_id", chatID)

				reply(ctx, deps.Client, log, chatID, deps.Config.Messages.NotAuthorized)
				return
			}

			next(ctx, bot, update)
		}
	}
}

// Moderation runs every incoming message through the moderation pipeline before
// any handler sees it. Deleted messages are not passed on.
func Moderation(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			if update.Message == nil {
				next(ctx, bot, update)
				return
			}

			verdict := deps.Pipeline.Handle(ctx, toMessage(update.Message))
			if verdict.Decision == moderation.DecisionDeleted {
				deps.Logger.DebugContext(ctx, "Update dropped after deletion", "update_id", update.ID, "reason", verdict.Reason)
				return
			}

			next(ctx, bot, update)
		}
	}
}
