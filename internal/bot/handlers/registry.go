package handlers

import (
	"sort"

	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/guardbot/internal/dialogue"
	"github.com/edgard/guardbot/internal/moderation"
)

// RegisteredHandler represents a handler with its description and middleware.
// It encapsulates all information needed to register and document a command.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
	// Description is shown in the command menu; empty hides the handler.
	Description string
}

// Command is one entry of the bot command menu.
type Command struct {
	Command     string
	Description string
}

// RegisterAllCommands initializes and returns a map of all bot commands and callbacks.
// Plain text outside commands goes to the default handler, see NewDefaultHandler.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)
	msgs := deps.Config.Messages

	handlers["/lottery"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "lottery",
		Handler:     NewLotteryHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Description: msgs.CmdLottery,
	}
	handlers["/cancel"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "cancel",
		Handler:     NewCancelHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Description: msgs.CmdCancel,
	}
	handlers["/id"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "id",
		Handler:     NewIDHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Description: msgs.CmdID,
	}

	adminMiddleware := []tgbot.Middleware{AdminOnly(deps)}

	handlers["/announce"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "announce",
		Handler:     NewAnnounceHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  adminMiddleware,
		Description: msgs.CmdAnnounce,
	}
	handlers["/pending"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "pending",
		Handler:     NewPendingHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  adminMiddleware,
		Description: msgs.CmdPending,
	}

	review := NewReviewHandler(deps)
	handlers["callback:ban"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     moderation.BanActionPrefix,
		Handler:     review,
		MatchType:   tgbot.MatchTypePrefix,
	}
	handlers["callback:allow"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     moderation.AllowActionPrefix,
		Handler:     review,
		MatchType:   tgbot.MatchTypePrefix,
	}
	handlers["callback:check_perms"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     dialogue.ActionCheckPermissions,
		Handler:     NewWizardActionHandler(deps),
		MatchType:   tgbot.MatchTypeExact,
	}

	return handlers
}

// Commands lists the menu entries of handlers, sorted by command.
func Commands(handlers map[string]RegisteredHandler) []Command {
	var commands []Command
	for _, h := range handlers {
		if h.HandlerType != tgbot.HandlerTypeMessageText || h.MatchType != tgbot.MatchTypeCommandStartOnly || h.Description == "" {
			continue
		}
		commands = append(commands, Command{Command: h.Pattern, Description: h.Description})
	}
	sort.Slice(commands, func(i, j int) bool { return commands[i].Command < commands[j].Command })
	return commands
}
