package handlers

import (
	"log/slog"

	"github.com/edgard/guardbot/internal/announce"
	"github.com/edgard/guardbot/internal/config"
	"github.com/edgard/guardbot/internal/database"
	"github.com/edgard/guardbot/internal/dialogue"
	"github.com/edgard/guardbot/internal/moderation"
	"github.com/edgard/guardbot/internal/platform"
)

// HandlerDeps provides dependencies for Telegram handlers and middleware.
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Client    platform.Client
	Store     database.Store
	Pipeline  *moderation.Pipeline
	Reviewer  *moderation.Reviewer
	Wizard    *dialogue.Machine
	Announcer *announce.Announcer
}
