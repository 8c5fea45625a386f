// Package tasks implements the scheduled tasks of the bot, their
// dependencies and registration.
package tasks

import (
	"log/slog"

	"github.com/edgard/guardbot/internal/config"
	"github.com/edgard/guardbot/internal/database"
	"github.com/edgard/guardbot/internal/dialogue"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Config *config.Config
	Wizard *dialogue.Machine
}
