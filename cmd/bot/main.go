// Package main contains the entrypoint for the group moderation bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/guardbot/internal/announce"
	"github.com/edgard/guardbot/internal/bot"
	"github.com/edgard/guardbot/internal/bot/handlers"
	"github.com/edgard/guardbot/internal/bot/tasks"
	"github.com/edgard/guardbot/internal/config"
	"github.com/edgard/guardbot/internal/database"
	"github.com/edgard/guardbot/internal/dialogue"
	"github.com/edgard/guardbot/internal/logger"
	"github.com/edgard/guardbot/internal/moderation"
	"github.com/edgard/guardbot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger, db,
// moderation, wizard, bot, scheduler), handles graceful shutdown, and returns
// an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	client := telegram.NewClient(cfg.Telegram.RequestTimeout)
	msgs := cfg.Messages

	moderationTexts := moderation.Texts{
		ProfileAlert:    msgs.ProfileAlert,
		UnknownUsername: msgs.UnknownUsername,
		BanButton:       msgs.BanButton,
		AllowButton:     msgs.AllowButton,
		Banned:          msgs.Banned,
		BanFailed:       msgs.BanFailed,
		Allowed:         msgs.Allowed,
	}
	mutes := moderation.NewMuteRegistry()
	classifier := moderation.NewClassifier(cfg.Moderation.AdMarkers)
	log.Info("Advertising classifier ready", "markers", classifier.Markers())
	evaluator := moderation.NewProfileEvaluator(client, classifier, mutes, store, moderation.ProfileEvaluatorConfig{
		EscalationChatID: cfg.Telegram.EscalationChatID,
		SnapshotLimit:    cfg.Moderation.AlertSnapshotLimit,
		Texts:            moderationTexts,
	}, log)

	wizardTexts := dialogue.Texts{
		Welcome:            msgs.WizardWelcome,
		PermissionsRequest: msgs.WizardPermissionsRequest,
		CheckPrompt:        msgs.WizardCheckPrompt,
		CheckButton:        msgs.WizardCheckButton,
		Cancelled:          msgs.WizardCancelled,
	}

	hDeps := handlers.HandlerDeps{
		Logger:    log,
		Config:    cfg,
		Client:    client,
		Store:     store,
		Pipeline:  moderation.NewPipeline(client, classifier, mutes, evaluator, cfg.Telegram.ModeratedChatID, store, log),
		Reviewer:  moderation.NewReviewer(client, mutes, cfg.Telegram.ModeratedChatID, moderationTexts, store, log),
		Wizard:    dialogue.NewMachine(client, dialogue.NewMemoryStore(), wizardTexts, log),
		Announcer: announce.New(client, msgs.FraudWarning, cfg.Telegram.SupportUsername, log),
	}
	log.Debug("Announcement warning rendered", "warning", hDeps.Announcer.Warning())
	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
		Config: cfg,
		Wizard: hDeps.Wizard,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log), handlers.Moderation(hDeps)),
		tgbot.WithDefaultHandler(handlers.NewDefaultHandler(hDeps)),
		tgbot.WithErrorsHandler(func(err error) {
			log.Error("Telegram polling error", "error", err)
		}),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}
	client.Bind(tg)

	me, err := tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	if cfg.Telegram.DropPendingUpdates {
		if _, err := tg.DeleteWebhook(ctx, &tgbot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
			log.Warn("Failed to drop pending updates", "error", err)
		}
	}

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}
	app := bot.NewBot(log, cfg, store, tg, cmdHandlers, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
