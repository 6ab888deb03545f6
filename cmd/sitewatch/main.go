package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"sitewatch/internal/config"
	"sitewatch/internal/domain"
	"sitewatch/internal/infrastructure"
	"sitewatch/internal/infrastructure/database"
	"sitewatch/internal/presentation"
	"sitewatch/internal/usecase"
)

const probeTimeout = 10 * time.Second

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		return 1
	}

	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("failed to connect to database", slog.Any("error", err))
		return 1
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("failed to access database handle", slog.Any("error", err))
		return 1
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database connection", slog.Any("error", err))
		}
	}()

	subscriberStore := database.NewSubscriberStore(db)
	if err := subscriberStore.AutoMigrate(context.Background()); err != nil {
		slog.Error("failed to run database migrations", slog.Any("error", err))
		return 1
	}
	slog.Info("database ready")

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		slog.Error("failed to create Discord session", slog.Any("error", err))
		return 1
	}

	notifier := presentation.NewDirectMessageNotifier(session)

	subscriptions := usecase.NewSubscriptionService(
		subscriberStore,
		usecase.WithCapReachedHandler(func() {
			if err := notifier.SendCapReachedNotice(context.Background(), cfg.AdminID, domain.MaxSubscribers); err != nil {
				slog.Error("failed to notify admin about subscriber cap", slog.Any("error", err))
			}
		}),
	)

	probe := infrastructure.NewHTTPProbe(probeTimeout)
	board := usecase.NewStatusBoard(probe, cfg.URLs())

	watcher, err := usecase.NewWatchManager(
		board,
		subscriptions,
		notifier,
		usecase.WithWatchInterval(cfg.CheckInterval),
		usecase.WithWatchErrorHandler(
			func(url, userID string, stage usecase.WatchErrorStage, err error) {
				slog.Error(
					"availability alert failed",
					slog.String("url", url),
					slog.String("user", userID),
					slog.Any("stage", stage),
					slog.Any("error", err),
				)
			},
		),
	)
	if err != nil {
		slog.Error("failed to create watch manager", slog.Any("error", err))
		return 1
	}

	bot, err := presentation.NewMonitorBot(session, subscriptions, board)
	if err != nil {
		slog.Error("failed to create bot", slog.Any("error", err))
		return 1
	}

	if err := bot.Start(); err != nil {
		slog.Error("failed to start bot", slog.Any("error", err))
		return 1
	}

	if err := bot.RegisterCommands(); err != nil {
		bot.Stop()
		slog.Error("failed to register commands", slog.Any("error", err))
		return 1
	}

	watcher.Start()
	slog.Info(
		"watching websites",
		slog.Int("count", len(cfg.URLs())),
		slog.Duration("interval", cfg.CheckInterval),
	)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Termination signal received, shutting down...")
	watcher.Stop()
	bot.Stop()
	slog.Info("Bot successfully terminated")

	return 0
}

func main() {
	os.Exit(run())
}
