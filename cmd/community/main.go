package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"community-bot/internal/bot"
	"community-bot/internal/config"
	"community-bot/internal/settings"
	"community-bot/pkg/logger"
	"community-bot/pkg/telegram"
)

// ENTRY POINT

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	store, err := newStore(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init settings store", zap.Error(err))
	}
	defer store.Close()

	snap, err := store.Load(ctx)
	if err != nil {
		zapLogger.Fatal("Failed to load settings", zap.Error(err))
	}

	client, err := telegram.New(cfg.TelegramToken, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create Telegram client", zap.Error(err))
	}

	communityBot := bot.New(client, snap, store, cfg, zapLogger)

	if err := communityBot.Run(ctx); err != nil {
		zapLogger.Fatal("Bot stopped with error", zap.Error(err))
	}

	zapLogger.Info("Bot shutdown gracefully")
}

func newStore(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) (settings.Store, error) {
	switch cfg.SettingsStore {
	case "postgres":
		zapLogger.Info("Using PostgreSQL settings store")
		return settings.NewPostgresStore(ctx, settings.PostgresConfig{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
		}, zapLogger)
	default:
		zapLogger.Info("Using file settings store", zap.String("path", cfg.SettingsPath))
		return settings.NewFileStore(cfg.SettingsPath, zapLogger), nil
	}
}
