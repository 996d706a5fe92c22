package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"community-bot/internal/config"
	"community-bot/internal/settings"
	"community-bot/pkg/telegram"
)

// Transport is the outbound/inbound surface of the chat platform. It is an
// interface so tests can run the bot against a fake.
type Transport interface {
	FetchUpdates(ctx context.Context, offset, limit, timeoutSeconds int) ([]tgbotapi.Update, error)
	SendText(chatID int64, text string, opts ...telegram.SendOption) error
	Self() tgbotapi.User
}

type Bot struct {
	api      Transport
	settings *settings.Settings
	store    settings.Store
	sessions *Sessions
	logger   *zap.Logger

	pollTimeoutSeconds int
	updateLimit        int
}

func New(
	api Transport,
	snap *settings.Settings,
	store settings.Store,
	cfg *config.Config,
	logger *zap.Logger,
) *Bot {
	return &Bot{
		api:                api,
		settings:           snap,
		store:              store,
		sessions:           NewSessions(),
		logger:             logger,
		pollTimeoutSeconds: int(cfg.PollTimeout.Seconds()),
		updateLimit:        cfg.UpdateLimit,
	}
}

// Run drives the poll loop until ctx is cancelled or an iteration panics.
// Every message in a batch is dispatched fully before the next one is
// looked at; there is no other goroutine touching bot state.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting poll loop",
		zap.Int("poll_timeout_seconds", b.pollTimeoutSeconds),
		zap.Int("update_limit", b.updateLimit))

	offset := 0
	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down poll loop")
			return nil
		default:
		}

		updates, err := b.api.FetchUpdates(ctx, offset, b.updateLimit, b.pollTimeoutSeconds)
		if err != nil {
			if ctx.Err() != nil {
				b.logger.Info("Shutting down poll loop")
				return nil
			}
			// Transient: retry with the same offset.
			b.logger.Warn("Failed to fetch updates", zap.Error(err))
			continue
		}

		if err := b.processBatch(ctx, updates, &offset); err != nil {
			return err
		}
	}
}

// processBatch advances the offset past every update in the batch, even the
// ones it skips, so an acknowledged id is never re-delivered. A panic in a
// handler is fatal to the run: the state that caused it is unknown.
func (b *Bot) processBatch(ctx context.Context, updates []tgbotapi.Update, offset *int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Panic while processing updates", zap.Any("panic", r))
			err = fmt.Errorf("panic while processing updates: %v", r)
		}
	}()

	for _, update := range updates {
		if update.UpdateID >= *offset {
			*offset = update.UpdateID + 1
		}
		if update.Message == nil || update.Message.Text == "" {
			continue
		}
		b.HandleMessage(ctx, update.Message)
	}
	return nil
}

func (b *Bot) reply(chatID int64, text string, opts ...telegram.SendOption) {
	if err := b.api.SendText(chatID, text, opts...); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

func (b *Bot) saveSettings(ctx context.Context) error {
	if err := b.store.Save(ctx, b.settings); err != nil {
		b.logger.Error("Failed to save settings", zap.Error(err))
		return err
	}
	return nil
}
