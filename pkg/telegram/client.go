package telegram

// TELEGRAM TRANSPORT CLIENT

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// SendOption mutates an outbound message before it is sent.
type SendOption func(*tgbotapi.MessageConfig)

// WithoutWebPreview disables link previews on the outbound message.
func WithoutWebPreview() SendOption {
	return func(msg *tgbotapi.MessageConfig) {
		msg.DisableWebPagePreview = true
	}
}

// WithReplyKeyboard attaches a reply keyboard to the outbound message.
func WithReplyKeyboard(kb tgbotapi.ReplyKeyboardMarkup) SendOption {
	return func(msg *tgbotapi.MessageConfig) {
		msg.ReplyMarkup = kb
	}
}

// WithKeyboardRemoval tells the client app to drop any reply keyboard
// attached by an earlier message in the chat.
func WithKeyboardRemoval() SendOption {
	return func(msg *tgbotapi.MessageConfig) {
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	}
}

type Client struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger
}

// New builds a client for the Bot API. The getMe identity handshake is
// best-effort: if Telegram cannot be reached the client still starts and
// the failure is logged.
func New(token string, logger *zap.Logger) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token is empty")
	}

	// No client timeout: long-poll requests are expected to hang for the
	// duration passed in FetchUpdates.
	api := &tgbotapi.BotAPI{
		Token:  token,
		Client: &http.Client{},
		Buffer: 100,
	}
	api.SetAPIEndpoint(tgbotapi.APIEndpoint)

	c := &Client{api: api, logger: logger}

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 30 * time.Second

	err := backoff.RetryNotify(
		func() error {
			self, err := api.GetMe()
			if err != nil {
				return fmt.Errorf("getMe: %w", err)
			}
			api.Self = self
			return nil
		},
		retryPolicy,
		func(err error, duration time.Duration) {
			logger.Warn("Telegram identity handshake failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)
	if err != nil {
		logger.Warn("Could not fetch bot identity, continuing without it",
			zap.Error(err))
	} else {
		logger.Info("Bot authorized",
			zap.String("username", api.Self.UserName),
			zap.Int64("id", api.Self.ID))
	}

	return c, nil
}

// FetchUpdates long-polls for the next batch of updates starting at offset.
// A long-poll timeout comes back as an empty batch with a nil error, so the
// caller retries with the same offset instead of treating it as a failure.
func (c *Client) FetchUpdates(ctx context.Context, offset, limit, timeoutSeconds int) ([]tgbotapi.Update, error) {
	updates, err := c.api.GetUpdates(tgbotapi.UpdateConfig{
		Offset:  offset,
		Limit:   limit,
		Timeout: timeoutSeconds,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if isTimeout(err) {
			c.logger.Debug("Long poll timed out", zap.Int("offset", offset))
			return nil, nil
		}
		return nil, fmt.Errorf("get updates: %w", err)
	}
	return updates, nil
}

// SendText delivers a text message, retrying transient failures.
func (c *Client) SendText(chatID int64, text string, opts ...SendOption) error {
	msg := tgbotapi.NewMessage(chatID, text)
	for _, opt := range opts {
		opt(&msg)
	}

	retryPolicy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)

	err := backoff.RetryNotify(
		func() error {
			_, err := c.api.Send(msg)
			return err
		},
		retryPolicy,
		func(err error, duration time.Duration) {
			c.logger.Warn("Send failed, retrying...",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)
	if err != nil {
		return fmt.Errorf("send to %d: %w", chatID, err)
	}
	return nil
}

// Self returns the identity captured at construction. Zero value when the
// handshake failed.
func (c *Client) Self() tgbotapi.User {
	return c.api.Self
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
