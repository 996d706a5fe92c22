package bot

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"community-bot/pkg/telegram"
)

// Broadcast sends the same text to every configured destination chat,
// sequentially. A failed destination is logged and skipped; the rest of the
// list still gets the message. Empty text or an empty destination list is a
// no-op.
func (b *Bot) Broadcast(text string, disablePreview bool) {
	if text == "" || len(b.settings.BroadcastChats) == 0 {
		return
	}

	broadcastID := uuid.New().String()
	b.logger.Info("Broadcasting",
		zap.String("broadcast_id", broadcastID),
		zap.Int("destinations", len(b.settings.BroadcastChats)))

	var opts []telegram.SendOption
	if disablePreview {
		opts = append(opts, telegram.WithoutWebPreview())
	}

	for _, chatID := range b.settings.BroadcastChats {
		if err := b.api.SendText(chatID, text, opts...); err != nil {
			b.logger.Error("Broadcast delivery failed",
				zap.String("broadcast_id", broadcastID),
				zap.Int64("chat_id", chatID),
				zap.Error(err))
		}
	}
}
