package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// HandleMessage routes one inbound message. A private-chat sender with an
// active dialog has every message fed to that dialog; anyone else goes
// through command lookup: common commands first, then private-only or
// group-only ones depending on the chat kind.
func (b *Bot) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	if msg.Chat.IsPrivate() {
		if dialog, ok := b.sessions.Get(msg.From.ID); ok {
			b.continueDialog(ctx, dialog, msg)
			return
		}
	}

	raw, ok := ExtractCommand(msg)
	if !ok {
		// Plain text outside a dialog is not an error, just not ours.
		return
	}
	cmd := NormalizeCommand(raw)
	if cmd == "" {
		return
	}

	b.logger.Debug("Dispatching command",
		zap.String("command", cmd),
		zap.Int64("user_id", msg.From.ID),
		zap.String("chat_type", msg.Chat.Type))

	if b.handleCommonCommand(msg, cmd) {
		return
	}
	if msg.Chat.IsPrivate() {
		b.handlePrivateCommand(ctx, msg, cmd)
		return
	}
	b.handleGroupCommand(msg, cmd)
}

// continueDialog feeds the message to the sender's active dialog. /cancel
// always tears the session down; otherwise the session survives until the
// dialog reports completion, so one invalid input does not kill it.
func (b *Bot) continueDialog(ctx context.Context, dialog Dialog, msg *tgbotapi.Message) {
	if raw, ok := ExtractCommand(msg); ok && NormalizeCommand(raw) == "cancel" {
		dialog.Cancel(ctx, msg)
		b.sessions.Remove(msg.From.ID)
		return
	}

	if done := dialog.Update(ctx, msg); done {
		b.sessions.Remove(msg.From.ID)
	}
}

// startDialog begins a new dialog for the sender, replacing any prior one.
func (b *Bot) startDialog(ctx context.Context, msg *tgbotapi.Message, dialog Dialog) {
	dialog.Start(ctx, msg)
	b.sessions.Set(msg.From.ID, dialog)
}

// handleGroupCommand is the group-only extension point. Nothing routes here
// yet beyond the common commands.
func (b *Bot) handleGroupCommand(_ *tgbotapi.Message, _ string) {}
