package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BroadcastDialog collects exactly one follow-up message and fans it out to
// every community chat, prefixed with the sender's name.
type BroadcastDialog struct {
	bot    *Bot
	chatID int64
	userID int64
}

func NewBroadcastDialog(b *Bot) *BroadcastDialog {
	return &BroadcastDialog{bot: b}
}

func (d *BroadcastDialog) Start(_ context.Context, msg *tgbotapi.Message) {
	d.chatID = msg.Chat.ID
	d.userID = msg.From.ID
	d.bot.reply(d.chatID, "Send me the message you want to broadcast to all community chats.")
}

// Update always completes: whatever the user sends next is the broadcast
// body.
func (d *BroadcastDialog) Update(_ context.Context, msg *tgbotapi.Message) bool {
	text := fmt.Sprintf("Message from %s (@%s):\n%s",
		displayName(msg.From), msg.From.UserName, msg.Text)

	d.bot.Broadcast(text, false)
	d.bot.reply(d.chatID, "Broadcast sent.")
	return true
}

func (d *BroadcastDialog) Cancel(_ context.Context, msg *tgbotapi.Message) {
	d.bot.reply(msg.Chat.ID, "Broadcast cancelled.")
}

func displayName(user *tgbotapi.User) string {
	if user.LastName == "" {
		return user.FirstName
	}
	return user.FirstName + " " + user.LastName
}
