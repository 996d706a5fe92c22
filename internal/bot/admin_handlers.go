package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleAdminCommand is the tail of private command routing. Non-admins
// fall through silently; an empty admin list means nobody qualifies.
func (b *Bot) handleAdminCommand(ctx context.Context, msg *tgbotapi.Message, cmd string) {
	if !b.settings.IsAdmin(msg.From.ID) {
		return
	}

	switch cmd {
	case "whois":
		b.handleWhoIs(msg)
	case "save":
		if err := b.saveSettings(ctx); err != nil {
			b.reply(msg.Chat.ID, "Saving failed, check the logs.")
			return
		}
		b.reply(msg.Chat.ID, "Settings saved.")
	case "setmeetinglink":
		b.handleSetMeetingLink(ctx, msg)
	case "clearmeetinglink":
		b.settings.MeetingLink = ""
		if err := b.saveSettings(ctx); err != nil {
			b.reply(msg.Chat.ID, "Saving failed, check the logs.")
			return
		}
		b.reply(msg.Chat.ID, "Meeting link cleared.")
	case "setnextmeeting":
		b.startDialog(ctx, msg, NewMeetingDialog(b))
	case "adminadd":
		b.handleAdminAdd(ctx, msg)
	case "adminremove":
		b.handleAdminRemove(ctx, msg)
	default:
		b.reply(msg.Chat.ID, "Unknown command. See /help for what I understand.")
	}
}

func (b *Bot) handleSetMeetingLink(ctx context.Context, msg *tgbotapi.Message) {
	link := commandArguments(msg)
	if link == "" {
		b.reply(msg.Chat.ID, "Usage: /setmeetinglink <url>")
		return
	}

	b.settings.MeetingLink = link
	if err := b.saveSettings(ctx); err != nil {
		b.reply(msg.Chat.ID, "Saving failed, check the logs.")
		return
	}
	b.reply(msg.Chat.ID, "Meeting link updated.")
}

// resolveMention maps the first mention in the message to a noticed user
// id. On failure it replies to the sender and reports false; callers must
// not mutate anything in that case.
func (b *Bot) resolveMention(msg *tgbotapi.Message) (string, int64, bool) {
	mention, ok := firstMention(msg)
	if !ok {
		b.reply(msg.Chat.ID, "Mention the user, e.g. /adminadd @username.")
		return "", 0, false
	}

	userID, ok := b.settings.Resolve(mention)
	if !ok {
		b.reply(msg.Chat.ID, fmt.Sprintf(
			"I do not know %s yet. Ask them to send me /noticeme first.", mention))
		return "", 0, false
	}
	return mention, userID, true
}

func (b *Bot) handleWhoIs(msg *tgbotapi.Message) {
	mention, userID, ok := b.resolveMention(msg)
	if !ok {
		return
	}
	b.reply(msg.Chat.ID, fmt.Sprintf("%s has user id %d.", mention, userID))
}

func (b *Bot) handleAdminAdd(ctx context.Context, msg *tgbotapi.Message) {
	mention, userID, ok := b.resolveMention(msg)
	if !ok {
		return
	}

	if !b.settings.AddAdmin(userID) {
		b.reply(msg.Chat.ID, mention+" is already an admin.")
		return
	}
	if err := b.saveSettings(ctx); err != nil {
		b.reply(msg.Chat.ID, "Saving failed, check the logs.")
		return
	}

	b.logger.Info("Admin added",
		zap.String("username", mention),
		zap.Int64("user_id", userID),
		zap.Int64("by", msg.From.ID))
	b.reply(msg.Chat.ID, mention+" is now an admin.")
}

func (b *Bot) handleAdminRemove(ctx context.Context, msg *tgbotapi.Message) {
	mention, userID, ok := b.resolveMention(msg)
	if !ok {
		return
	}

	if !b.settings.RemoveAdmin(userID) {
		b.reply(msg.Chat.ID, mention+" is not an admin.")
		return
	}
	if err := b.saveSettings(ctx); err != nil {
		b.reply(msg.Chat.ID, "Saving failed, check the logs.")
		return
	}

	b.logger.Info("Admin removed",
		zap.String("username", mention),
		zap.Int64("user_id", userID),
		zap.Int64("by", msg.From.ID))
	b.reply(msg.Chat.ID, mention+" is no longer an admin.")
}
