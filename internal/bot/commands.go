package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"community-bot/pkg/telegram"
)

const meetingTimeLayout = "Monday, 2 January 2006 at 15:04"

const helpText = `Here is what I can do:
/help - show this message
/hashtags - department hashtag reference
/meetinglink - link for the current meeting
/nextmeeting - when and where we meet next
/broadcast - send a message to all community chats (private chat only)
/noticeme - let me remember your username
/cancel - abort whatever we were doing

Admins also get /whois, /save, /setmeetinglink, /clearmeetinglink, /setnextmeeting, /adminadd and /adminremove.`

const hashtagsText = `Tag your posts so the right department sees them:
#frontend #backend #mobile #devops #design #hr

Full reference: https://wiki.community.dev/hashtags`

// handleCommonCommand covers commands that work in any chat kind. Reports
// false when the command is not one of them.
func (b *Bot) handleCommonCommand(msg *tgbotapi.Message, cmd string) bool {
	switch cmd {
	case "help", "start":
		b.reply(msg.Chat.ID, helpText)
	case "hashtags", "hashtag", "tags":
		b.reply(msg.Chat.ID, hashtagsText, telegram.WithoutWebPreview())
	case "meetinglink":
		b.handleMeetingLink(msg)
	case "nextmeeting":
		b.reply(msg.Chat.ID, b.formatNextMeeting(), telegram.WithoutWebPreview())
	default:
		return false
	}
	return true
}

func (b *Bot) handlePrivateCommand(ctx context.Context, msg *tgbotapi.Message, cmd string) {
	switch cmd {
	case "broadcast":
		b.startDialog(ctx, msg, NewBroadcastDialog(b))
	case "noticeme":
		b.handleNoticeMe(ctx, msg)
	case "cancel":
		b.reply(msg.Chat.ID, "Nothing to cancel.")
	default:
		b.handleAdminCommand(ctx, msg, cmd)
	}
}

func (b *Bot) handleMeetingLink(msg *tgbotapi.Message) {
	if b.settings.MeetingLink == "" {
		b.reply(msg.Chat.ID, "No meeting link is set right now.")
		return
	}
	b.reply(msg.Chat.ID, "Link for the current meeting: "+b.settings.MeetingLink)
}

func (b *Bot) formatNextMeeting() string {
	if b.settings.MeetingDate.IsZero() {
		return "The next meeting has not been scheduled yet."
	}
	text := "Next meeting: " + b.settings.MeetingDate.Format(meetingTimeLayout) +
		"\nLocation: " + b.settings.MeetingLocation
	if b.settings.MeetingLink != "" {
		text += "\nLink: " + b.settings.MeetingLink
	}
	return text
}

// handleNoticeMe records the sender's username so admins can later refer to
// them by mention.
func (b *Bot) handleNoticeMe(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From.UserName == "" {
		b.reply(msg.Chat.ID, "Your account has no username, there is nothing for me to remember.")
		return
	}

	b.settings.Notice(msg.From.UserName, msg.From.ID)
	if err := b.saveSettings(ctx); err != nil {
		b.reply(msg.Chat.ID, "I could not persist that, please try again later.")
		return
	}

	b.logger.Info("Noticed user",
		zap.String("username", msg.From.UserName),
		zap.Int64("user_id", msg.From.ID))
	b.reply(msg.Chat.ID, "Noticed! Admins can now mention you as @"+msg.From.UserName+".")
}
