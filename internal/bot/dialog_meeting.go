package bot

import (
	"context"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"community-bot/pkg/telegram"
)

type meetingStep int

const (
	stepDateTime meetingStep = iota
	stepLocation
	stepConfirm
	stepDone
)

// MeetingDialog walks an admin through scheduling the next meeting: date
// and time, then location, then a yes/no confirmation that commits the
// change and announces it.
type MeetingDialog struct {
	bot    *Bot
	chatID int64
	userID int64

	step     meetingStep
	date     time.Time
	location string
}

func NewMeetingDialog(b *Bot) *MeetingDialog {
	return &MeetingDialog{bot: b}
}

func (d *MeetingDialog) Start(_ context.Context, msg *tgbotapi.Message) {
	d.chatID = msg.Chat.ID
	d.userID = msg.From.ID
	d.step = stepDateTime
	d.bot.reply(d.chatID, "When is the next meeting? Send a date and time, e.g. 2026-01-10 18:00.")
}

func (d *MeetingDialog) Update(ctx context.Context, msg *tgbotapi.Message) bool {
	switch d.step {
	case stepDateTime:
		d.handleDateTime(msg)
	case stepLocation:
		d.handleLocation(msg)
	case stepConfirm:
		return d.handleConfirmation(ctx, msg)
	}
	return false
}

// Cancel acknowledges the abort. When the dialog is sitting on the yes/no
// prompt, the acknowledgement also clears that keyboard; in every other
// state there is no UI to remove.
func (d *MeetingDialog) Cancel(_ context.Context, msg *tgbotapi.Message) {
	if d.step == stepConfirm {
		d.bot.reply(msg.Chat.ID, "Scheduling cancelled.", telegram.WithKeyboardRemoval())
		return
	}
	d.bot.reply(msg.Chat.ID, "Scheduling cancelled.")
}

func (d *MeetingDialog) handleDateTime(msg *tgbotapi.Message) {
	when, err := dateparse.ParseLocal(strings.TrimSpace(msg.Text))
	if err != nil {
		d.bot.reply(d.chatID, "I could not make a date out of that. Try something like 2026-01-10 18:00.")
		return
	}

	d.date = when
	d.step = stepLocation
	d.bot.reply(d.chatID, "Got it. Where will the meeting take place?")
}

func (d *MeetingDialog) handleLocation(msg *tgbotapi.Message) {
	location := strings.TrimSpace(msg.Text)
	if location == "" {
		d.bot.reply(d.chatID, "The location cannot be empty. Where will the meeting take place?")
		return
	}

	d.location = location
	d.step = stepConfirm
	d.bot.reply(d.chatID,
		"Next meeting: "+d.date.Format(meetingTimeLayout)+"\nLocation: "+d.location+"\n\nShall I announce it?",
		telegram.WithReplyKeyboard(confirmationKeyboard()))
}

// handleConfirmation commits on "yes" (case-insensitive); anything else
// starts the dialog over from the date question, with the accumulated
// values overwritten on the next successful parse.
func (d *MeetingDialog) handleConfirmation(ctx context.Context, msg *tgbotapi.Message) bool {
	if !strings.EqualFold(strings.TrimSpace(msg.Text), "yes") {
		d.step = stepDateTime
		d.bot.reply(d.chatID, "Okay, starting over. When is the next meeting?")
		return false
	}

	d.bot.settings.MeetingDate = d.date
	d.bot.settings.MeetingLocation = d.location
	if err := d.bot.saveSettings(ctx); err != nil {
		d.bot.logger.Warn("Meeting committed but not persisted",
			zap.Int64("user_id", d.userID))
	}

	d.bot.Broadcast(d.bot.formatNextMeeting(), true)
	d.bot.reply(d.chatID, "Done, the meeting is scheduled and announced.")
	d.step = stepDone
	return true
}

func confirmationKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewOneTimeReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Yes"),
			tgbotapi.NewKeyboardButton("No"),
		),
	)
}
