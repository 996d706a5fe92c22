package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Dialog is one multistep private-chat interaction, advanced one message at
// a time. Start runs on the triggering command; every later message from
// the same user goes to Update until it reports completion or the user
// cancels. The dispatcher removes a completed dialog from the session table
// on the same call, so Update is never invoked again after returning true.
type Dialog interface {
	Start(ctx context.Context, msg *tgbotapi.Message)
	Update(ctx context.Context, msg *tgbotapi.Message) bool
	Cancel(ctx context.Context, msg *tgbotapi.Message)
}
