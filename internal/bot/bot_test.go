package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"community-bot/internal/config"
	"community-bot/internal/settings"
	"community-bot/pkg/telegram"
)

// fakeTransport records everything the bot sends and replays canned update
// batches. Once the batches run out it cancels the run context so Run
// returns.
type fakeTransport struct {
	batches  [][]tgbotapi.Update
	offsets  []int
	sent     []tgbotapi.MessageConfig
	failChat map[int64]bool
	cancel   context.CancelFunc
}

func (f *fakeTransport) FetchUpdates(ctx context.Context, offset, _, _ int) ([]tgbotapi.Update, error) {
	f.offsets = append(f.offsets, offset)
	if len(f.batches) == 0 {
		if f.cancel != nil {
			f.cancel()
		}
		return nil, context.Canceled
	}
	batch := f.batches[0]
	f.batches = f.batches[1:]
	return batch, nil
}

func (f *fakeTransport) SendText(chatID int64, text string, opts ...telegram.SendOption) error {
	msg := tgbotapi.NewMessage(chatID, text)
	for _, opt := range opts {
		opt(&msg)
	}
	f.sent = append(f.sent, msg)
	if f.failChat[chatID] {
		return errors.New("send failed")
	}
	return nil
}

func (f *fakeTransport) Self() tgbotapi.User {
	return tgbotapi.User{ID: 42, UserName: "community_bot"}
}

func (f *fakeTransport) sentTo(chatID int64) []tgbotapi.MessageConfig {
	var out []tgbotapi.MessageConfig
	for _, msg := range f.sent {
		if msg.ChatID == chatID {
			out = append(out, msg)
		}
	}
	return out
}

func newTestBot(t *testing.T, snap *settings.Settings) (*Bot, *fakeTransport, *settings.MemoryStore) {
	t.Helper()

	transport := &fakeTransport{failChat: make(map[int64]bool)}
	store := settings.NewMemoryStore(snap)
	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}

	cfg := &config.Config{PollTimeout: time.Second, UpdateLimit: 100}
	return New(transport, loaded, store, cfg, zap.NewNop()), transport, store
}

func textMessage(userID int64, chatID int64, chatType, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID, FirstName: "Alice", UserName: "alice"},
		Chat: &tgbotapi.Chat{ID: chatID, Type: chatType},
		Text: text,
	}
}

func privateText(userID int64, text string) *tgbotapi.Message {
	return textMessage(userID, userID, "private", text)
}

// privateCommand builds a private message whose first word is tagged as a
// bot_command entity, the way Telegram annotates it.
func privateCommand(userID int64, text string) *tgbotapi.Message {
	msg := privateText(userID, text)
	length := len(text)
	if i := strings.Index(text, " "); i >= 0 {
		length = i
	}
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}}
	return msg
}

// withMention tags a span of the message text as a @username mention.
func withMention(msg *tgbotapi.Message, offset, length int) *tgbotapi.Message {
	msg.Entities = append(msg.Entities, tgbotapi.MessageEntity{
		Type: "mention", Offset: offset, Length: length,
	})
	return msg
}

func TestRunAdvancesOffsetPastSkippedUpdates(t *testing.T) {
	b, transport, _ := newTestBot(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	transport.cancel = cancel
	transport.batches = [][]tgbotapi.Update{{
		{UpdateID: 55, Message: privateText(1, "hello")},
		{UpdateID: 56}, // no message at all
		{UpdateID: 57, Message: &tgbotapi.Message{ // non-text content
			From: &tgbotapi.User{ID: 2},
			Chat: &tgbotapi.Chat{ID: 2, Type: "private"},
		}},
	}}

	if err := b.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(transport.offsets) < 2 {
		t.Fatalf("expected at least two fetches, got %d", len(transport.offsets))
	}
	if got := transport.offsets[1]; got != 58 {
		t.Errorf("second fetch offset = %d, want 58", got)
	}
}

func TestRunTreatsEmptyBatchAsRetry(t *testing.T) {
	b, transport, _ := newTestBot(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	transport.cancel = cancel
	transport.batches = [][]tgbotapi.Update{
		{}, // long-poll timeout surfaces as an empty batch
		{{UpdateID: 10, Message: privateText(1, "hi")}},
	}

	if err := b.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []int{0, 0, 11}
	if len(transport.offsets) != len(want) {
		t.Fatalf("fetch offsets = %v, want %v", transport.offsets, want)
	}
	for i, offset := range want {
		if transport.offsets[i] != offset {
			t.Errorf("fetch %d offset = %d, want %d", i, transport.offsets[i], offset)
		}
	}
}

func TestRunStopsAfterHandlerPanic(t *testing.T) {
	b, transport, _ := newTestBot(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	transport.cancel = cancel
	// A message with no chat blows up dispatch; the run must end with an
	// error instead of looping on unknown state.
	transport.batches = [][]tgbotapi.Update{{
		{UpdateID: 1, Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: 1},
			Text: "boom",
		}},
	}}

	if err := b.Run(ctx); err == nil {
		t.Fatal("expected Run to return an error after a handler panic")
	}
}
