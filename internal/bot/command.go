package bot

import (
	"strings"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ExtractCommand returns the raw text of the first bot_command entity in
// the message, or false when the message carries no command.
func ExtractCommand(msg *tgbotapi.Message) (string, bool) {
	for _, entity := range msg.Entities {
		if entity.Type == "bot_command" {
			return entityText(msg.Text, entity), true
		}
	}
	return "", false
}

// NormalizeCommand reduces a raw command to its bare lower-cased word:
// "/Foo@SomeBot bar" becomes "foo". Input without a leading slash is not a
// command and yields the empty string.
func NormalizeCommand(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "/") {
		return ""
	}
	s = s[1:]
	if i := strings.IndexAny(s, "@ "); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(s)
}

// firstMention returns the @username of the first mention entity.
func firstMention(msg *tgbotapi.Message) (string, bool) {
	for _, entity := range msg.Entities {
		if entity.Type == "mention" {
			return entityText(msg.Text, entity), true
		}
	}
	return "", false
}

// commandArguments returns the trimmed text following the command word.
func commandArguments(msg *tgbotapi.Message) string {
	_, rest, found := strings.Cut(msg.Text, " ")
	if !found {
		return ""
	}
	return strings.TrimSpace(rest)
}

// Entity offsets count UTF-16 code units, per the Bot API.
func entityText(text string, entity tgbotapi.MessageEntity) string {
	units := utf16.Encode([]rune(text))
	if entity.Offset < 0 || entity.Offset+entity.Length > len(units) {
		return ""
	}
	return string(utf16.Decode(units[entity.Offset : entity.Offset+entity.Length]))
}
