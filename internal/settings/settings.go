package settings

import (
	"context"
	"strings"
	"time"
)

// Settings is the mutable snapshot of everything the bot persists between
// runs. It is loaded once at startup and written back through a Store on
// every admin mutation. All access happens on the poll loop goroutine.
type Settings struct {
	Admins          []int64          `yaml:"admins" json:"admins"`
	BroadcastChats  []int64          `yaml:"broadcast_chats" json:"broadcast_chats"`
	MeetingDate     time.Time        `yaml:"meeting_date" json:"meeting_date"`
	MeetingLocation string           `yaml:"meeting_location" json:"meeting_location"`
	MeetingLink     string           `yaml:"meeting_link,omitempty" json:"meeting_link,omitempty"`
	NoticedUsers    map[string]int64 `yaml:"noticed_users" json:"noticed_users"`
}

// Store persists a Settings snapshot. A Load failure at startup is fatal to
// the process.
type Store interface {
	Load(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
	Close() error
}

func (s *Settings) IsAdmin(userID int64) bool {
	for _, id := range s.Admins {
		if id == userID {
			return true
		}
	}
	return false
}

// AddAdmin reports false when the id is already in the list.
func (s *Settings) AddAdmin(userID int64) bool {
	if s.IsAdmin(userID) {
		return false
	}
	s.Admins = append(s.Admins, userID)
	return true
}

// RemoveAdmin reports false when the id was not in the list.
func (s *Settings) RemoveAdmin(userID int64) bool {
	for i, id := range s.Admins {
		if id == userID {
			s.Admins = append(s.Admins[:i], s.Admins[i+1:]...)
			return true
		}
	}
	return false
}

// Notice records a username to user id mapping for later mention
// resolution. Usernames are stored lower-cased without the @ prefix.
func (s *Settings) Notice(username string, userID int64) {
	if s.NoticedUsers == nil {
		s.NoticedUsers = make(map[string]int64)
	}
	s.NoticedUsers[normalizeUsername(username)] = userID
}

// Resolve maps a mention back to a previously noticed user id.
func (s *Settings) Resolve(mention string) (int64, bool) {
	id, ok := s.NoticedUsers[normalizeUsername(mention)]
	return id, ok
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimPrefix(username, "@"))
}
