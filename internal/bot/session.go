package bot

// Sessions maps a user id to their single in-progress dialog. Only private
// chat traffic ever touches it.
//
// Not safe for concurrent use: everything runs on the poll loop goroutine,
// so there is no locking here on purpose.
type Sessions struct {
	active map[int64]Dialog
}

func NewSessions() *Sessions {
	return &Sessions{active: make(map[int64]Dialog)}
}

func (s *Sessions) Get(userID int64) (Dialog, bool) {
	dialog, ok := s.active[userID]
	return dialog, ok
}

// Set replaces any dialog the user already had.
func (s *Sessions) Set(userID int64, dialog Dialog) {
	s.active[userID] = dialog
}

func (s *Sessions) Remove(userID int64) {
	delete(s.active, userID)
}

func (s *Sessions) Len() int {
	return len(s.active)
}
