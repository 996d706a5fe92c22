package settings

import "context"

// MemoryStore holds a snapshot in process memory. Used in tests and as a
// throwaway backend when persistence is not needed.
type MemoryStore struct {
	current *Settings
	saves   int
}

func NewMemoryStore(initial *Settings) *MemoryStore {
	if initial == nil {
		initial = &Settings{NoticedUsers: make(map[string]int64)}
	}
	if initial.NoticedUsers == nil {
		initial.NoticedUsers = make(map[string]int64)
	}
	return &MemoryStore{current: initial}
}

func (m *MemoryStore) Load(_ context.Context) (*Settings, error) {
	return m.current, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Settings) error {
	m.current = s
	m.saves++
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// Saves reports how many times Save has been called.
func (m *MemoryStore) Saves() int { return m.saves }
