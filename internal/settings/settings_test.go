package settings

import "testing"

func TestNoticeAndResolve(t *testing.T) {
	s := &Settings{}

	s.Notice("Alice", 1)
	s.Notice("@Bob", 2)

	tests := []struct {
		mention string
		want    int64
	}{
		{"@alice", 1},
		{"alice", 1},
		{"@ALICE", 1},
		{"@bob", 2},
	}
	for _, tt := range tests {
		got, ok := s.Resolve(tt.mention)
		if !ok || got != tt.want {
			t.Errorf("Resolve(%q) = (%d, %v), want (%d, true)", tt.mention, got, ok, tt.want)
		}
	}

	if _, ok := s.Resolve("@stranger"); ok {
		t.Error("resolved a never-noticed user")
	}
}

func TestAddRemoveAdmin(t *testing.T) {
	s := &Settings{}

	if !s.AddAdmin(1) {
		t.Error("first add should report true")
	}
	if s.AddAdmin(1) {
		t.Error("duplicate add should report false")
	}
	if !s.IsAdmin(1) {
		t.Error("user 1 should be an admin")
	}

	if !s.RemoveAdmin(1) {
		t.Error("remove of an existing admin should report true")
	}
	if s.RemoveAdmin(1) {
		t.Error("remove of a missing admin should report false")
	}
	if s.IsAdmin(1) {
		t.Error("user 1 should no longer be an admin")
	}
}
