package settings

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store := NewFileStore(path, zap.NewNop())
	ctx := context.Background()

	original := &Settings{
		Admins:          []int64{1, 2},
		BroadcastChats:  []int64{100, 200},
		MeetingDate:     time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC),
		MeetingLocation: "Main Hall",
		MeetingLink:     "https://meet.example.com/abc",
		NoticedUsers:    map[string]int64{"alice": 1},
	}
	if err := store.Save(ctx, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded.Admins) != 2 || loaded.Admins[0] != 1 {
		t.Errorf("Admins = %v", loaded.Admins)
	}
	if !loaded.MeetingDate.Equal(original.MeetingDate) {
		t.Errorf("MeetingDate = %v, want %v", loaded.MeetingDate, original.MeetingDate)
	}
	if loaded.MeetingLocation != "Main Hall" {
		t.Errorf("MeetingLocation = %q", loaded.MeetingLocation)
	}
	if loaded.MeetingLink != original.MeetingLink {
		t.Errorf("MeetingLink = %q", loaded.MeetingLink)
	}
	if loaded.NoticedUsers["alice"] != 1 {
		t.Errorf("NoticedUsers = %v", loaded.NoticedUsers)
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.yaml"), zap.NewNop())

	if _, err := store.Load(context.Background()); err == nil {
		t.Fatal("expected an error for a missing settings file")
	}
}

func TestFileStoreNilNoticedMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store := NewFileStore(path, zap.NewNop())
	ctx := context.Background()

	if err := store.Save(ctx, &Settings{}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.NoticedUsers == nil {
		t.Error("Load must initialize the noticed users map")
	}
}
