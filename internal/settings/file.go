package settings

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// FileStore keeps the snapshot in a single YAML file. Save rewrites the
// whole file.
type FileStore struct {
	path   string
	logger *zap.Logger
}

func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

func (f *FileStore) Load(_ context.Context) (*Settings, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read settings file %s: %w", f.path, err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings file %s: %w", f.path, err)
	}
	if s.NoticedUsers == nil {
		s.NoticedUsers = make(map[string]int64)
	}

	f.logger.Info("Settings loaded",
		zap.String("path", f.path),
		zap.Int("admins", len(s.Admins)),
		zap.Int("broadcast_chats", len(s.BroadcastChats)))
	return &s, nil
}

func (f *FileStore) Save(_ context.Context, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write settings file %s: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }
