package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// SnapshotStore keeps the last fetched dataset on disk so the dashboard can
// come up without hitting the upstream API.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore builds a store for the given file path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Path returns the snapshot location.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Stat reports the snapshot's modification time and whether it exists.
func (s *SnapshotStore) Stat() (time.Time, bool) {
	info, err := os.Stat(s.path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Load reads the snapshot document.
func (s *SnapshotStore) Load() ([]byte, time.Time, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, time.Time{}, ErrSnapshotMissing
		}
		return nil, time.Time{}, fmt.Errorf("ingest: read snapshot: %w", err)
	}
	modTime, _ := s.Stat()
	return data, modTime, nil
}

// Save writes the snapshot document, creating parent directories as needed.
func (s *SnapshotStore) Save(data []byte) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ingest: create snapshot dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("ingest: write snapshot: %w", err)
	}
	return nil
}
