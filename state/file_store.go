// state/file_store.go

// Package state persists the syncer's last-known state between runs.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gewnthar/phonemodels/models"
)

// FileStore keeps the fingerprint of the last published dataset in a plain text file.
type FileStore struct {
	Path string
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load returns the persisted state. A missing file yields the zero state.
func (s *FileStore) Load() (models.SyncState, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return models.SyncState{}, nil
	}
	if err != nil {
		return models.SyncState{}, fmt.Errorf("failed to read state file %s: %w", s.Path, err)
	}
	return models.SyncState{Fingerprint: strings.TrimSpace(string(data))}, nil
}

// Save overwrites the state file. The new content is written to a temporary
// file in the same directory and renamed into place.
func (s *FileStore) Save(st models.SyncState) error {
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary state file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(st.Fingerprint); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temporary state file %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary state file %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		return fmt.Errorf("failed to replace state file %s: %w", s.Path, err)
	}
	return nil
}
