package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps each slot in <dir>/<slot>.yaml.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(slot string) string {
	return filepath.Join(s.dir, slot+".yaml")
}

func (s *FileStore) Load(_ context.Context, slot string) ([]byte, bool, error) {
	if err := checkSlot(slot); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(s.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read slot %s: %w", slot, err)
	}
	return data, true, nil
}

// Save writes through a temp file and rename so a crash never leaves a
// half-written slot.
func (s *FileStore) Save(_ context.Context, slot string, data []byte) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	tmp := s.path(slot) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	if err := os.Rename(tmp, s.path(slot)); err != nil {
		return fmt.Errorf("rename slot %s: %w", slot, err)
	}
	return nil
}

func (s *FileStore) ClearAll(_ context.Context) error {
	for _, slot := range Slots {
		if err := os.Remove(s.path(slot)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("clear slot %s: %w", slot, err)
		}
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
