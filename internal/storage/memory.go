package storage

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store, used by tests and JDN_STORE=memory.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: map[string][]byte{}}
}

func (s *MemoryStore) Load(_ context.Context, slot string) ([]byte, bool, error) {
	if err := checkSlot(slot); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.slots[slot]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (s *MemoryStore) Save(_ context.Context, slot string, data []byte) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.slots)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
