package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Slot names, one per persisted value.
const (
	SlotHabits       = "habits"
	SlotTotalXP      = "totalXp"
	SlotTotalCredits = "totalCredits"
	SlotInventory    = "inventory"
	SlotAttributes   = "attributes"
	SlotAudio        = "audioPreference"
)

// Slots lists every known slot.
var Slots = []string{SlotHabits, SlotTotalXP, SlotTotalCredits, SlotInventory, SlotAttributes, SlotAudio}

var ErrUnknownSlot = errors.New("unknown slot")

// Store is a named-slot key-value persistence layer. Values are opaque bytes.
type Store interface {
	// Load returns ok=false when the slot has never been saved.
	Load(ctx context.Context, slot string) (data []byte, ok bool, err error)
	Save(ctx context.Context, slot string, data []byte) error
	ClearAll(ctx context.Context) error
	Close() error
}

// Kind selects a Store backend.
type Kind string

const (
	KindYAML   Kind = "yaml"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

func checkSlot(slot string) error {
	if !slices.Contains(Slots, slot) {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	return nil
}

// DefaultDataDir returns ~/.justdonow.
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".justdonow"), nil
}

// Open creates the backend of the given kind rooted at dataDir.
func Open(ctx context.Context, kind Kind, dataDir string) (Store, error) {
	switch kind {
	case KindYAML, "":
		return NewFileStore(filepath.Join(dataDir, "slots"))
	case KindSQLite:
		return OpenSQLite(ctx, filepath.Join(dataDir, "jdn.db"))
	case KindMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", kind)
	}
}
