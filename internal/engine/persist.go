package engine

import (
	"context"
	"fmt"
	"slices"

	"github.com/tatianab/just-do-now/internal/models"
	"github.com/tatianab/just-do-now/internal/storage"
	"gopkg.in/yaml.v3"
)

// SaveState writes every slot.
func SaveState(ctx context.Context, store storage.Store, state models.PlayerState) error {
	return saveSlots(ctx, store, state, storage.Slots...)
}

func saveSlots(ctx context.Context, store storage.Store, state models.PlayerState, slots ...string) error {
	for _, slot := range slots {
		data, err := encodeSlot(state, slot)
		if err != nil {
			return fmt.Errorf("encode %s: %w", slot, err)
		}
		if err := store.Save(ctx, slot, data); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
	}
	return nil
}

func encodeSlot(state models.PlayerState, slot string) ([]byte, error) {
	switch slot {
	case storage.SlotHabits:
		return yaml.Marshal(state.Habits)
	case storage.SlotTotalXP:
		return yaml.Marshal(state.TotalXP)
	case storage.SlotTotalCredits:
		return yaml.Marshal(state.TotalCredits)
	case storage.SlotInventory:
		return yaml.Marshal(state.Inventory)
	case storage.SlotAttributes:
		return yaml.Marshal(state.Attributes)
	case storage.SlotAudio:
		return yaml.Marshal(state.AudioEnabled)
	default:
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownSlot, slot)
	}
}

// LoadState reads every slot, filling missing ones with initial values, and
// normalizes the result: numbers are clamped, inventory is deduplicated and
// streaks are recomputed against today.
func LoadState(ctx context.Context, store storage.Store, today string) (models.PlayerState, error) {
	state := models.NewPlayerState()
	targets := map[string]any{
		storage.SlotHabits:       &state.Habits,
		storage.SlotTotalXP:      &state.TotalXP,
		storage.SlotTotalCredits: &state.TotalCredits,
		storage.SlotInventory:    &state.Inventory,
		storage.SlotAttributes:   &state.Attributes,
		storage.SlotAudio:        &state.AudioEnabled,
	}
	for _, slot := range storage.Slots {
		data, ok, err := store.Load(ctx, slot)
		if err != nil {
			return models.PlayerState{}, fmt.Errorf("load state: %w", err)
		}
		if !ok {
			continue
		}
		if err := yaml.Unmarshal(data, targets[slot]); err != nil {
			return models.PlayerState{}, fmt.Errorf("decode %s: %w", slot, err)
		}
	}
	return normalize(state, today), nil
}

func normalize(state models.PlayerState, today string) models.PlayerState {
	if state.Habits == nil {
		state.Habits = []models.Habit{}
	}
	for i := range state.Habits {
		h := &state.Habits[i]
		if h.Logs == nil {
			h.Logs = map[string]models.HabitLog{}
		}
		if h.FrequencyDays == nil {
			h.FrequencyDays = []int{}
		}
		h.Streak = ComputeStreak(h.Logs, today)
	}
	state.TotalXP = max(0, state.TotalXP)
	state.TotalCredits = max(0, state.TotalCredits)
	state.Attributes = ClampAttributes(state.Attributes)

	inv := make([]string, 0, len(state.Inventory))
	for _, id := range state.Inventory {
		if !slices.Contains(inv, id) {
			inv = append(inv, id)
		}
	}
	state.Inventory = inv
	return state
}
