package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/tatianab/just-do-now/internal/models"
	"github.com/tatianab/just-do-now/internal/storage"
)

// Purchase outcomes as reported to a Recorder.
const (
	OutcomeOK                = "ok"
	OutcomeAlreadyOwned      = "already_owned"
	OutcomeInsufficientFunds = "insufficient_funds"
	OutcomeUnknownItem       = "unknown_item"
)

// Recorder receives counters for accepted actions.
type Recorder interface {
	RecordToggle(positive bool)
	RecordPurchase(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordToggle(bool)     {}
func (nopRecorder) RecordPurchase(string) {}

// Controller owns the player state for one session. Every action is applied
// in full under the lock and then written to the store. If the write fails
// the action stays applied in memory and the error is returned; the next
// successful write catches the store up.
type Controller struct {
	mu        sync.Mutex
	store     storage.Store
	state     models.PlayerState
	goldTheme bool

	recorder Recorder
	logger   *log.Logger
	now      func() time.Time
}

type Option func(*Controller)

func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController loads the persisted state from store.
func NewController(ctx context.Context, store storage.Store, opts ...Option) (*Controller, error) {
	c := &Controller{
		store:    store,
		recorder: nopRecorder{},
		logger:   log.New(io.Discard, "", 0),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	state, err := LoadState(ctx, store, c.today())
	if err != nil {
		return nil, err
	}
	c.state = state
	return c, nil
}

func (c *Controller) today() string {
	return models.DateOf(c.now())
}

// Now returns the controller's clock reading.
func (c *Controller) Now() time.Time {
	return c.now()
}

// State returns a deep copy of the current state.
func (c *Controller) State() models.PlayerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshot(c.state)
}

func snapshot(s models.PlayerState) models.PlayerState {
	out := s
	out.Habits = make([]models.Habit, len(s.Habits))
	for i, h := range s.Habits {
		out.Habits[i] = h.Clone()
	}
	out.Inventory = slices.Clone(s.Inventory)
	if out.Inventory == nil {
		out.Inventory = []string{}
	}
	return out
}

func (c *Controller) indexOf(id string) int {
	return slices.IndexFunc(c.state.Habits, func(h models.Habit) bool { return h.ID == id })
}

// Habit returns a copy of the habit with the given id.
func (c *Controller) Habit(id string) (models.Habit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}
	return c.state.Habits[i].Clone(), nil
}

func (c *Controller) AddHabit(ctx context.Context, in HabitInput) (models.Habit, error) {
	h, err := NewHabit(in, c.now())
	if err != nil {
		return models.Habit{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Habits = append(c.state.Habits, h)
	return h.Clone(), c.persist(ctx, storage.SlotHabits)
}

// EditHabit replaces the editable fields; logs and streak are untouched.
func (c *Controller) EditHabit(ctx context.Context, id string, in HabitInput) (models.Habit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}
	h := c.state.Habits[i].Clone()
	if err := applyInput(&h, in); err != nil {
		return models.Habit{}, err
	}
	c.state.Habits[i] = h
	return h.Clone(), c.persist(ctx, storage.SlotHabits)
}

// DeleteHabit removes the habit for good. Earned XP, credits and
// attributes are kept.
func (c *Controller) DeleteHabit(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}
	c.state.Habits = slices.Delete(c.state.Habits, i, i+1)
	return c.persist(ctx, storage.SlotHabits)
}

// ToggleResult describes one accepted toggle.
type ToggleResult struct {
	Habit     models.Habit
	Delta     Delta
	Level     int
	LeveledUp bool
}

// Toggle flips today's completion of habit id. efficiency is clamped to
// [0,100]; it scales the reward when completing and the attribute loss when
// un-completing.
func (c *Controller) Toggle(ctx context.Context, id string, efficiency int) (ToggleResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.toggleLocked(ctx, id, efficiency)
}

// CompleteFocus marks habit id done with full efficiency after a focus
// session. It never un-completes.
func (c *Controller) CompleteFocus(ctx context.Context, id string) (ToggleResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return ToggleResult{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}
	if c.state.Habits[i].CompletedOn(c.today()) {
		return ToggleResult{}, ErrAlreadyCompleted
	}
	return c.toggleLocked(ctx, id, DefaultEfficiency)
}

func (c *Controller) toggleLocked(ctx context.Context, id string, efficiency int) (ToggleResult, error) {
	i := c.indexOf(id)
	if i < 0 {
		return ToggleResult{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}
	old := c.state.Habits[i]
	updated, d := Toggle(old, c.today(), efficiency)
	prevLevel := Level(c.state.TotalXP)

	c.state.Habits[i] = updated
	c.state.TotalXP = ApplyXP(c.state.TotalXP, d.XP)
	c.state.TotalCredits = ApplyCredits(c.state.TotalCredits, d.Credits)
	c.state.Attributes = ApplyDelta(c.state.Attributes, old.Category, d.Positive, efficiency)
	c.recorder.RecordToggle(d.Positive)

	res := ToggleResult{
		Habit:     updated.Clone(),
		Delta:     d,
		Level:     Level(c.state.TotalXP),
		LeveledUp: Level(c.state.TotalXP) > prevLevel,
	}
	err := c.persist(ctx, storage.SlotHabits, storage.SlotTotalXP, storage.SlotTotalCredits, storage.SlotAttributes)
	return res, err
}

// Purchase buys a catalog item with credits.
func (c *Controller) Purchase(ctx context.Context, itemID string) (models.ShopItem, error) {
	item, ok := models.FindItem(itemID)
	if !ok {
		c.recorder.RecordPurchase(OutcomeUnknownItem)
		return models.ShopItem{}, fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	credits, inv, err := Purchase(c.state.TotalCredits, c.state.Inventory, item)
	switch {
	case errors.Is(err, ErrAlreadyOwned):
		c.recorder.RecordPurchase(OutcomeAlreadyOwned)
		return item, err
	case errors.Is(err, ErrInsufficientFunds):
		c.recorder.RecordPurchase(OutcomeInsufficientFunds)
		return item, err
	}
	c.state.TotalCredits = credits
	c.state.Inventory = inv
	c.recorder.RecordPurchase(OutcomeOK)
	return item, c.persist(ctx, storage.SlotTotalCredits, storage.SlotInventory)
}

// ToggleTheme flips the gold theme for this session. It needs theme_gold.
func (c *Controller) ToggleTheme() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.Owns(models.ItemThemeGold) {
		return false, ErrThemeLocked
	}
	c.goldTheme = !c.goldTheme
	return c.goldTheme, nil
}

func (c *Controller) GoldTheme() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goldTheme
}

func (c *Controller) SetAudio(ctx context.Context, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.AudioEnabled = enabled
	return c.persist(ctx, storage.SlotAudio)
}

// Reset wipes every slot and returns to the initial state. Not recoverable.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = models.NewPlayerState()
	c.goldTheme = false
	if err := c.store.ClearAll(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}

func (c *Controller) persist(ctx context.Context, slots ...string) error {
	if err := saveSlots(ctx, c.store, c.state, slots...); err != nil {
		c.logger.Printf("Warning: %v", err)
		return err
	}
	return nil
}
