package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/just-do-now/internal/models"
	"github.com/tatianab/just-do-now/internal/storage"
)

type countingRecorder struct {
	toggles   map[bool]int
	purchases map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{toggles: map[bool]int{}, purchases: map[string]int{}}
}

func (r *countingRecorder) RecordToggle(positive bool)     { r.toggles[positive]++ }
func (r *countingRecorder) RecordPurchase(outcome string) { r.purchases[outcome]++ }

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestController(t *testing.T, store storage.Store, opts ...Option) (*Controller, *clock) {
	t.Helper()
	clk := &clock{t: wed}
	opts = append([]Option{WithClock(clk.now)}, opts...)
	c, err := NewController(context.Background(), store, opts...)
	require.NoError(t, err)
	return c, clk
}

func TestControllerToggleFlow(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	rec := newCountingRecorder()
	c, _ := newTestController(t, store, WithRecorder(rec))

	h, err := c.AddHabit(ctx, HabitInput{Title: "Run", Category: "Health"})
	require.NoError(t, err)

	res, err := c.Toggle(ctx, h.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, Delta{XP: 20, Credits: 30, Positive: true}, res.Delta)
	assert.Equal(t, 1, res.Habit.Streak)

	s := c.State()
	assert.Equal(t, 20, s.TotalXP)
	assert.Equal(t, 30, s.TotalCredits)
	assert.Equal(t, 3, s.Attributes.Vitality)

	res, err = c.Toggle(ctx, h.ID, DefaultEfficiency)
	require.NoError(t, err)
	assert.False(t, res.Delta.Positive)
	s = c.State()
	assert.Equal(t, 10, s.TotalXP)
	assert.Equal(t, 10, s.TotalCredits)
	assert.Equal(t, 0, s.Attributes.Vitality)
	assert.Equal(t, 0, s.Habits[0].Streak)
	assert.Equal(t, 1, rec.toggles[true])
	assert.Equal(t, 1, rec.toggles[false])

	// A second controller over the same store sees the persisted state.
	c2, _ := newTestController(t, store)
	assert.Equal(t, s, c2.State())

	_, err = c.Toggle(ctx, "missing", 100)
	assert.ErrorIs(t, err, ErrHabitNotFound)
}

func TestControllerLevelUp(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, SaveState(ctx, store, models.PlayerState{TotalXP: 490}))
	c, _ := newTestController(t, store)

	h, err := c.AddHabit(ctx, HabitInput{Title: "Write"})
	require.NoError(t, err)
	res, err := c.Toggle(ctx, h.ID, 100)
	require.NoError(t, err)
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 1, res.Level)
}

func TestControllerCompleteFocus(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, storage.NewMemoryStore())
	h, err := c.AddHabit(ctx, HabitInput{Title: "Deep work", Category: "Work"})
	require.NoError(t, err)

	res, err := c.CompleteFocus(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, res.Delta.XP)
	assert.Equal(t, 100, *res.Habit.Logs[models.DateOf(wed)].Efficiency)

	_, err = c.CompleteFocus(ctx, h.ID)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Equal(t, 20, c.State().TotalXP, "finished timer never un-completes")
}

func TestControllerStreakFollowsClock(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	c, clk := newTestController(t, store)
	h, err := c.AddHabit(ctx, HabitInput{Title: "Stretch", Category: "Routine"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := c.Toggle(ctx, h.ID, 100)
		require.NoError(t, err)
		clk.t = clk.t.AddDate(0, 0, 1)
	}
	res, err := c.Toggle(ctx, h.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Habit.Streak)
	assert.Equal(t, 12, c.State().Attributes.Willpower)

	// Skip a day, then reload: the cached streak is recomputed.
	clk.t = clk.t.AddDate(0, 0, 2)
	c2, err := NewController(ctx, store, WithClock(clk.now))
	require.NoError(t, err)
	assert.Equal(t, 0, c2.State().Habits[0].Streak)
}

func TestControllerEditKeepsLogs(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, storage.NewMemoryStore())
	h, err := c.AddHabit(ctx, HabitInput{Title: "Read", Category: "Skill"})
	require.NoError(t, err)
	_, err = c.Toggle(ctx, h.ID, 80)
	require.NoError(t, err)

	edited, err := c.EditHabit(ctx, h.ID, HabitInput{Title: "Read more", Frequency: models.FrequencySpecificDays, Days: []int{6, 0}, Category: "Work"})
	require.NoError(t, err)
	assert.Equal(t, h.ID, edited.ID)
	assert.Equal(t, h.CreatedAt, edited.CreatedAt)
	assert.Equal(t, "Read more", edited.Title)
	assert.Equal(t, []int{0, 6}, edited.FrequencyDays)
	assert.True(t, edited.CompletedOn(models.DateOf(wed)))
	assert.Equal(t, 1, edited.Streak)

	_, err = c.EditHabit(ctx, h.ID, HabitInput{Title: ""})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	got, err := c.Habit(h.ID)
	require.NoError(t, err)
	assert.Equal(t, "Read more", got.Title, "rejected edit leaves habit alone")

	require.NoError(t, c.DeleteHabit(ctx, h.ID))
	assert.Empty(t, c.State().Habits)
	assert.Equal(t, 18, c.State().TotalXP, "delete keeps earned XP")
	assert.ErrorIs(t, c.DeleteHabit(ctx, h.ID), ErrHabitNotFound)
}

func TestControllerPurchaseAndTheme(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, SaveState(ctx, store, models.PlayerState{TotalCredits: 5500}))
	rec := newCountingRecorder()
	c, _ := newTestController(t, store, WithRecorder(rec))

	_, err := c.ToggleTheme()
	assert.ErrorIs(t, err, ErrThemeLocked)

	_, err = c.Purchase(ctx, models.ItemThemeGold)
	require.NoError(t, err)
	_, err = c.Purchase(ctx, models.ItemThemeGold)
	assert.ErrorIs(t, err, ErrAlreadyOwned)
	_, err = c.Purchase(ctx, models.ItemXPBoost)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	_, err = c.Purchase(ctx, "jetpack")
	assert.ErrorIs(t, err, ErrUnknownItem)

	s := c.State()
	assert.Equal(t, 500, s.TotalCredits)
	assert.Equal(t, []string{models.ItemThemeGold}, s.Inventory)
	assert.Equal(t, map[string]int{
		OutcomeOK: 1, OutcomeAlreadyOwned: 1, OutcomeInsufficientFunds: 1, OutcomeUnknownItem: 1,
	}, rec.purchases)

	on, err := c.ToggleTheme()
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, c.GoldTheme())

	// The theme flag is session-only.
	c2, _ := newTestController(t, store)
	assert.False(t, c2.GoldTheme())
}

func TestControllerReset(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	c, _ := newTestController(t, store)

	h, err := c.AddHabit(ctx, HabitInput{Title: "Meditate", Category: "Mindset"})
	require.NoError(t, err)
	_, err = c.Toggle(ctx, h.ID, 100)
	require.NoError(t, err)
	require.NoError(t, c.SetAudio(ctx, true))

	require.NoError(t, c.Reset(ctx))
	assert.Equal(t, models.NewPlayerState(), c.State())

	c2, _ := newTestController(t, store)
	assert.Equal(t, models.NewPlayerState(), c2.State())
}

type failingStore struct {
	*storage.MemoryStore
}

func (failingStore) Save(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestControllerKeepsActionWhenSaveFails(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, failingStore{storage.NewMemoryStore()})

	h, err := c.AddHabit(ctx, HabitInput{Title: "Walk"})
	require.Error(t, err)
	_, err = c.Toggle(ctx, h.ID, 100)
	require.Error(t, err)
	assert.Equal(t, 20, c.State().TotalXP)
}

func TestLoadStateNormalizes(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(ctx, storage.SlotTotalXP, []byte("-40\n")))
	require.NoError(t, store.Save(ctx, storage.SlotInventory, []byte("[xp_boost, theme_gold, xp_boost]\n")))
	require.NoError(t, store.Save(ctx, storage.SlotAttributes, []byte("{vitality: 140, tech: -3, charisma: 20}\n")))
	require.NoError(t, store.Save(ctx, storage.SlotHabits, []byte(`
- id: h1
  title: Run
  frequency: DAILY
  streak: 9
  logs:
    "2026-03-04": {date: "2026-03-04", completed: true}
    "2026-03-03": {date: "2026-03-03", completed: true, efficiency: 60}
`)))

	s, err := LoadState(ctx, store, "2026-03-04")
	require.NoError(t, err)
	assert.Equal(t, 0, s.TotalXP)
	assert.Equal(t, 0, s.TotalCredits)
	assert.Equal(t, []string{"xp_boost", "theme_gold"}, s.Inventory)
	assert.Equal(t, models.Attributes{Vitality: 100, Charisma: 20}, s.Attributes)
	require.Len(t, s.Habits, 1)
	assert.Equal(t, 2, s.Habits[0].Streak)
	assert.Equal(t, 60, s.Habits[0].Logs["2026-03-03"].EfficiencyOr(100))
	assert.Equal(t, []int{}, s.Habits[0].FrequencyDays)

	require.NoError(t, store.Save(ctx, storage.SlotTotalCredits, []byte("{not: an int}\n")))
	_, err = LoadState(ctx, store, "2026-03-04")
	assert.Error(t, err)
}
