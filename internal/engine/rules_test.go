package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/just-do-now/internal/models"
)

func logsFor(dates ...string) map[string]models.HabitLog {
	logs := map[string]models.HabitLog{}
	for _, d := range dates {
		logs[d] = models.HabitLog{Date: d, Completed: true}
	}
	return logs
}

func TestComputeStreak(t *testing.T) {
	logs := logsFor("2026-03-04", "2026-03-03", "2026-03-02")
	assert.Equal(t, 3, ComputeStreak(logs, "2026-03-04"))

	delete(logs, "2026-03-03")
	assert.Equal(t, 1, ComputeStreak(logs, "2026-03-04"), "scan stops at the gap")

	assert.Equal(t, 0, ComputeStreak(logsFor("2026-03-03"), "2026-03-04"), "today missing")
	assert.Equal(t, 0, ComputeStreak(nil, "2026-03-04"))
	assert.Equal(t, 0, ComputeStreak(logsFor("2026-03-04"), "not-a-date"))
}

func TestComputeStreakAcrossMonthAndYear(t *testing.T) {
	logs := logsFor("2026-01-01", "2025-12-31", "2025-12-30", "2024-02-29")
	assert.Equal(t, 3, ComputeStreak(logs, "2026-01-01"))

	leap := logsFor("2024-03-01", "2024-02-29", "2024-02-28")
	assert.Equal(t, 3, ComputeStreak(leap, "2024-03-01"))
}

func TestToggleRewards(t *testing.T) {
	cases := []struct {
		eff         int
		wantXP      int
		wantCredits int
	}{
		{0, 10, 20},
		{50, 15, 25},
		{70, 17, 27},
		{100, 20, 30},
		{150, 20, 30},
		{-5, 10, 20},
	}
	for _, tc := range cases {
		h := models.Habit{ID: "h", Logs: map[string]models.HabitLog{}}
		out, d := Toggle(h, "2026-03-04", tc.eff)
		assert.True(t, d.Positive)
		assert.Equal(t, tc.wantXP, d.XP, "eff %d", tc.eff)
		assert.Equal(t, tc.wantCredits, d.Credits, "eff %d", tc.eff)
		require.True(t, out.CompletedOn("2026-03-04"))
		got := out.Logs["2026-03-04"]
		assert.True(t, got.Completed)
		assert.Equal(t, ClampEfficiency(tc.eff), *got.Efficiency)
		assert.Equal(t, 1, out.Streak)
		assert.Empty(t, h.Logs, "input habit must not change")
	}
}

func TestToggleRoundTripIsLossy(t *testing.T) {
	for _, eff := range []int{0, 30, 100} {
		h := models.Habit{
			ID:     "h",
			Logs:   logsFor("2026-03-03", "2026-03-02"),
			Streak: 0,
		}
		on, up := Toggle(h, "2026-03-04", eff)
		assert.Equal(t, 3, on.Streak)
		off, down := Toggle(on, "2026-03-04", eff)

		assert.Equal(t, h.Logs, off.Logs, "logs return to the original")
		assert.Equal(t, 0, off.Streak)
		assert.False(t, down.Positive)
		assert.Equal(t, -10, down.XP)
		assert.Equal(t, -20, down.Credits)
		assert.Equal(t, eff/10, up.XP+down.XP, "net XP keeps the efficiency bonus")
		assert.Equal(t, eff/10, up.Credits+down.Credits)
	}
}

func TestApplyDelta(t *testing.T) {
	at := func(v int) models.Attributes { return models.Attributes{Vitality: v} }

	assert.Equal(t, 51, ApplyDelta(at(50), models.CategoryHealth, true, 0).Vitality)
	assert.Equal(t, 53, ApplyDelta(at(50), models.CategoryHealth, true, 100).Vitality)
	assert.Equal(t, 52, ApplyDelta(at(50), models.CategoryHealth, true, 50).Vitality)
	assert.Equal(t, 100, ApplyDelta(at(100), models.CategoryHealth, true, 100).Vitality)
	assert.Equal(t, 0, ApplyDelta(at(0), models.CategoryHealth, false, 100).Vitality)
	assert.Equal(t, 47, ApplyDelta(at(50), models.CategoryHealth, false, 100).Vitality)
	assert.Equal(t, 49, ApplyDelta(at(50), models.CategoryHealth, false, 0).Vitality)
}

func TestAttributeChangeRoundsHalfUp(t *testing.T) {
	// 2 * 0.75 = 1.5 rounds to 2; -1.5 rounds to -1.
	assert.Equal(t, 2, AttributeChange(true, 25))
	assert.Equal(t, -1, AttributeChange(false, 25))
	assert.Equal(t, -3, AttributeChange(false, 100))
}

func TestAttributeRouting(t *testing.T) {
	cases := map[models.Category]Attribute{
		models.CategoryHealth:  Vitality,
		models.CategoryWork:    Intellect,
		models.CategorySkill:   Tech,
		models.CategoryMindset: Willpower,
		models.CategoryRoutine: Willpower,
		models.CategoryOther:   Charisma,
		"health":               Charisma,
		"":                     Charisma,
	}
	for c, want := range cases {
		assert.Equal(t, want, AttributeFor(c), "category %q", c)
	}
}

func TestApplyDeltaStaysInRange(t *testing.T) {
	for v := 0; v <= 100; v += 7 {
		for eff := 0; eff <= 100; eff += 10 {
			for _, pos := range []bool{true, false} {
				got := ApplyDelta(models.Attributes{Tech: v}, models.CategorySkill, pos, eff).Tech
				assert.True(t, got >= 0 && got <= 100, "v=%d eff=%d pos=%v got %d", v, eff, pos, got)
			}
		}
	}
}

func TestProgression(t *testing.T) {
	assert.Equal(t, 2, Level(1250))
	assert.InDelta(t, 50.0, LevelProgressPercent(1250), 1e-9)
	assert.Equal(t, 0, Level(499))
	assert.Equal(t, 1, Level(500))
	assert.InDelta(t, 0.0, LevelProgressPercent(500), 1e-9)
	assert.InDelta(t, 5.0, DisplayProgressPercent(500), 1e-9)
	assert.InDelta(t, 99.8, DisplayProgressPercent(999), 1e-9)

	assert.Equal(t, 0, ApplyXP(5, -10))
	assert.Equal(t, 30, ApplyXP(10, 20))
	assert.Equal(t, 0, ApplyCredits(15, -20))
}

func TestPurchase(t *testing.T) {
	item := models.ShopItem{ID: "streak_freeze", Cost: 500}

	credits, inv, err := Purchase(500, []string{}, item)
	require.NoError(t, err)
	assert.Equal(t, 0, credits)
	assert.Equal(t, []string{"streak_freeze"}, inv)

	credits2, inv2, err := Purchase(credits, inv, item)
	assert.ErrorIs(t, err, ErrAlreadyOwned)
	assert.Equal(t, 0, credits2)
	assert.Equal(t, inv, inv2)

	credits3, inv3, err := Purchase(499, []string{}, item)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 499, credits3)
	assert.Empty(t, inv3)

	_, _, err = Purchase(10_000, []string{"streak_freeze"}, item)
	assert.ErrorIs(t, err, ErrAlreadyOwned, "ownership is checked before funds")
}

func TestPurchaseDoesNotAliasInventory(t *testing.T) {
	base := make([]string, 1, 4)
	base[0] = "xp_boost"
	_, inv, err := Purchase(1000, base, models.ShopItem{ID: "streak_freeze", Cost: 500})
	require.NoError(t, err)
	inv[0] = "changed"
	assert.Equal(t, "xp_boost", base[0])
}
