package engine

import "github.com/tatianab/just-do-now/internal/models"

const (
	baseXP      = 10
	baseCredits = 20
	bonusScale  = 10

	// Un-completing always takes back the base amounts, whatever the
	// original efficiency was.
	undoXP      = -10
	undoCredits = -20

	DefaultEfficiency = 100
)

// Delta is what one toggle hands to the progression and attribute rules.
type Delta struct {
	XP       int
	Credits  int
	Positive bool
}

// ClampEfficiency forces a self-reported rating into [0,100].
func ClampEfficiency(eff int) int {
	return clamp(eff, 0, 100)
}

// Toggle flips today's completion for h and returns the updated copy along
// with the reward delta. The input habit is not modified.
func Toggle(h models.Habit, today string, efficiency int) (models.Habit, Delta) {
	out := h.Clone()
	var d Delta
	if out.CompletedOn(today) {
		delete(out.Logs, today)
		d = Delta{XP: undoXP, Credits: undoCredits}
	} else {
		eff := ClampEfficiency(efficiency)
		out.Logs[today] = models.HabitLog{Date: today, Completed: true, Efficiency: &eff}
		bonus := eff * bonusScale / 100
		d = Delta{XP: baseXP + bonus, Credits: baseCredits + bonus, Positive: true}
	}
	out.Streak = ComputeStreak(out.Logs, today)
	return out, d
}
