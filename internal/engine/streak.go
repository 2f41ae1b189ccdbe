package engine

import "github.com/tatianab/just-do-now/internal/models"

// ComputeStreak counts consecutive calendar days ending at today that have a
// log entry. Recurrence is ignored: a Mon/Wed/Fri habit breaks on Tuesday.
// A malformed today yields 0.
func ComputeStreak(logs map[string]models.HabitLog, today string) int {
	if len(logs) == 0 {
		return 0
	}
	if _, err := models.ParseDate(today, nil); err != nil {
		return 0
	}
	streak := 0
	day := today
	for {
		if _, ok := logs[day]; !ok {
			return streak
		}
		streak++
		prev, err := models.AddDays(day, -1)
		if err != nil {
			return streak
		}
		day = prev
	}
}
