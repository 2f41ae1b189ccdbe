package engine

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/tatianab/just-do-now/internal/models"
)

// Agenda splits today's habits into untimed (Inbox) and timed (Timeline) lists.
type Agenda struct {
	Inbox    []models.Habit
	Timeline []models.Habit
}

// ScheduledToday reports whether h belongs on today's agenda: its weekday set
// includes today, or it was already logged today.
func ScheduledToday(h models.Habit, now time.Time) bool {
	return h.ScheduledOn(now.Weekday()) || h.CompletedOn(models.DateOf(now))
}

func BuildAgenda(habits []models.Habit, now time.Time) Agenda {
	var a Agenda
	for _, h := range habits {
		if !ScheduledToday(h, now) {
			continue
		}
		if h.ReminderTime == "" {
			a.Inbox = append(a.Inbox, h)
		} else {
			a.Timeline = append(a.Timeline, h)
		}
	}
	slices.SortStableFunc(a.Timeline, func(x, y models.Habit) int {
		return cmp.Compare(x.ReminderTime, y.ReminderTime)
	})
	return a
}

// EndTime returns start plus duration minutes as HH:mm, wrapping at midnight.
func EndTime(start string, duration int) (string, error) {
	t, err := time.Parse("15:04", start)
	if err != nil {
		return "", fmt.Errorf("parse start time %q: %w", start, err)
	}
	if duration <= 0 {
		duration = models.DefaultDuration
	}
	return t.Add(time.Duration(duration) * time.Minute).Format("15:04"), nil
}
