package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/just-do-now/internal/models"
)

// Wednesday.
var wed = time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)

func TestNewHabitValidation(t *testing.T) {
	h, err := NewHabit(HabitInput{Title: "  Read  ", Frequency: models.FrequencyDaily, Days: []int{2}}, wed)
	require.NoError(t, err)
	assert.Equal(t, "Read", h.Title)
	assert.Equal(t, models.AllDays, h.FrequencyDays)
	assert.Equal(t, models.DefaultDuration, h.Duration)
	assert.Equal(t, models.CategoryOther, h.Category)
	assert.Equal(t, models.DefaultIcon, h.Icon)
	assert.NotEmpty(t, h.ID)
	assert.Empty(t, h.Logs)
	assert.Equal(t, wed, h.CreatedAt)

	h, err = NewHabit(HabitInput{Title: "Gym", Frequency: models.FrequencySpecificDays, Days: []int{5, 1, 5, 3}, ReminderTime: "07:30", Duration: 45, Category: "Health"}, wed)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, h.FrequencyDays)
	assert.Equal(t, "07:30", h.ReminderTime)
	assert.Equal(t, 45, h.Duration)
	assert.Equal(t, models.CategoryHealth, h.Category)

	bad := []HabitInput{
		{Title: "   "},
		{Title: "x", Frequency: "HOURLY"},
		{Title: "x", Frequency: models.FrequencySpecificDays},
		{Title: "x", Frequency: models.FrequencySpecificDays, Days: []int{7}},
		{Title: "x", ReminderTime: "7pm"},
	}
	for _, in := range bad {
		_, err := NewHabit(in, wed)
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr), "input %+v", in)
	}
}

func TestAgenda(t *testing.T) {
	today := models.DateOf(wed)
	habits := []models.Habit{
		{ID: "late", FrequencyDays: []int{3}, ReminderTime: "18:00"},
		{ID: "inbox", FrequencyDays: models.AllDays},
		{ID: "early", FrequencyDays: []int{3}, ReminderTime: "06:15"},
		{ID: "monday", FrequencyDays: []int{1}},
		{ID: "logged", FrequencyDays: []int{1}, Logs: logsFor(today)},
	}
	a := BuildAgenda(habits, wed)

	var inbox, timeline []string
	for _, h := range a.Inbox {
		inbox = append(inbox, h.ID)
	}
	for _, h := range a.Timeline {
		timeline = append(timeline, h.ID)
	}
	assert.Equal(t, []string{"inbox", "logged"}, inbox)
	assert.Equal(t, []string{"early", "late"}, timeline)
}

func TestEndTime(t *testing.T) {
	end, err := EndTime("07:30", 45)
	require.NoError(t, err)
	assert.Equal(t, "08:15", end)

	end, err = EndTime("23:50", 30)
	require.NoError(t, err)
	assert.Equal(t, "00:20", end)

	end, err = EndTime("10:00", 0)
	require.NoError(t, err)
	assert.Equal(t, "10:30", end)

	_, err = EndTime("soon", 10)
	assert.Error(t, err)
}

func TestDashboard(t *testing.T) {
	habits := []models.Habit{
		{ID: "a", Logs: logsFor("2026-03-04", "2026-03-03", "2026-01-01"), Streak: 2},
		{ID: "b", Logs: logsFor("2026-03-04"), Streak: 1},
	}
	d := BuildDashboard(habits, 1250, models.Attributes{Vitality: 35, Tech: 100}, wed)

	assert.Equal(t, 4, d.TotalCompletions)
	assert.Equal(t, 2, d.BestStreak)
	assert.Equal(t, 2, d.HabitCount)
	assert.Equal(t, 2, d.Level)
	assert.InDelta(t, 50.0, d.Progress, 1e-9)

	require.Len(t, d.Activity, ActivityDays)
	assert.Equal(t, "2026-02-19", d.Activity[0].Date)
	last := d.Activity[ActivityDays-1]
	assert.Equal(t, "2026-03-04", last.Date)
	assert.Equal(t, 2, last.Count)
	assert.Equal(t, 1, d.Activity[ActivityDays-2].Count)

	require.Len(t, d.Skills, 5)
	assert.Equal(t, SkillLevel{Attribute: Vitality, Value: 35, Level: 4}, d.Skills[0])
	assert.Equal(t, SkillLevel{Attribute: Tech, Value: 100, Level: 11}, d.Skills[3])
	assert.Equal(t, 1, d.Skills[4].Level)
}
