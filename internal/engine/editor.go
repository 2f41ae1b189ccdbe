package engine

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tatianab/just-do-now/internal/models"
)

// HabitInput is what the habit editor submits for create and edit.
type HabitInput struct {
	Title        string
	Description  string
	Frequency    models.Frequency
	Days         []int
	ReminderTime string
	Duration     int
	Category     string
	Icon         string
}

// NewHabit validates in and builds a fresh habit with no logs.
func NewHabit(in HabitInput, now time.Time) (models.Habit, error) {
	h := models.Habit{
		ID:        uuid.NewString(),
		CreatedAt: now,
		Logs:      map[string]models.HabitLog{},
	}
	if err := applyInput(&h, in); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

// applyInput overwrites the editable fields of h. Logs, streak, id and
// creation time are left alone.
func applyInput(h *models.Habit, in HabitInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return &ValidationError{Field: "title", Msg: "must not be empty"}
	}

	freq := in.Frequency
	if freq == "" {
		freq = models.FrequencyDaily
	}
	if !freq.IsValid() {
		return &ValidationError{Field: "frequency", Msg: "must be DAILY, WEEKLY or SPECIFIC_DAYS"}
	}

	var days []int
	if freq == models.FrequencyDaily {
		days = slices.Clone(models.AllDays)
	} else {
		for _, d := range in.Days {
			if d < 0 || d > 6 {
				return &ValidationError{Field: "days", Msg: "weekday must be between 0 (Sunday) and 6"}
			}
		}
		days = slices.Clone(in.Days)
		slices.Sort(days)
		days = slices.Compact(days)
		if freq == models.FrequencySpecificDays && len(days) == 0 {
			return &ValidationError{Field: "days", Msg: "pick at least one day"}
		}
	}
	if days == nil {
		days = []int{}
	}

	reminder := strings.TrimSpace(in.ReminderTime)
	if reminder != "" {
		if _, err := time.Parse("15:04", reminder); err != nil {
			return &ValidationError{Field: "reminder", Msg: "must be HH:mm"}
		}
	}

	duration := in.Duration
	if duration <= 0 {
		duration = models.DefaultDuration
	}

	icon := strings.TrimSpace(in.Icon)
	if icon == "" {
		icon = models.DefaultIcon
	}

	h.Title = title
	h.Description = strings.TrimSpace(in.Description)
	h.Frequency = freq
	h.FrequencyDays = days
	h.ReminderTime = reminder
	h.Duration = duration
	h.Category = models.ParseCategory(in.Category)
	h.Icon = icon
	return nil
}

// InputFrom fills an editor form from an existing habit.
func InputFrom(h models.Habit) HabitInput {
	return HabitInput{
		Title:        h.Title,
		Description:  h.Description,
		Frequency:    h.Frequency,
		Days:         slices.Clone(h.FrequencyDays),
		ReminderTime: h.ReminderTime,
		Duration:     h.Duration,
		Category:     string(h.Category),
		Icon:         h.Icon,
	}
}
