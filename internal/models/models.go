package models

import "time"

// Frequency is the recurrence rule of a habit.
type Frequency string

const (
	FrequencyDaily        Frequency = "DAILY"
	FrequencyWeekly       Frequency = "WEEKLY"
	FrequencySpecificDays Frequency = "SPECIFIC_DAYS"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencySpecificDays:
		return true
	default:
		return false
	}
}

// AllDays is the weekday set of a daily habit (0 = Sunday).
var AllDays = []int{0, 1, 2, 3, 4, 5, 6}

// Category routes a habit's completions to a player attribute.
type Category string

const (
	CategoryHealth  Category = "Health"
	CategoryWork    Category = "Work"
	CategorySkill   Category = "Skill"
	CategoryMindset Category = "Mindset"
	CategoryRoutine Category = "Routine"
	CategoryOther   Category = "Other"
)

// Categories lists the categories offered by the habit editor, in display order.
var Categories = []Category{CategoryHealth, CategoryWork, CategorySkill, CategoryMindset, CategoryRoutine}

// ParseCategory matches input case-sensitively against the known categories.
// Anything else becomes CategoryOther.
func ParseCategory(input string) Category {
	c := Category(input)
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return CategoryOther
}

// DefaultDuration is the habit length in minutes when none is given.
const DefaultDuration = 30

// DefaultIcon is used when the editor submits no icon.
const DefaultIcon = "Activity"

// HabitLog records one completed day. Presence of the entry means "done";
// Completed is always true and only kept so stored data round-trips.
type HabitLog struct {
	Date       string `yaml:"date" json:"date"`
	Completed  bool   `yaml:"completed" json:"completed"`
	Efficiency *int   `yaml:"efficiency,omitempty" json:"efficiency,omitempty"`
}

// EfficiencyOr returns the recorded efficiency or def when none was recorded.
func (l HabitLog) EfficiencyOr(def int) int {
	if l.Efficiency == nil {
		return def
	}
	return *l.Efficiency
}

// Habit is a user-defined recurring task tracked per calendar day.
type Habit struct {
	ID            string              `yaml:"id" json:"id"`
	Title         string              `yaml:"title" json:"title"`
	Description   string              `yaml:"description,omitempty" json:"description,omitempty"`
	Frequency     Frequency           `yaml:"frequency" json:"frequency"`
	FrequencyDays []int               `yaml:"frequency_days" json:"frequencyDays"`
	ReminderTime  string              `yaml:"reminder_time,omitempty" json:"reminderTime,omitempty"` // HH:mm
	Duration      int                 `yaml:"duration" json:"duration"`                              // minutes
	Category      Category            `yaml:"category" json:"category"`
	Icon          string              `yaml:"icon" json:"icon"`
	CreatedAt     time.Time           `yaml:"created_at" json:"createdAt"`
	Logs          map[string]HabitLog `yaml:"logs" json:"logs"` // keyed by YYYY-MM-DD
	Streak        int                 `yaml:"streak" json:"streak"`
}

// CompletedOn reports whether the habit has a log entry for the given date key.
func (h Habit) CompletedOn(date string) bool {
	_, ok := h.Logs[date]
	return ok
}

// ScheduledOn reports whether weekday (0 = Sunday) is one of the habit's days.
func (h Habit) ScheduledOn(weekday time.Weekday) bool {
	for _, d := range h.FrequencyDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// Clone returns a copy whose logs and day set can be mutated independently.
func (h Habit) Clone() Habit {
	out := h
	out.FrequencyDays = append([]int(nil), h.FrequencyDays...)
	out.Logs = make(map[string]HabitLog, len(h.Logs))
	for k, v := range h.Logs {
		if v.Efficiency != nil {
			e := *v.Efficiency
			v.Efficiency = &e
		}
		out.Logs[k] = v
	}
	return out
}

// Attributes is the five-dimensional player stat vector, each in [0,100].
type Attributes struct {
	Vitality  int `yaml:"vitality" json:"vitality"`
	Intellect int `yaml:"intellect" json:"intellect"`
	Willpower int `yaml:"willpower" json:"willpower"`
	Tech      int `yaml:"tech" json:"tech"`
	Charisma  int `yaml:"charisma" json:"charisma"`
}

// PlayerState is everything persisted for one installation.
type PlayerState struct {
	Habits       []Habit    `yaml:"habits" json:"habits"`
	TotalXP      int        `yaml:"total_xp" json:"totalXp"`
	TotalCredits int        `yaml:"total_credits" json:"totalCredits"`
	Inventory    []string   `yaml:"inventory" json:"inventory"`
	Attributes   Attributes `yaml:"attributes" json:"attributes"`
	AudioEnabled bool       `yaml:"audio_enabled" json:"audioPreference"`
}

// NewPlayerState returns the initial (and post-reset) state.
func NewPlayerState() PlayerState {
	return PlayerState{
		Habits:    []Habit{},
		Inventory: []string{},
	}
}

// Owns reports whether itemID is in the inventory.
func (s PlayerState) Owns(itemID string) bool {
	for _, id := range s.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}
