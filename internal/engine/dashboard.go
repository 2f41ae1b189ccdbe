package engine

import (
	"time"

	"github.com/tatianab/just-do-now/internal/models"
)

// ActivityDays is the length of the dashboard activity grid.
const ActivityDays = 14

type DayActivity struct {
	Date  string
	Count int
}

type SkillLevel struct {
	Attribute Attribute
	Value     int
	Level     int
}

// Dashboard is the read model behind the stats screen.
type Dashboard struct {
	TotalCompletions int
	BestStreak       int
	HabitCount       int
	Level            int
	Progress         float64
	Activity         []DayActivity // oldest first, ending today
	Skills           []SkillLevel
}

func BuildDashboard(habits []models.Habit, totalXP int, attrs models.Attributes, now time.Time) Dashboard {
	d := Dashboard{
		HabitCount: len(habits),
		Level:      Level(totalXP),
		Progress:   LevelProgressPercent(totalXP),
	}
	for _, h := range habits {
		d.TotalCompletions += len(h.Logs)
		d.BestStreak = max(d.BestStreak, h.Streak)
	}

	today := models.DateOf(now)
	for i := ActivityDays - 1; i >= 0; i-- {
		date, err := models.AddDays(today, -i)
		if err != nil {
			continue
		}
		n := 0
		for _, h := range habits {
			if h.CompletedOn(date) {
				n++
			}
		}
		d.Activity = append(d.Activity, DayActivity{Date: date, Count: n})
	}

	for _, a := range AllAttributes {
		v := AttributeValue(attrs, a)
		d.Skills = append(d.Skills, SkillLevel{Attribute: a, Value: v, Level: v/10 + 1})
	}
	return d
}
