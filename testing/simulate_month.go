package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/tatianab/just-do-now/internal/coach"
	"github.com/tatianab/just-do-now/internal/config"
	"github.com/tatianab/just-do-now/internal/engine"
	"github.com/tatianab/just-do-now/internal/metrics"
	"github.com/tatianab/just-do-now/internal/models"
	"github.com/tatianab/just-do-now/internal/storage"
)

const days = 30

// Simulates a month of habit tracking against an in-memory store, then asks
// the coach for a report (offline unless GEMINI_API_KEY is set).
func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	day := time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)
	clock := func() time.Time { return day }
	m := metrics.New()
	ctrl, err := engine.NewController(ctx, storage.NewMemoryStore(),
		engine.WithClock(clock),
		engine.WithRecorder(m),
	)
	if err != nil {
		log.Fatalf("Failed to create controller: %v", err)
	}

	inputs := []struct {
		in   engine.HabitInput
		odds float64
	}{
		{engine.HabitInput{Title: "Morning run", Category: "Health", ReminderTime: "07:00"}, 0.8},
		{engine.HabitInput{Title: "Deep work block", Category: "Work", Duration: 90}, 0.9},
		{engine.HabitInput{Title: "Practice Go", Category: "Skill", Frequency: models.FrequencySpecificDays, Days: []int{1, 3, 5}}, 0.95},
		{engine.HabitInput{Title: "Meditate", Category: "Mindset"}, 0.6},
	}
	ids := make([]string, len(inputs))
	for i, h := range inputs {
		created, err := ctrl.AddHabit(ctx, h.in)
		if err != nil {
			log.Fatalf("Failed to add habit: %v", err)
		}
		ids[i] = created.ID
	}

	rng := rand.New(rand.NewPCG(42, 7))
	fmt.Println("--- Simulating a month ---")
	for d := 0; d < days; d++ {
		for i, h := range inputs {
			habit, err := ctrl.Habit(ids[i])
			if err != nil {
				log.Fatalf("Lost habit: %v", err)
			}
			if !engine.ScheduledToday(habit, day) || rng.Float64() > h.odds {
				continue
			}
			eff := 10 * (5 + rng.IntN(6))
			res, err := ctrl.Toggle(ctx, ids[i], eff)
			if err != nil {
				log.Fatalf("Toggle failed: %v", err)
			}
			if res.LeveledUp {
				fmt.Printf("%s: LEVEL UP -> %d\n", models.DateOf(day), res.Level)
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	// Stay on the last simulated day so streaks are read as of that day.
	day = day.AddDate(0, 0, -1)

	for _, id := range []string{models.ItemStreakFreeze, models.ItemXPBoost, models.ItemThemeGold} {
		if _, err := ctrl.Purchase(ctx, id); err != nil {
			fmt.Printf("Purchase %s: %v\n", id, err)
		}
	}

	s := ctrl.State()
	d := engine.BuildDashboard(s.Habits, s.TotalXP, s.Attributes, day)
	fmt.Printf("\nLevel %d (%.0f%%), %d XP, %d credits, %d completions, best streak %d\n",
		d.Level, d.Progress, s.TotalXP, s.TotalCredits, d.TotalCompletions, d.BestStreak)
	for _, sk := range d.Skills {
		fmt.Printf("  %-10s %3d (lvl %d)\n", sk.Attribute, sk.Value, sk.Level)
	}
	fmt.Printf("  inventory: %v\n", s.Inventory)

	var gen coach.Generator
	if cfg.GeminiAPIKey != "" {
		g, err := coach.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to create coach: %v", err)
		}
		defer g.Close()
		gen = g
	}
	c := coach.New(gen, coach.WithRecorder(m), coach.WithTimeout(cfg.CoachTimeout))
	fmt.Println("\n--- Coach report ---")
	fmt.Println(c.Report(ctx, s.Habits))

	fmt.Println("\n--- Counters ---")
	if err := m.WriteText(os.Stdout); err != nil {
		log.Fatalf("Failed to print metrics: %v", err)
	}
}
