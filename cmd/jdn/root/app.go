package root

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tatianab/just-do-now/internal/app"
	"github.com/tatianab/just-do-now/internal/config"
	"github.com/tatianab/just-do-now/internal/engine"
	"github.com/tatianab/just-do-now/internal/models"
)

// withApp opens the configured app for the duration of fn.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	a, err := app.New(ctx, cfg, log.New(os.Stderr, "jdn: ", 0))
	if err != nil {
		return err
	}
	defer a.Close()

	if err := fn(ctx, a); err != nil {
		return err
	}
	if printMetrics {
		return a.Metrics.WriteText(cmd.ErrOrStderr())
	}
	return nil
}

// findHabit resolves ref as an exact id, a unique id prefix, or a
// case-insensitive title.
func findHabit(habits []models.Habit, ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)
	var matches []models.Habit
	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
		if strings.EqualFold(h.Title, ref) || (len(ref) >= 4 && strings.HasPrefix(h.ID, ref)) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("%w: %s", engine.ErrHabitNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, fmt.Errorf("%q matches %d habits, use the id", ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
