package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tatianab/just-do-now/internal/app"
	"github.com/tatianab/just-do-now/internal/engine"
	"github.com/tatianab/just-do-now/internal/models"
	"github.com/tatianab/just-do-now/internal/ui"
)

type habitFlags struct {
	desc     string
	freq     string
	days     string
	at       string
	duration int
	category string
	icon     string
}

func (f *habitFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.desc, "desc", "", "Description")
	cmd.Flags().StringVarP(&f.freq, "freq", "f", string(models.FrequencyDaily), "Frequency (DAILY|WEEKLY|SPECIFIC_DAYS)")
	cmd.Flags().StringVar(&f.days, "days", "", "Weekdays, comma separated (0 = Sunday)")
	cmd.Flags().StringVarP(&f.at, "time", "t", "", "Reminder time HH:mm")
	cmd.Flags().IntVarP(&f.duration, "duration", "m", models.DefaultDuration, "Duration in minutes")
	cmd.Flags().StringVarP(&f.category, "category", "c", string(models.CategoryOther), "Category (Health|Work|Skill|Mindset|Routine)")
	cmd.Flags().StringVar(&f.icon, "icon", models.DefaultIcon, "Icon name")
}

// apply copies the flags the user set onto in.
func (f *habitFlags) apply(cmd *cobra.Command, in *engine.HabitInput) error {
	changed := cmd.Flags().Changed
	if changed("desc") {
		in.Description = f.desc
	}
	if changed("freq") {
		in.Frequency = models.Frequency(strings.ToUpper(f.freq))
	}
	if changed("days") {
		days, err := parseDays(f.days)
		if err != nil {
			return err
		}
		in.Days = days
		if !changed("freq") && in.Frequency == models.FrequencyDaily {
			in.Frequency = models.FrequencySpecificDays
		}
	}
	if changed("time") {
		in.ReminderTime = f.at
	}
	if changed("duration") {
		in.Duration = f.duration
	}
	if changed("category") {
		in.Category = f.category
	}
	if changed("icon") {
		in.Icon = f.icon
	}
	return nil
}

func parseDays(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("days: %q is not a weekday number", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func newAddCmd() *cobra.Command {
	var flags habitFlags
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			in := engine.HabitInput{Title: args[0], Frequency: models.FrequencyDaily}
			if err := flags.apply(cmd, &in); err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				h, err := a.Controller.AddHabit(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconDone, ui.Good.Render("Added"), h.Title)
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("ID", h.ID))
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newEditCmd() *cobra.Command {
	var flags habitFlags
	var title string
	cmd := &cobra.Command{
		Use:   "edit <habit>",
		Short: "Edit a habit's schedule or details (logs are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				h, err := findHabit(a.Controller.State().Habits, args[0])
				if err != nil {
					return err
				}
				in := engine.InputFrom(h)
				if cmd.Flags().Changed("title") {
					in.Title = title
				}
				if err := flags.apply(cmd, &in); err != nil {
					return err
				}
				h, err = a.Controller.EditHabit(ctx, h.ID, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconDone, ui.Good.Render("Updated"), h.Title)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	flags.register(cmd)
	return cmd
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <habit>",
		Short: "Delete a habit permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				h, err := findHabit(a.Controller.State().Habits, args[0])
				if err != nil {
					return err
				}
				if err := a.Controller.DeleteHabit(ctx, h.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s deleted %s\n", ui.IconWarn, h.Title)
				return nil
			})
		},
	}
}

func newListCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show today's agenda (or every habit with --all)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				out := cmd.OutOrStdout()
				s := a.Controller.State()
				now := a.Controller.Now()
				today := models.DateOf(now)

				if all {
					fmt.Fprintln(out, ui.Heading("", "All habits"))
					for _, h := range s.Habits {
						fmt.Fprintln(out, habitLine(h, today))
					}
					return nil
				}

				agenda := engine.BuildAgenda(s.Habits, now)
				fmt.Fprintln(out, ui.Heading("", "Inbox"))
				if len(agenda.Inbox) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("  (empty)"))
				}
				for _, h := range agenda.Inbox {
					fmt.Fprintln(out, habitLine(h, today))
				}
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.Heading(ui.IconClock, "Timeline"))
				if len(agenda.Timeline) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("  (empty)"))
				}
				for _, h := range agenda.Timeline {
					end, err := engine.EndTime(h.ReminderTime, h.Duration)
					if err != nil {
						end = "?"
					}
					fmt.Fprintf(out, "%s %s\n", ui.Key.Render(h.ReminderTime+"-"+end), habitLine(h, today))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "List every habit")
	return cmd
}

func habitLine(h models.Habit, today string) string {
	mark := ui.IconTodo
	if h.CompletedOn(today) {
		mark = ui.IconDone
	}
	return fmt.Sprintf("%s %s %s %s %d %s", mark, ui.Muted.Render(shortID(h.ID)), h.Title, ui.IconFire, h.Streak, ui.Muted.Render(string(h.Category)))
}

func newDoneCmd() *cobra.Command {
	var eff int
	cmd := &cobra.Command{
		Use:   "done <habit>",
		Short: "Toggle today's completion of a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				h, err := findHabit(a.Controller.State().Habits, args[0])
				if err != nil {
					return err
				}
				res, err := a.Controller.Toggle(ctx, h.ID, eff)
				if err != nil {
					return err
				}
				printToggle(cmd, res)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&eff, "eff", "e", engine.DefaultEfficiency, "Efficiency 0-100")
	return cmd
}

func newFocusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "focus <habit>",
		Short: "Record a finished focus session (completes at 100% efficiency)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				h, err := findHabit(a.Controller.State().Habits, args[0])
				if err != nil {
					return err
				}
				res, err := a.Controller.CompleteFocus(ctx, h.ID)
				if err != nil {
					return err
				}
				printToggle(cmd, res)
				return nil
			})
		},
	}
}

func printToggle(cmd *cobra.Command, res engine.ToggleResult) {
	out := cmd.OutOrStdout()
	if res.Delta.Positive {
		fmt.Fprintf(out, "%s %s %s\n", ui.IconDone, ui.Good.Render("Completed"), res.Habit.Title)
	} else {
		fmt.Fprintf(out, "%s %s %s\n", ui.IconTodo, ui.Warn.Render("Undone"), res.Habit.Title)
	}
	fmt.Fprintf(out, "%s %+d XP  %s %+d credits  %s streak %d\n", ui.IconBolt, res.Delta.XP, ui.IconCredits, res.Delta.Credits, ui.IconFire, res.Habit.Streak)
	if res.LeveledUp {
		fmt.Fprintf(out, "%s level %d\n", ui.BadgeLevelUp, res.Level)
	}
}
