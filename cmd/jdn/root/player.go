package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tatianab/just-do-now/internal/app"
	"github.com/tatianab/just-do-now/internal/engine"
	"github.com/tatianab/just-do-now/internal/models"
	"github.com/tatianab/just-do-now/internal/tui"
	"github.com/tatianab/just-do-now/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, attributes and recent activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				out := cmd.OutOrStdout()
				s := a.Controller.State()
				d := engine.BuildDashboard(s.Habits, s.TotalXP, s.Attributes, a.Controller.Now())

				fmt.Fprintln(out, ui.Heading(ui.IconBolt, "Player Status"))
				fmt.Fprintln(out, ui.LabelValue("Level", d.Level))
				fmt.Fprintln(out, ui.LabelValue("Total XP", fmt.Sprintf("%d %s %.0f%%", s.TotalXP, ui.ProgressBar(engine.DisplayProgressPercent(s.TotalXP), 20), d.Progress)))
				fmt.Fprintln(out, ui.LabelValue("Credits", s.TotalCredits))
				fmt.Fprintln(out, ui.LabelValue("Completions", d.TotalCompletions))
				fmt.Fprintln(out, ui.LabelValue("Best streak", d.BestStreak))
				fmt.Fprintln(out, ui.LabelValue("Habits", d.HabitCount))
				fmt.Fprintln(out, "")

				fmt.Fprintln(out, ui.H2.Render("Attributes"))
				for _, sk := range d.Skills {
					fmt.Fprintf(out, "- %-10s %3d  lvl %d\n", sk.Attribute, sk.Value, sk.Level)
				}
				fmt.Fprintln(out, "")

				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("Last %d days", engine.ActivityDays)))
				var cells []string
				for _, day := range d.Activity {
					cells = append(cells, ui.Heat(day.Count))
				}
				fmt.Fprintln(out, strings.Join(cells, " "))

				if len(s.Inventory) > 0 {
					fmt.Fprintln(out, "")
					fmt.Fprintln(out, ui.LabelValue("Inventory", strings.Join(s.Inventory, ", ")))
				}
				return nil
			})
		},
	}
}

func newShopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "List shop items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				out := cmd.OutOrStdout()
				s := a.Controller.State()
				fmt.Fprintln(out, ui.Heading(ui.IconShop, "Shop")+"  "+ui.LabelValue("Credits", s.TotalCredits))
				for _, item := range models.Catalog {
					status := fmt.Sprintf("%d", item.Cost)
					if s.Owns(item.ID) {
						status = ui.Good.Render("owned")
					}
					fmt.Fprintf(out, "- %s %s (%s) %s\n", ui.Key.Render(item.ID), item.Name, status, ui.Muted.Render(item.Description))
				}
				return nil
			})
		},
	}
}

func newBuyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <item>",
		Short: "Buy a shop item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				item, err := a.Controller.Purchase(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s acquired %s, %d credits left\n", ui.IconCrown, item.Name, a.Controller.State().TotalCredits)
				return nil
			})
		},
	}
}

func newAudioCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "audio <on|off>",
		Short:     "Set the audio preference",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var on bool
			switch strings.ToLower(args[0]) {
			case "on":
				on = true
			case "off":
			default:
				return errors.New("expected on or off")
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Controller.SetAudio(ctx, on); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Audio", args[0]))
				return nil
			})
		},
	}
}

func newCoachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coach [question...]",
		Short: "Ask the AI coach (no question: a motivational message)",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				habits := a.Controller.State().Habits
				var text string
				if query == "" {
					text = a.Coach.Motivation(ctx, habits)
				} else {
					text = a.Coach.Advise(ctx, habits, query)
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconCoach, "Neon"))
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			})
		},
	}
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Generate an AI performance report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconCoach, "System Diagnostic Report"))
				fmt.Fprintln(cmd.OutOrStdout(), a.Coach.Report(ctx, a.Controller.State().Habits))
				return nil
			})
		},
	}
}

func newResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe all habits, XP, credits, attributes and items",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset is permanent; pass --yes to confirm")
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Controller.Reset(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" all data wiped"))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the wipe")
	return cmd
}

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Start()
		},
	}
}
