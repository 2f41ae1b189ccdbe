package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tatianab/just-do-now/internal/ui"
)

const Version = "0.1.0"

var printMetrics bool

var rootCmd = &cobra.Command{
	Use:           "jdn",
	Short:         "Just Do Now: gamified habit tracker",
	Long:          "Just Do Now tracks daily habits and turns them into XP, credits, levels and attributes, with an AI coach on the side.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&printMetrics, "metrics", false, "Print this run's counters to stderr when done")
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newEditCmd(),
		newRmCmd(),
		newListCmd(),
		newDoneCmd(),
		newFocusCmd(),
		newStatusCmd(),
		newShopCmd(),
		newBuyCmd(),
		newAudioCmd(),
		newCoachCmd(),
		newReportCmd(),
		newResetCmd(),
		newTUICmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
