package cmd

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/mselser95/trade-hauls/internal/scan"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "trade-hauls",
	Short: "Star Citizen trade haul tracker",
	Long: `Reads Star Citizen client logs, extracts commodity buy, sell and move
requests, and matches sells against earlier buys in FIFO order to compute
the profit of every haul.

Use "serve" for a live dashboard that rescans the log folder, "report" for a
static HTML/Excel report, and "hauls" for a quick terminal table.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env file is fine; the environment still applies.
		_ = godotenv.Load()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 when logs were found but held no trade events, 1 otherwise.
func exitCode(err error) int {
	if errors.Is(err, scan.ErrNoEvents) {
		return 2
	}
	return 1
}
