package cmd

import (
	"fmt"

	"github.com/mselser95/trade-hauls/internal/app"
	"github.com/mselser95/trade-hauls/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the live trade dashboard",
	Long: `Starts the dashboard server, which will:
1. Rescan LOG_ROOT every SCAN_INTERVAL
2. Rebuild hauls and the report from scratch on every scan
3. Push the latest report to connected browsers over WebSocket

Use --log-root to override LOG_ROOT.`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("log-root", "r", "", "Folder or glob of game logs (overrides LOG_ROOT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load config
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Create logger
	logger, err := config.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logRoot, _ := cmd.Flags().GetString("log-root")

	application, err := app.New(cfg, logger, &app.Options{LogRoot: logRoot})
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	err = application.Run()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}
