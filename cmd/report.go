package cmd

import (
	"context"
	"fmt"

	"github.com/mselser95/trade-hauls/internal/names"
	"github.com/mselser95/trade-hauls/internal/report"
	"github.com/mselser95/trade-hauls/internal/scan"
	"github.com/mselser95/trade-hauls/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var reportCmd = &cobra.Command{
	Use:   "report <log-paths...> <output.html>",
	Short: "Generate a static trade report",
	Long: `Parses the given log folders, files or glob patterns and writes a
self-contained HTML dashboard. With --excel the buy and sell summaries,
hauls and pending goods are also exported as an xlsx workbook.

Exits with status 1 when no .log files are found and 2 when the files hold no
trade events.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runReport,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringP("excel", "x", "", "Also write an Excel workbook to this path")
	reportCmd.Flags().IntP("workers", "w", 0, "Parallel file readers (0 = GOMAXPROCS)")
}

func runReport(cmd *cobra.Command, args []string) error {
	logger, err := config.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	excelPath, _ := cmd.Flags().GetString("excel")
	workers, _ := cmd.Flags().GetInt("workers")

	inputs, output := args[:len(args)-1], args[len(args)-1]
	return generateReport(cmd.Context(), reportOptions{
		Inputs:    inputs,
		HTMLPath:  output,
		ExcelPath: excelPath,
		Workers:   workers,
	}, logger)
}

type reportOptions struct {
	Inputs    []string
	HTMLPath  string
	ExcelPath string
	Workers   int
}

func generateReport(ctx context.Context, opts reportOptions, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	scanner := scan.New(scan.Config{
		Inputs:  opts.Inputs,
		Workers: opts.Workers,
		Logger:  logger,
	})

	snap, err := scanner.Run(ctx)
	if err != nil {
		return err
	}

	err = report.RenderHTMLFile(opts.HTMLPath, snap)
	if err != nil {
		return err
	}
	logger.Info("html-report-generated", zap.String("path", opts.HTMLPath))

	if opts.ExcelPath == "" {
		return nil
	}

	// A failed export does not invalidate the HTML report.
	err = report.NewExcelGenerator(logger).SaveExcel(opts.ExcelPath, snap.Report, snap.Hauls, names.Names{})
	if err != nil {
		logger.Error("excel-report-failed", zap.String("path", opts.ExcelPath), zap.Error(err))
		return nil
	}
	logger.Info("excel-report-generated", zap.String("path", opts.ExcelPath))

	return nil
}
