package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mselser95/trade-hauls/internal/scan"
	"github.com/mselser95/trade-hauls/pkg/config"
	"github.com/mselser95/trade-hauls/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var haulsCmd = &cobra.Command{
	Use:   "hauls <log-paths...>",
	Short: "Print matched hauls",
	Long: `Parses the given log folders, files or glob patterns, matches sells to
buys in FIFO order and prints every completed haul followed by a per-resource
balance of bought, sold, moved and unmatched quantities.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHauls,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(haulsCmd)
	haulsCmd.Flags().BoolP("balances", "b", true, "Print per-resource balances")
}

func runHauls(cmd *cobra.Command, args []string) error {
	logger, err := config.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	showBalances, _ := cmd.Flags().GetBool("balances")

	scanner := scan.New(scan.Config{Inputs: args, Logger: logger})
	snap, err := scanner.Run(cmd.Context())
	if err != nil {
		return err
	}

	logger.Debug("hauls-matched", zap.Int("count", len(snap.Hauls)))

	writeHaulsReport(cmd.OutOrStdout(), snap, showBalances)
	return nil
}

func writeHaulsReport(out io.Writer, snap *scan.Snapshot, showBalances bool) {
	printHauls(out, snap.Hauls)
	if showBalances {
		fmt.Fprintln(out)
		printBalances(out, snap.Balances)
	}
}

func printHauls(out io.Writer, hauls []types.Haul) {
	if len(hauls) == 0 {
		fmt.Fprintln(out, "No completed hauls.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SOLD AT\tRESOURCE\tBUY SHOP\tSELL SHOP\tQTY\tBUY\tSELL\tPROFIT\n")
	fmt.Fprintf(w, "-------\t--------\t--------\t---------\t---\t---\t----\t------\n")

	total := decimal.Zero
	for _, h := range hauls {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			h.SoldAt.UTC().Format("2006-01-02 15:04"),
			h.ResourceID, h.BuyShop, h.SellShop,
			h.Quantity.String(),
			h.BuyPrice.StringFixed(2), h.SellPrice.StringFixed(2), h.Profit.StringFixed(2))
		total = total.Add(h.Profit)
	}
	w.Flush()

	fmt.Fprintf(out, "\nTotal: %d hauls, profit %s\n", len(hauls), total.StringFixed(2))
}

func printBalances(out io.Writer, balances []types.ResourceBalance) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "RESOURCE\tBOUGHT\tSOLD\tMOVED\tREMAINING\tUNMATCHED SELL\tUNMATCHED MOVE\tSTATUS\n")
	fmt.Fprintf(w, "--------\t------\t----\t-----\t---------\t--------------\t--------------\t------\n")

	for _, b := range balances {
		status := "ok"
		if !b.Balanced() {
			status = "UNBALANCED"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			b.ResourceID,
			b.Bought.String(), b.Sold.String(), b.Moved.String(), b.Remaining.String(),
			b.UnmatchedSell.String(), b.UnmatchedMove.String(), status)
	}
	w.Flush()
}
