package report

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mselser95/trade-hauls/internal/analysis"
	"github.com/mselser95/trade-hauls/internal/names"
	"github.com/mselser95/trade-hauls/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Sheet names of the spreadsheet export, in workbook order.
const (
	SheetBuy     = "BUY"
	SheetSell    = "SELL"
	SheetHauls   = "HAULS"
	SheetPending = "PENDING"
)

// ExcelGenerator exports a report and its hauls as an xlsx workbook.
type ExcelGenerator struct {
	logger *zap.Logger
}

// NewExcelGenerator creates a generator.
func NewExcelGenerator(logger *zap.Logger) *ExcelGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExcelGenerator{logger: logger}
}

// Generate builds the workbook. Identifiers are shown next to their display
// names when nm has one.
func (g *ExcelGenerator) Generate(rep analysis.Report, hauls []types.Haul, nm names.Names) (fileBytes []byte, err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			g.logger.Error("excel-close-failed", zap.Error(cerr))
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#cfe2f3"}},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	sheets := []struct {
		name   string
		header []string
		rows   [][]any
	}{
		{SheetBuy, buyHeader, buyRows(rep.BuySummary, nm)},
		{SheetSell, sellHeader, sellRows(rep.SellSummary, nm)},
		{SheetHauls, haulHeader, haulRows(hauls, nm)},
		{SheetPending, pendingHeader, pendingRows(rep.PendingGoods, nm)},
	}

	for _, s := range sheets {
		if err := fillSheet(f, s.name, s.header, s.rows, headerStyle); err != nil {
			return nil, fmt.Errorf("fill sheet %s: %w", s.name, err)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		g.logger.Warn("excel-delete-default-sheet-failed", zap.Error(err))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	g.logger.Debug("excel-generated",
		zap.Int("buy-rows", len(rep.BuySummary)),
		zap.Int("sell-rows", len(rep.SellSummary)),
		zap.Int("haul-rows", len(hauls)),
		zap.Int("pending-rows", len(rep.PendingGoods)))

	return buf.Bytes(), nil
}

// SaveExcel generates the workbook and writes it to path.
func (g *ExcelGenerator) SaveExcel(path string, rep analysis.Report, hauls []types.Haul, nm names.Names) error {
	if path == "" {
		return errors.New("empty excel path")
	}
	data, err := g.Generate(rep, hauls, nm)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write excel report: %w", err)
	}
	return nil
}

func fillSheet(f *excelize.File, sheet string, header []string, rows [][]any, headerStyle int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

var (
	buyHeader = []string{
		"Shop ID", "Shop", "Resource GUID", "Resource", "Count",
		"Min qty (SCU)", "Avg qty (SCU)", "Max qty (SCU)",
		"Min price/cSCU", "Avg price/cSCU", "Max price/cSCU",
	}
	sellHeader = []string{
		"Shop ID", "Shop", "Resource GUID", "Resource", "Count",
		"Min qty (SCU)", "Avg qty (SCU)", "Max qty (SCU)",
		"Min unit sell", "Avg unit sell", "Max unit sell",
	}
	haulHeader = []string{
		"Resource GUID", "Resource", "Buy shop", "Sell shop", "Quantity (SCU)",
		"Buy price", "Sell price", "Profit", "Bought at", "Sold at",
	}
	pendingHeader = []string{
		"Resource GUID", "Resource", "Pending qty (SCU)", "Pending cost", "Suggested shop",
	}
)

func buyRows(in []analysis.BuySummary, nm names.Names) [][]any {
	rows := make([][]any, 0, len(in))
	for _, s := range in {
		rows = append(rows, []any{
			s.ShopID, shopLabel(nm, s.ShopID, s.ShopName), s.ResourceID, label(nm.Resources, s.ResourceID), s.Count,
			num(s.MinQuantity), num(s.AvgQuantity), num(s.MaxQuantity),
			num(s.MinPricePerCentiSCU), num(s.AvgPricePerCentiSCU), num(s.MaxPricePerCentiSCU),
		})
	}
	return rows
}

func sellRows(in []analysis.SellSummary, nm names.Names) [][]any {
	rows := make([][]any, 0, len(in))
	for _, s := range in {
		rows = append(rows, []any{
			s.ShopID, shopLabel(nm, s.ShopID, s.ShopName), s.ResourceID, label(nm.Resources, s.ResourceID), s.Count,
			num(s.MinQuantity), num(s.AvgQuantity), num(s.MaxQuantity),
			num(s.MinAmountSell), num(s.AvgAmountSell), num(s.MaxAmountSell),
		})
	}
	return rows
}

func haulRows(in []types.Haul, nm names.Names) [][]any {
	rows := make([][]any, 0, len(in))
	for _, h := range in {
		rows = append(rows, []any{
			h.ResourceID, label(nm.Resources, h.ResourceID),
			label(nm.Shops, h.BuyShop), label(nm.Shops, h.SellShop),
			num(h.Quantity), num(h.BuyPrice), num(h.SellPrice), num(h.Profit),
			stamp(h.BoughtAt), stamp(h.SoldAt),
		})
	}
	return rows
}

func pendingRows(in []analysis.PendingGood, nm names.Names) [][]any {
	rows := make([][]any, 0, len(in))
	for _, p := range in {
		rows = append(rows, []any{
			p.ResourceID, label(nm.Resources, p.ResourceID),
			num(p.PendingQuantity), num(p.PendingCost), label(nm.Shops, p.SuggestedShopID),
		})
	}
	return rows
}

func label(table map[string]string, id string) string {
	if name, ok := table[id]; ok {
		return name
	}
	return id
}

// shopLabel prefers a stored name over the name the log carried.
func shopLabel(nm names.Names, id, logged string) string {
	if name, ok := nm.Shops[id]; ok {
		return name
	}
	if logged != "" {
		return logged
	}
	return id
}

func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
