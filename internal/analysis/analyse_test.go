package analysis

import (
	"testing"

	"github.com/mselser95/trade-hauls/internal/hauls"
	"github.com/mselser95/trade-hauls/internal/testutil"
	"github.com/mselser95/trade-hauls/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, got.Equal(testutil.D(want)), "%s: want %s, got %s", field, want, got)
}

func TestAnalyse_Empty(t *testing.T) {
	r := Analyse(nil, nil, Options{})

	assert.True(t, r.KPI.TotalProfit.IsZero())
	assert.True(t, r.KPI.RealizedProfit.IsZero())
	assert.Zero(t, r.KPI.TotalBuys)
	assert.Zero(t, r.KPI.TotalSells)
	assert.Empty(t, r.DailyProfit.Labels)
	assert.Empty(t, r.DailyProfit.Values)
	assert.Empty(t, r.BuySummary)
	assert.Empty(t, r.SellSummary)
	assert.Empty(t, r.BestRoutes)
	assert.Empty(t, r.PendingGoods)
	assert.Empty(t, r.LastTransactions)
}

func TestAnalyse_BasicProfit(t *testing.T) {
	events := []types.TradeEvent{
		testutil.Buy(testutil.T("2025-01-01T10:00:00Z"), "res1", "ID1", "10", "100000"),
		testutil.Sell(testutil.T("2025-01-02T10:00:00Z"), "res1", "ID2", "10", "150000"),
	}

	r := Analyse(events, hauls.TrackHauls(events), Options{})

	assertDecimal(t, "50000", r.KPI.TotalProfit, "total profit")
	assertDecimal(t, "50000", r.KPI.RealizedProfit, "realized profit")
	assert.Equal(t, 1, r.KPI.TotalBuys)
	assert.Equal(t, 1, r.KPI.TotalSells)
	assert.Equal(t, 1, r.KPI.TotalHauls)

	assert.Equal(t, []string{"2025-01-01", "2025-01-02"}, r.DailyProfit.Labels)
	require.Len(t, r.DailyProfit.Values, 2)
	assertDecimal(t, "-100000", r.DailyProfit.Values[0], "day one")
	assertDecimal(t, "150000", r.DailyProfit.Values[1], "day two")

	require.Len(t, r.BestRoutes, 1)
	assert.Equal(t, "ID1", r.BestRoutes[0].BuyShopID)
	assert.Equal(t, "ID2", r.BestRoutes[0].SellShopID)
	assertDecimal(t, "5000", r.BestRoutes[0].ProfitPerUnit, "profit per unit")

	assert.Empty(t, r.PendingGoods)

	last := map[string]types.Operation{}
	for _, tx := range r.LastTransactions {
		last[tx.ShopID] = tx.Operation
	}
	assert.Equal(t, types.OperationBuy, last["ID1"])
	assert.Equal(t, types.OperationSell, last["ID2"])
}

func TestAnalyse_PendingAndSuggestedShop(t *testing.T) {
	buy := testutil.Buy(testutil.T("2025-02-01T10:00:00Z"), "res2", "B1", "10", "1000")
	buy.UnitPricePerHundredth = testutil.D("100")
	events := []types.TradeEvent{
		buy,
		testutil.Sell(testutil.T("2025-02-02T10:00:00Z"), "res2", "S1", "4", "600"),
		testutil.Sell(testutil.T("2025-02-03T10:00:00Z"), "res2", "S2", "2", "400"),
	}

	r := Analyse(events, nil, Options{})

	require.Len(t, r.PendingGoods, 1)
	p := r.PendingGoods[0]
	assert.Equal(t, "res2", p.ResourceID)
	assertDecimal(t, "4", p.PendingQuantity, "pending quantity")
	assertDecimal(t, "400", p.PendingCost, "pending cost")
	assert.Equal(t, "S2", p.SuggestedShopID)
}

func TestAnalyse_FiltersNonPositiveQuantities(t *testing.T) {
	at := testutil.T("2025-03-01T10:00:00Z")
	events := []types.TradeEvent{
		testutil.Buy(at, "r", "A", "0", "500"),
		testutil.Sell(at, "r", "B", "-1", "500"),
		testutil.Buy(at, "r", "A", "2", "20"),
	}

	r := Analyse(events, nil, Options{})

	assert.Equal(t, 1, r.KPI.TotalBuys)
	assert.Zero(t, r.KPI.TotalSells)
	assertDecimal(t, "-20", r.KPI.TotalProfit, "total profit")
	require.Len(t, r.LastTransactions, 1)
	assert.Equal(t, "A", r.LastTransactions[0].ShopID)
}

func TestAnalyse_Summaries(t *testing.T) {
	day := "2025-04-01T"
	b1 := testutil.Buy(testutil.T(day+"10:00:00Z"), "r", "A", "10", "100")
	b1.UnitPricePerHundredth = testutil.D("1000")
	b2 := testutil.Buy(testutil.T(day+"11:00:00Z"), "r", "A", "30", "330")
	b2.UnitPricePerHundredth = testutil.D("1100")
	events := []types.TradeEvent{
		b1, b2,
		testutil.Sell(testutil.T(day+"12:00:00Z"), "r", "Z", "20", "400"),
		testutil.Sell(testutil.T(day+"13:00:00Z"), "r", "Z", "10", "300"),
	}

	r := Analyse(events, nil, Options{})

	require.Len(t, r.BuySummary, 1)
	bs := r.BuySummary[0]
	assert.Equal(t, 2, bs.Count)
	assertDecimal(t, "10", bs.MinQuantity, "min quantity")
	assertDecimal(t, "20", bs.AvgQuantity, "avg quantity")
	assertDecimal(t, "30", bs.MaxQuantity, "max quantity")
	assertDecimal(t, "1000", bs.MinPricePerCentiSCU, "min price")
	assertDecimal(t, "1050", bs.AvgPricePerCentiSCU, "avg price")
	assertDecimal(t, "1100", bs.MaxPricePerCentiSCU, "max price")

	require.Len(t, r.SellSummary, 1)
	ss := r.SellSummary[0]
	assertDecimal(t, "20", ss.MinAmountSell, "min unit sell")
	assertDecimal(t, "25", ss.AvgAmountSell, "avg unit sell")
	assertDecimal(t, "30", ss.MaxAmountSell, "max unit sell")

	require.Len(t, r.LastTransactions, 2)
	assert.Equal(t, "A", r.LastTransactions[0].ShopID)
	assert.True(t, r.LastTransactions[0].Timestamp.Equal(testutil.T(day+"11:00:00Z")))
	assertDecimal(t, "270", r.DailyProfit.Values[0], "single day")
}

func TestAnalyse_BestRoutesRankingAndLimit(t *testing.T) {
	at := testutil.T("2025-05-01T10:00:00Z")
	var events []types.TradeEvent
	// each resource buys at 10 per unit and sells at 10+spread.
	for i, spread := range []int64{3, 9, 1, 7, 5, 2} {
		res := string(rune('a' + i))
		events = append(events,
			testutil.Buy(at, res, "B"+res, "1", "10"),
			testutil.Sell(at, res, "S"+res, "1", decimal.NewFromInt(10+spread).String()),
		)
	}
	events = append(events,
		testutil.Buy(at, "loss", "X", "1", "10"),
		testutil.Sell(at, "loss", "Y", "1", "9"),
	)

	r := Analyse(events, nil, Options{TopRoutes: 3})

	require.Len(t, r.BestRoutes, 3)
	assert.Equal(t, []string{"b", "d", "e"},
		[]string{r.BestRoutes[0].ResourceID, r.BestRoutes[1].ResourceID, r.BestRoutes[2].ResourceID})
	for _, route := range r.BestRoutes {
		assert.True(t, route.ProfitPerUnit.IsPositive())
	}
}

func TestAnalyse_BestRoutePicksCheapestAndDearest(t *testing.T) {
	at := testutil.T("2025-05-01T10:00:00Z")
	events := []types.TradeEvent{
		testutil.Buy(at, "r", "cheap", "2", "10"),
		testutil.Buy(at, "r", "pricey", "1", "9"),
		testutil.Sell(at, "r", "low", "1", "6"),
		testutil.Sell(at, "r", "high", "2", "20"),
		testutil.Sell(at, "r", "high", "2", "24"),
	}

	r := Analyse(events, nil, Options{})

	require.Len(t, r.BestRoutes, 1)
	route := r.BestRoutes[0]
	assert.Equal(t, "cheap", route.BuyShopID)
	assert.Equal(t, "high", route.SellShopID)
	assertDecimal(t, "5", route.BuyUnitPrice, "buy unit")
	assertDecimal(t, "11", route.SellUnitPrice, "sell unit")
	assertDecimal(t, "6", route.ProfitPerUnit, "profit per unit")
}
