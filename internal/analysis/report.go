package analysis

import (
	"time"

	"github.com/mselser95/trade-hauls/pkg/types"
	"github.com/shopspring/decimal"
)

// KPI holds headline totals.
type KPI struct {
	TotalProfit    decimal.Decimal `json:"total_profit_sc"`
	RealizedProfit decimal.Decimal `json:"realized_profit_sc"`
	TotalBuys      int             `json:"total_buys"`
	TotalSells     int             `json:"total_sells"`
	TotalHauls     int             `json:"total_hauls"`
}

// DailyProfit is sell revenue minus buy spend per UTC day, oldest first.
type DailyProfit struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

// BuySummary aggregates buys per shop and resource.
type BuySummary struct {
	ShopID              string          `json:"shopId"`
	ShopName            string          `json:"shopName"`
	ResourceID          string          `json:"resourceGUID"`
	Count               int             `json:"count"`
	MinQuantity         decimal.Decimal `json:"minQuantity"`
	AvgQuantity         decimal.Decimal `json:"avgQuantity"`
	MaxQuantity         decimal.Decimal `json:"maxQuantity"`
	MinPricePerCentiSCU decimal.Decimal `json:"minPriceperCentiSCU"`
	AvgPricePerCentiSCU decimal.Decimal `json:"avgPriceperCentiSCU"`
	MaxPricePerCentiSCU decimal.Decimal `json:"maxPriceperCentiSCU"`
}

// SellSummary aggregates sells per shop and resource. Amounts are per unit.
type SellSummary struct {
	ShopID        string          `json:"shopId"`
	ShopName      string          `json:"shopName"`
	ResourceID    string          `json:"resourceGUID"`
	Count         int             `json:"count"`
	MinQuantity   decimal.Decimal `json:"minQuantity"`
	AvgQuantity   decimal.Decimal `json:"avgQuantity"`
	MaxQuantity   decimal.Decimal `json:"maxQuantity"`
	MinAmountSell decimal.Decimal `json:"minAmountSell"`
	AvgAmountSell decimal.Decimal `json:"avgAmountSell"`
	MaxAmountSell decimal.Decimal `json:"maxAmountSell"`
}

// Route pairs the cheapest observed buy shop with the dearest observed sell
// shop for one resource.
type Route struct {
	ResourceID    string          `json:"resourceGUID"`
	BuyShopID     string          `json:"buyShopId"`
	SellShopID    string          `json:"sellShopId"`
	BuyUnitPrice  decimal.Decimal `json:"buyUnitPrice"`
	SellUnitPrice decimal.Decimal `json:"sellUnitPrice"`
	ProfitPerUnit decimal.Decimal `json:"profitPerUnit"`
}

// PendingGood is bought quantity of a resource not yet sold.
type PendingGood struct {
	ResourceID      string          `json:"resourceGUID"`
	PendingQuantity decimal.Decimal `json:"pending_qty"`
	PendingCost     decimal.Decimal `json:"pending_uec"`
	SuggestedShopID string          `json:"suggested_shopId,omitempty"`
}

// Transaction is the most recent event seen at a shop.
type Transaction struct {
	ShopID     string          `json:"shopId"`
	ShopName   string          `json:"shopName"`
	Operation  types.Operation `json:"operation"`
	ResourceID string          `json:"resourceGUID"`
	Quantity   decimal.Decimal `json:"quantity"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Report is the full dashboard context derived from one event batch.
type Report struct {
	KPI              KPI           `json:"kpi"`
	DailyProfit      DailyProfit   `json:"daily_profit"`
	BuySummary       []BuySummary  `json:"buy_summary"`
	SellSummary      []SellSummary `json:"sell_summary"`
	BestRoutes       []Route       `json:"best_routes"`
	PendingGoods     []PendingGood `json:"pending_goods"`
	LastTransactions []Transaction `json:"last_transactions"`
}
