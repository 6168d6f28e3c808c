package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot is an open holding of one resource created by a Buy.
//
// The cost basis is the ratio BasisPrice/BasisQuantity of the originating Buy.
// Splits copy the ratio unchanged, so moving part of a lot never alters the
// money attributed to either part.
type Lot struct {
	ResourceID      string          `json:"resourceGUID"`
	Quantity        decimal.Decimal `json:"quantity"`
	BasisPrice      decimal.Decimal `json:"basisPrice"`
	BasisQuantity   decimal.Decimal `json:"basisQuantity"`
	OriginShop      string          `json:"originShop"`
	CurrentLocation string          `json:"currentLocation"`
	OpenedAt        time.Time       `json:"openedAt"`
}

// UnitCost returns the per-unit cost basis of the lot.
func (l Lot) UnitCost() decimal.Decimal {
	if l.BasisQuantity.IsZero() {
		return decimal.Zero
	}
	return l.BasisPrice.Div(l.BasisQuantity)
}

// CostOf returns the cost basis attributed to qty units of this lot.
func (l Lot) CostOf(qty decimal.Decimal) decimal.Decimal {
	if l.BasisQuantity.IsZero() {
		return decimal.Zero
	}
	return qty.Mul(l.BasisPrice).Div(l.BasisQuantity)
}

// Haul is one realized buy->sell leg. Hauls are never mutated after creation.
type Haul struct {
	ResourceID string          `json:"resourceGUID"`
	BuyShop    string          `json:"buy_shop"`
	SellShop   string          `json:"sell_shop"`
	Quantity   decimal.Decimal `json:"quantity"`
	BuyPrice   decimal.Decimal `json:"buy_price"`
	SellPrice  decimal.Decimal `json:"sell_price"`
	Profit     decimal.Decimal `json:"profit"`
	BoughtAt   time.Time       `json:"bought_at"`
	SoldAt     time.Time       `json:"sold_at"`
}

// ResourceBalance reconciles one resource's bought quantity against what the
// engine matched, moved, dropped, and still holds.
type ResourceBalance struct {
	ResourceID    string          `json:"resourceGUID"`
	Bought        decimal.Decimal `json:"bought"`
	Sold          decimal.Decimal `json:"sold"`
	Moved         decimal.Decimal `json:"moved"`
	UnmatchedSell decimal.Decimal `json:"unmatched_sell"`
	UnmatchedMove decimal.Decimal `json:"unmatched_move"`
	Remaining     decimal.Decimal `json:"remaining"`
}

// Balanced reports whether every sell and move for the resource found
// inventory to match against.
func (b ResourceBalance) Balanced() bool {
	return b.UnmatchedSell.IsZero() && b.UnmatchedMove.IsZero()
}
