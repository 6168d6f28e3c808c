package hauls

import (
	"github.com/mselser95/trade-hauls/pkg/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config holds engine configuration.
type Config struct {
	Logger *zap.Logger
}

// Engine matches sells and moves against open lots per resource, oldest lot
// first, and records a Haul for every lot fragment a sell consumes.
//
// An Engine is not safe for concurrent use. Build a fresh one per run.
type Engine struct {
	logger   *zap.Logger
	order    []string
	lots     map[string][]types.Lot
	balances map[string]*types.ResourceBalance
	hauls    []types.Haul
}

// New creates an engine with empty inventory.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger:   logger,
		lots:     make(map[string][]types.Lot),
		balances: make(map[string]*types.ResourceBalance),
	}
}

// Process applies one event. Events must arrive in timestamp order.
func (e *Engine) Process(ev types.TradeEvent) {
	if !ev.Quantity.IsPositive() {
		return
	}

	switch ev.Operation {
	case types.OperationBuy:
		e.buy(ev)
	case types.OperationSell:
		e.sell(ev)
	case types.OperationMove:
		e.move(ev)
	default:
		// Stock and unknown operations leave inventory untouched.
	}
}

func (e *Engine) balance(resource string) *types.ResourceBalance {
	b, ok := e.balances[resource]
	if !ok {
		b = &types.ResourceBalance{ResourceID: resource}
		e.balances[resource] = b
		e.order = append(e.order, resource)
	}
	return b
}

func (e *Engine) buy(ev types.TradeEvent) {
	b := e.balance(ev.ResourceID)
	b.Bought = b.Bought.Add(ev.Quantity)

	e.lots[ev.ResourceID] = append(e.lots[ev.ResourceID], types.Lot{
		ResourceID:      ev.ResourceID,
		Quantity:        ev.Quantity,
		BasisPrice:      ev.Price,
		BasisQuantity:   ev.Quantity,
		OriginShop:      ev.ShopID,
		CurrentLocation: ev.ShopID,
		OpenedAt:        ev.Timestamp,
	})
}

func (e *Engine) sell(ev types.TradeEvent) {
	b := e.balance(ev.ResourceID)
	lots := e.lots[ev.ResourceID]
	remaining := ev.Quantity

	for len(lots) > 0 && remaining.IsPositive() {
		lot := &lots[0]
		take := decimal.Min(lot.Quantity, remaining)

		buyPrice := lot.CostOf(take)
		sellPrice := take.Mul(ev.Amount).Div(ev.Quantity)
		e.hauls = append(e.hauls, types.Haul{
			ResourceID: ev.ResourceID,
			BuyShop:    lot.OriginShop,
			SellShop:   ev.ShopID,
			Quantity:   take,
			BuyPrice:   buyPrice,
			SellPrice:  sellPrice,
			Profit:     sellPrice.Sub(buyPrice),
			BoughtAt:   lot.OpenedAt,
			SoldAt:     ev.Timestamp,
		})
		HaulsEmittedTotal.Inc()

		lot.Quantity = lot.Quantity.Sub(take)
		remaining = remaining.Sub(take)
		b.Sold = b.Sold.Add(take)
		if !lot.Quantity.IsPositive() {
			lots = lots[1:]
		}
	}

	e.store(ev.ResourceID, lots)

	if remaining.IsPositive() {
		b.UnmatchedSell = b.UnmatchedSell.Add(remaining)
		UnmatchedQuantityTotal.WithLabelValues(types.OperationSell.String()).Inc()
		e.logger.Debug("sell-remainder-dropped",
			zap.String("resource", ev.ResourceID),
			zap.String("shop", ev.ShopID),
			zap.String("requested", ev.Quantity.String()),
			zap.String("dropped", remaining.String()))
	}
}

// move relocates lots in FIFO order. A lot that is only partly moved stays
// in place with the remainder, and the moved part is inserted right after it.
func (e *Engine) move(ev types.TradeEvent) {
	b := e.balance(ev.ResourceID)
	lots := e.lots[ev.ResourceID]
	remaining := ev.Quantity

	for i := 0; i < len(lots) && remaining.IsPositive(); i++ {
		lot := &lots[i]
		if lot.Quantity.LessThanOrEqual(remaining) {
			lot.CurrentLocation = ev.ShopID
			remaining = remaining.Sub(lot.Quantity)
			b.Moved = b.Moved.Add(lot.Quantity)
			continue
		}

		moved := *lot
		moved.Quantity = remaining
		moved.CurrentLocation = ev.ShopID
		lot.Quantity = lot.Quantity.Sub(remaining)
		lots = append(lots[:i+1], append([]types.Lot{moved}, lots[i+1:]...)...)

		b.Moved = b.Moved.Add(remaining)
		remaining = decimal.Zero
	}

	e.store(ev.ResourceID, lots)

	if remaining.IsPositive() {
		b.UnmatchedMove = b.UnmatchedMove.Add(remaining)
		UnmatchedQuantityTotal.WithLabelValues(types.OperationMove.String()).Inc()
		e.logger.Debug("move-remainder-dropped",
			zap.String("resource", ev.ResourceID),
			zap.String("destination", ev.ShopID),
			zap.String("requested", ev.Quantity.String()),
			zap.String("dropped", remaining.String()))
	}
}

func (e *Engine) store(resource string, lots []types.Lot) {
	if len(lots) == 0 {
		delete(e.lots, resource)
		return
	}
	e.lots[resource] = lots
}

// CompletedHauls returns the hauls recorded so far, oldest first.
func (e *Engine) CompletedHauls() []types.Haul {
	out := make([]types.Haul, len(e.hauls))
	copy(out, e.hauls)
	return out
}

// Inventory returns the open lots of every resource in FIFO order. Resources
// appear in the order the engine first saw them.
func (e *Engine) Inventory() []types.Lot {
	var out []types.Lot
	for _, resource := range e.order {
		out = append(out, e.lots[resource]...)
	}
	return out
}

// Balances reports bought, matched, dropped and remaining quantity for every
// resource the engine has seen.
func (e *Engine) Balances() []types.ResourceBalance {
	out := make([]types.ResourceBalance, 0, len(e.order))
	for _, resource := range e.order {
		b := *e.balances[resource]
		b.Remaining = decimal.Zero
		for _, lot := range e.lots[resource] {
			b.Remaining = b.Remaining.Add(lot.Quantity)
		}
		out = append(out, b)
	}
	return out
}
