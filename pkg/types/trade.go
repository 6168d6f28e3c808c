package types

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Operation is the kind of commodity request recorded in a game log line.
type Operation int

const (
	OperationUnknown Operation = iota
	OperationBuy
	OperationSell
	OperationMove
	OperationStock
)

// String returns the canonical operation name ("Buy", "Sell", "Move", "Stock").
func (o Operation) String() string {
	switch o {
	case OperationBuy:
		return "Buy"
	case OperationSell:
		return "Sell"
	case OperationMove:
		return "Move"
	case OperationStock:
		return "Stock"
	default:
		return "Unknown"
	}
}

// ParseOperation converts a canonical operation name back to an Operation.
func ParseOperation(s string) (Operation, error) {
	switch s {
	case "Buy":
		return OperationBuy, nil
	case "Sell":
		return OperationSell, nil
	case "Move":
		return OperationMove, nil
	case "Stock":
		return OperationStock, nil
	default:
		return OperationUnknown, fmt.Errorf("unknown operation %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Operation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Operation) UnmarshalText(text []byte) error {
	op, err := ParseOperation(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// TradeEvent is one parsed commodity request from a game log.
//
// Quantity is stored in units: Buy lines report hundredths of a unit and are
// normalized by the parser. Price is meaningful for Buy, Amount for Sell.
type TradeEvent struct {
	Timestamp             time.Time       `json:"timestamp"`
	Operation             Operation       `json:"operation"`
	ShopID                string          `json:"shopId"`
	ShopName              string          `json:"shopName"`
	ResourceID            string          `json:"resourceGUID"`
	Quantity              decimal.Decimal `json:"quantity"`
	UnitPricePerHundredth decimal.Decimal `json:"shopPricePerCentiSCU"`
	Price                 decimal.Decimal `json:"price"`
	Amount                decimal.Decimal `json:"amount"`
}
