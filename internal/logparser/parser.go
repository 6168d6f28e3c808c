package logparser

import (
	"strings"
	"time"

	"github.com/mselser95/trade-hauls/pkg/types"
	"github.com/shopspring/decimal"
)

// ParseLine decodes a raw log line and parses it. It returns false for any
// line that is not a well-formed commodity request.
func ParseLine(raw []byte) (types.TradeEvent, bool) {
	return ParseText(Decode(raw))
}

// ParseText parses an already decoded log line.
//
// Unrelated lines, malformed numbers and bad timestamps all yield false; a
// single corrupt line must never abort a batch.
func ParseText(line string) (types.TradeEvent, bool) {
	if !hasMarker(line) {
		return types.TradeEvent{}, false
	}

	m := lineRe.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
	if m == nil {
		return types.TradeEvent{}, false
	}
	ts, msg := m[1], m[2]

	op := classify(msg)
	if op == types.OperationUnknown {
		return types.TradeEvent{}, false
	}

	fields := extractFields(msg)

	timestamp, err := time.Parse(timestampLayout, ts)
	if err != nil {
		return types.TradeEvent{}, false
	}

	quantity, ok := parseQuantity(fields)
	if !ok {
		return types.TradeEvent{}, false
	}
	if op == types.OperationBuy {
		quantity = quantity.Shift(buyQuantityShift)
	}

	unitPrice, ok := parseDecimal(fields, fieldUnitPrice)
	if !ok {
		return types.TradeEvent{}, false
	}
	price, ok := parseDecimal(fields, fieldPrice)
	if !ok {
		return types.TradeEvent{}, false
	}
	amount, ok := parseDecimal(fields, fieldAmount)
	if !ok {
		return types.TradeEvent{}, false
	}

	return types.TradeEvent{
		Timestamp:             timestamp,
		Operation:             op,
		ShopID:                fields[fieldShopID],
		ShopName:              fields[fieldShopName],
		ResourceID:            fields[fieldResource],
		Quantity:              quantity,
		UnitPricePerHundredth: unitPrice.Mul(priceFactor),
		Price:                 price,
		Amount:                amount,
	}, true
}

func hasMarker(line string) bool {
	for _, marker := range markers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// classify checks markers in priority order: a body naming several requests
// is treated as the first one listed.
func classify(msg string) types.Operation {
	switch {
	case strings.Contains(msg, BuyMarker):
		return types.OperationBuy
	case strings.Contains(msg, SellMarker):
		return types.OperationSell
	case strings.Contains(msg, MoveMarker):
		return types.OperationMove
	case strings.Contains(msg, StockMarker):
		return types.OperationStock
	default:
		return types.OperationUnknown
	}
}

// extractFields scans key[value] tokens in order. A repeated key keeps the
// last value seen; downstream numbers depend on this.
func extractFields(msg string) map[string]string {
	fields := make(map[string]string)
	for _, match := range fieldRe.FindAllStringSubmatch(msg, -1) {
		fields[match[1]] = match[2]
	}
	return fields
}

// parseQuantity reads the leading number of the quantity field, which may
// carry a unit suffix such as "12000.000000 cSCU".
func parseQuantity(fields map[string]string) (decimal.Decimal, bool) {
	raw, found := fields[fieldQuantity]
	if !found {
		return decimal.Zero, true
	}
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return decimal.Zero, false
	}
	return parseBounded(tokens[0])
}

func parseDecimal(fields map[string]string, key string) (decimal.Decimal, bool) {
	raw, found := fields[key]
	if !found {
		return decimal.Zero, true
	}
	return parseBounded(strings.TrimSpace(raw))
}

func parseBounded(raw string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp < minExponent || exp > maxExponent {
		return decimal.Zero, false
	}
	return d, true
}
