package logparser

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Markers identifying the four commodity requests the client logs.
const (
	BuyMarker   = "<CEntityComponentCommodityUIProvider::SendCommodityBuyRequest>"
	SellMarker  = "<CEntityComponentCommodityUIProvider::SendCommoditySellRequest>"
	MoveMarker  = "<CEntityComponentCommodityUIProvider::SendCommodityMoveRequest>"
	StockMarker = "<CEntityComponentCommodityUIProvider::SendCommodityStockRequest>"
)

// Field keys read from a request body.
const (
	fieldShopID     = "shopId"
	fieldShopName   = "shopName"
	fieldResource   = "resourceGUID"
	fieldQuantity   = "quantity"
	fieldUnitPrice  = "shopPricePerCentiSCU"
	fieldPrice      = "price"
	fieldAmount     = "amount"
	timestampLayout = "2006-01-02T15:04:05.000Z"
)

// Numbers whose decimal exponent falls outside this range are treated as
// malformed. Arithmetic on them would overflow or allocate without bound.
const (
	minExponent = -28
	maxExponent = 28
)

// LogExtension is the only file extension the collector accepts.
const LogExtension = ".log"

//nolint:gochecknoglobals // compiled once, read-only
var (
	lineRe  = regexp.MustCompile(`^<?(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z)>?\s*\[Notice\]\s*(.*)$`)
	fieldRe = regexp.MustCompile(`([\p{L}\p{N}_]+)\[([^\]]+)\]`)

	// Buy quantities are logged in hundredths of a unit (cSCU).
	buyQuantityShift int32 = -2

	// Per-cSCU prices are scaled to the smallest money subunit.
	priceFactor = decimal.NewFromInt(1000)

	markers = []string{BuyMarker, SellMarker, MoveMarker, StockMarker}
)
