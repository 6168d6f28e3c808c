package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mselser95/trade-hauls/pkg/types"
	"github.com/shopspring/decimal"
)

// Sample client log lines as written by the game.
const (
	BuyLine = "<2025-06-21T22:00:18.409Z> [Notice] <CEntityComponentCommodityUIProvider::SendCommodityBuyRequest> " +
		"Sending SShopCommodityBuyRequest - playerId[3563068139983] shopId[4511624678944] " +
		"shopName[SCShop_ht_delta_rayari_m_store] kioskId[4511624678943] price[2159456.000000] " +
		"shopPricePerCentiSCU[179.954651] resourceGUID[096618a0-1f7d-48db-9c6a-9ac459386527] autoLoading[0] " +
		"quantity[12000.000000 cSCU] Cargo Box Data: boxSize[8.000000] | unitAmount[15] " +
		"[Team_CoreGameplayFeatures][Shops][UI]"

	SellLine = "<2025-06-21T22:36:46.210Z> [Notice] <CEntityComponentCommodityUIProvider::SendCommoditySellRequest> " +
		"Sending SShopCommoditySellRequest - playerId[3563068139983] shopId[4511623301041] " +
		"shopName[SCShop_ht_delta_shubin_m_store] kioskId[4511623301040] amount[2038501.000000] " +
		"resourceGUID[096618a0-1f7d-48db-9c6a-9ac459386527] autoLoading[0] quantity[96] " +
		"transactionMode[Location] Cargo Box Data:  [boxSize[8] | unitAmount[12]] " +
		"[Team_CoreGameplayFeatures][Shops][UI]"

	MoveLine = "<2025-06-21T22:10:02.118Z> [Notice] <CEntityComponentCommodityUIProvider::SendCommodityMoveRequest> " +
		"Sending SShopCommodityMoveRequest - playerId[3563068139983] shopId[4511623301099] " +
		"shopName[SCShop_hangar_cargo_grid] resourceGUID[096618a0-1f7d-48db-9c6a-9ac459386527] " +
		"quantity[10] [Team_CoreGameplayFeatures][Shops][UI]"

	StockLine = "<2025-06-21T22:05:40.001Z> [Notice] <CEntityComponentCommodityUIProvider::SendCommodityStockRequest> " +
		"Sending SShopCommodityStockRequest - playerId[3563068139983] shopId[4511624678944] " +
		"shopName[SCShop_ht_delta_rayari_m_store] resourceGUID[096618a0-1f7d-48db-9c6a-9ac459386527] " +
		"quantity[340] [Team_CoreGameplayFeatures][Shops][UI]"

	NoiseLine = "<2025-06-21T22:00:17.002Z> [Notice] <ContextEstablisherTaskFinished> establisher=\"CReplicationModel\" " +
		"message=\"CET completed\" [Team_Network][Replication]"

	ResourceID = "096618a0-1f7d-48db-9c6a-9ac459386527"
	BuyShopID  = "4511624678944"
	SellShopID = "4511623301041"
	MoveShopID = "4511623301099"
)

// D parses a decimal literal and panics on malformed input.
func D(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// T parses an RFC3339 timestamp and panics on malformed input.
func T(s string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		panic(err)
	}
	return ts
}

// Buy creates a Buy event with quantity already expressed in units.
func Buy(at time.Time, resource, shop string, quantity, price string) types.TradeEvent {
	return types.TradeEvent{
		Timestamp:  at,
		Operation:  types.OperationBuy,
		ShopID:     shop,
		ShopName:   "shop-" + shop,
		ResourceID: resource,
		Quantity:   D(quantity),
		Price:      D(price),
	}
}

// Sell creates a Sell event.
func Sell(at time.Time, resource, shop string, quantity, amount string) types.TradeEvent {
	return types.TradeEvent{
		Timestamp:  at,
		Operation:  types.OperationSell,
		ShopID:     shop,
		ShopName:   "shop-" + shop,
		ResourceID: resource,
		Quantity:   D(quantity),
		Amount:     D(amount),
	}
}

// Move creates a Move event to the destination shop.
func Move(at time.Time, resource, dest string, quantity string) types.TradeEvent {
	return types.TradeEvent{
		Timestamp:  at,
		Operation:  types.OperationMove,
		ShopID:     dest,
		ShopName:   "shop-" + dest,
		ResourceID: resource,
		Quantity:   D(quantity),
	}
}

// WriteLog writes lines to name inside dir and returns the file path.
func WriteLog(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create log dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write log file: %v", err)
	}
	return path
}
