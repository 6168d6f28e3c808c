package hauls

import (
	"context"
	"strings"
	"testing"

	"github.com/mselser95/trade-hauls/internal/logparser"
	"github.com/mselser95/trade-hauls/internal/testutil"
	"github.com/mselser95/trade-hauls/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortEvents_StableByTimestamp(t *testing.T) {
	events := []types.TradeEvent{
		testutil.Sell(t2, res, "late", "1", "1"),
		testutil.Buy(t0, res, "first", "1", "1"),
		testutil.Buy(t0, res, "second", "1", "1"),
		testutil.Move(t1, res, "mid", "1"),
	}

	sorted := SortEvents(events)

	shops := make([]string, 0, len(sorted))
	for _, ev := range sorted {
		shops = append(shops, ev.ShopID)
	}
	assert.Equal(t, []string{"first", "second", "mid", "late"}, shops)
	assert.Equal(t, "late", events[0].ShopID, "input is not reordered")
}

func TestTrackHauls_SortsBeforeMatching(t *testing.T) {
	hauls := TrackHauls([]types.TradeEvent{
		testutil.Sell(t1, res, "B", "96", "2038501"),
		testutil.Buy(t0, res, "A", "120", "2159456"),
	})

	require.Len(t, hauls, 1)
	assertDecimal(t, "310936.2", hauls[0].Profit, "profit")
}

func TestTrackHauls_Idempotent(t *testing.T) {
	events := []types.TradeEvent{
		testutil.Buy(t0, res, "A", "10", "100"),
		testutil.Buy(t1, res, "B", "10", "250"),
		testutil.Move(t1, res, "C", "12"),
		testutil.Sell(t2, res, "D", "15", "900"),
		testutil.Sell(t3, res, "E", "9", "300"),
	}

	assert.Equal(t, TrackHauls(events), TrackHauls(events))
}

func TestTrackHauls_Empty(t *testing.T) {
	assert.Empty(t, TrackHauls(nil))
}

func TestReplay_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(Config{})
	err := Replay(ctx, e, []types.TradeEvent{testutil.Buy(t0, res, "A", "1", "1")})

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, e.Inventory())
}

func TestReplay_AppliesAll(t *testing.T) {
	e := New(Config{})
	err := Replay(context.Background(), e, []types.TradeEvent{
		testutil.Buy(t0, res, "A", "120", "2159456"),
		testutil.Move(t1, res, "C", "120"),
		testutil.Sell(t2, res, "D", "120", "2548126.25"),
	})

	require.NoError(t, err)
	require.Len(t, e.CompletedHauls(), 1)
	assert.Equal(t, "A", e.CompletedHauls()[0].BuyShop)
}

func TestTrackHauls_OutOfRangeNumbersNeverReachEngine(t *testing.T) {
	lines := []string{
		testutil.BuyLine,
		strings.Replace(testutil.SellLine, "amount[2038501.000000]", "amount[1e2147483640]", 1),
		strings.Replace(testutil.BuyLine, "quantity[12000.000000 cSCU]", "quantity[1e-2147483647 cSCU]", 1),
		testutil.SellLine,
	}

	var events []types.TradeEvent
	for _, line := range lines {
		if ev, ok := logparser.ParseText(line); ok {
			events = append(events, ev)
		}
	}
	require.Len(t, events, 2)

	var hauls []types.Haul
	require.NotPanics(t, func() {
		hauls = TrackHauls(events)
	})
	require.Len(t, hauls, 1)
	assertDecimal(t, "96", hauls[0].Quantity, "quantity")
}
