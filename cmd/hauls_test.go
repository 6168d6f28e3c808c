package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mselser95/trade-hauls/internal/scan"
	"github.com/mselser95/trade-hauls/internal/testutil"
	"github.com/mselser95/trade-hauls/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintHauls(t *testing.T) {
	hauls := []types.Haul{
		{
			ResourceID: "r1", BuyShop: "A", SellShop: "B",
			Quantity: testutil.D("96"), BuyPrice: testutil.D("1727564.8"),
			SellPrice: testutil.D("2038501"), Profit: testutil.D("310936.2"),
			SoldAt: testutil.T("2025-06-21T22:36:46.210Z"),
		},
		{
			ResourceID: "r2", BuyShop: "C", SellShop: "D",
			Quantity: testutil.D("10"), BuyPrice: testutil.D("100"),
			SellPrice: testutil.D("90"), Profit: testutil.D("-10"),
			SoldAt: testutil.T("2025-06-22T08:00:00Z"),
		},
	}

	var buf bytes.Buffer
	printHauls(&buf, hauls)

	out := buf.String()
	assert.Contains(t, out, "PROFIT")
	assert.Contains(t, out, "2025-06-21 22:36")
	assert.Contains(t, out, "310936.20")
	assert.Contains(t, out, "-10.00")
	assert.Contains(t, out, "Total: 2 hauls, profit 310926.20")
}

func TestPrintHauls_Empty(t *testing.T) {
	var buf bytes.Buffer
	printHauls(&buf, nil)

	assert.Equal(t, "No completed hauls.\n", buf.String())
}

func TestPrintBalances(t *testing.T) {
	balances := []types.ResourceBalance{
		{ResourceID: "ok-res", Bought: testutil.D("10"), Sold: testutil.D("10")},
		{ResourceID: "bad-res", Bought: testutil.D("5"), Sold: testutil.D("5"), UnmatchedSell: testutil.D("3")},
	}

	var buf bytes.Buffer
	printBalances(&buf, balances)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	assert.Len(t, lines, 4)
	assert.Contains(t, string(lines[2]), "ok-res")
	assert.Contains(t, string(lines[2]), "ok")
	assert.Contains(t, string(lines[3]), "bad-res")
	assert.Contains(t, string(lines[3]), "UNBALANCED")
}

func TestWriteHaulsReport_AllOutputGoesToWriter(t *testing.T) {
	snap := &scan.Snapshot{
		Balances: []types.ResourceBalance{{ResourceID: "res", Bought: testutil.D("1"), Sold: testutil.D("1")}},
	}

	var buf bytes.Buffer
	writeHaulsReport(&buf, snap, true)

	assert.True(t, strings.HasPrefix(buf.String(), "No completed hauls.\n\n"), buf.String())
	assert.Contains(t, buf.String(), "RESOURCE")

	buf.Reset()
	writeHaulsReport(&buf, snap, false)
	assert.Equal(t, "No completed hauls.\n", buf.String())
}
