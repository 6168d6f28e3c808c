package analysis

import (
	"cmp"
	"slices"

	"github.com/mselser95/trade-hauls/pkg/types"
	"github.com/shopspring/decimal"
)

// DefaultTopRoutes is the number of best routes kept when Options leaves it unset.
const DefaultTopRoutes = 5

const dateLayout = "2006-01-02"

// Options tunes the report.
type Options struct {
	TopRoutes int
}

type groupKey struct {
	shop     string
	resource string
}

// stats accumulates min, max and sum of a decimal series.
type stats struct {
	n   int
	min decimal.Decimal
	max decimal.Decimal
	sum decimal.Decimal
}

func (s *stats) add(v decimal.Decimal) {
	if s.n == 0 || v.LessThan(s.min) {
		s.min = v
	}
	if s.n == 0 || v.GreaterThan(s.max) {
		s.max = v
	}
	s.sum = s.sum.Add(v)
	s.n++
}

func (s *stats) mean() decimal.Decimal {
	if s.n == 0 {
		return decimal.Zero
	}
	return s.sum.Div(decimal.NewFromInt(int64(s.n)))
}

// Analyse builds the dashboard report from parsed events and the hauls the
// engine matched from them. Events with a non-positive quantity are ignored.
func Analyse(events []types.TradeEvent, hauls []types.Haul, opts Options) Report {
	if opts.TopRoutes <= 0 {
		opts.TopRoutes = DefaultTopRoutes
	}

	var buys, sells, valid []types.TradeEvent
	for _, ev := range events {
		if !ev.Quantity.IsPositive() {
			continue
		}
		valid = append(valid, ev)
		switch ev.Operation {
		case types.OperationBuy:
			buys = append(buys, ev)
		case types.OperationSell:
			sells = append(sells, ev)
		}
	}

	sellUnit := meanUnitPrices(sells, sellUnitPrice)

	return Report{
		KPI:              kpi(buys, sells, hauls),
		DailyProfit:      dailyProfit(buys, sells),
		BuySummary:       buySummary(buys),
		SellSummary:      sellSummary(sells),
		BestRoutes:       bestRoutes(meanUnitPrices(buys, buyUnitPrice), sellUnit, opts.TopRoutes),
		PendingGoods:     pendingGoods(buys, sells, sellUnit),
		LastTransactions: lastTransactions(valid),
	}
}

func buyUnitPrice(ev types.TradeEvent) decimal.Decimal { return ev.Price.Div(ev.Quantity) }

func sellUnitPrice(ev types.TradeEvent) decimal.Decimal { return ev.Amount.Div(ev.Quantity) }

func kpi(buys, sells []types.TradeEvent, hauls []types.Haul) KPI {
	k := KPI{
		TotalBuys:  len(buys),
		TotalSells: len(sells),
		TotalHauls: len(hauls),
	}
	for _, ev := range sells {
		k.TotalProfit = k.TotalProfit.Add(ev.Amount)
	}
	for _, ev := range buys {
		k.TotalProfit = k.TotalProfit.Sub(ev.Price)
	}
	for _, h := range hauls {
		k.RealizedProfit = k.RealizedProfit.Add(h.Profit)
	}
	return k
}

func dailyProfit(buys, sells []types.TradeEvent) DailyProfit {
	byDay := make(map[string]decimal.Decimal)
	for _, ev := range sells {
		day := ev.Timestamp.UTC().Format(dateLayout)
		byDay[day] = byDay[day].Add(ev.Amount)
	}
	for _, ev := range buys {
		day := ev.Timestamp.UTC().Format(dateLayout)
		byDay[day] = byDay[day].Sub(ev.Price)
	}

	out := DailyProfit{
		Labels: make([]string, 0, len(byDay)),
		Values: make([]decimal.Decimal, 0, len(byDay)),
	}
	for day := range byDay {
		out.Labels = append(out.Labels, day)
	}
	slices.Sort(out.Labels)
	for _, day := range out.Labels {
		out.Values = append(out.Values, byDay[day])
	}
	return out
}

type summaryGroup struct {
	shopName string
	quantity stats
	price    stats
}

// groupByShopResource accumulates quantity and the value of price for each
// (shop, resource) pair and returns the keys sorted.
func groupByShopResource(events []types.TradeEvent, price func(types.TradeEvent) decimal.Decimal) ([]groupKey, map[groupKey]*summaryGroup) {
	groups := make(map[groupKey]*summaryGroup)
	for _, ev := range events {
		key := groupKey{shop: ev.ShopID, resource: ev.ResourceID}
		g, ok := groups[key]
		if !ok {
			g = &summaryGroup{shopName: ev.ShopName}
			groups[key] = g
		}
		g.quantity.add(ev.Quantity)
		g.price.add(price(ev))
	}

	keys := make([]groupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b groupKey) int {
		return cmp.Or(cmp.Compare(a.shop, b.shop), cmp.Compare(a.resource, b.resource))
	})
	return keys, groups
}

func buySummary(buys []types.TradeEvent) []BuySummary {
	keys, groups := groupByShopResource(buys, func(ev types.TradeEvent) decimal.Decimal {
		return ev.UnitPricePerHundredth
	})

	out := make([]BuySummary, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		out = append(out, BuySummary{
			ShopID:              key.shop,
			ShopName:            g.shopName,
			ResourceID:          key.resource,
			Count:               g.quantity.n,
			MinQuantity:         g.quantity.min,
			AvgQuantity:         g.quantity.mean(),
			MaxQuantity:         g.quantity.max,
			MinPricePerCentiSCU: g.price.min,
			AvgPricePerCentiSCU: g.price.mean(),
			MaxPricePerCentiSCU: g.price.max,
		})
	}
	return out
}

func sellSummary(sells []types.TradeEvent) []SellSummary {
	keys, groups := groupByShopResource(sells, sellUnitPrice)

	out := make([]SellSummary, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		out = append(out, SellSummary{
			ShopID:        key.shop,
			ShopName:      g.shopName,
			ResourceID:    key.resource,
			Count:         g.quantity.n,
			MinQuantity:   g.quantity.min,
			AvgQuantity:   g.quantity.mean(),
			MaxQuantity:   g.quantity.max,
			MinAmountSell: g.price.min,
			AvgAmountSell: g.price.mean(),
			MaxAmountSell: g.price.max,
		})
	}
	return out
}

// shopPrice is the mean unit price a shop showed for one resource.
type shopPrice struct {
	shop  string
	price decimal.Decimal
}

// meanUnitPrices returns, per resource, the mean unit price of every shop
// sorted by shop ID.
func meanUnitPrices(events []types.TradeEvent, unit func(types.TradeEvent) decimal.Decimal) map[string][]shopPrice {
	keys, groups := groupByShopResource(events, unit)

	out := make(map[string][]shopPrice)
	for _, key := range keys {
		out[key.resource] = append(out[key.resource], shopPrice{shop: key.shop, price: groups[key].price.mean()})
	}
	return out
}

// cheapest returns the lowest priced shop; ties keep the first shop ID.
func cheapest(prices []shopPrice) shopPrice {
	best := prices[0]
	for _, p := range prices[1:] {
		if p.price.LessThan(best.price) {
			best = p
		}
	}
	return best
}

// dearest returns the highest priced shop; ties keep the first shop ID.
func dearest(prices []shopPrice) shopPrice {
	best := prices[0]
	for _, p := range prices[1:] {
		if p.price.GreaterThan(best.price) {
			best = p
		}
	}
	return best
}

func bestRoutes(buyUnit, sellUnit map[string][]shopPrice, top int) []Route {
	routes := make([]Route, 0)
	for resource, buyPrices := range buyUnit {
		sellPrices, ok := sellUnit[resource]
		if !ok {
			continue
		}
		buy, sell := cheapest(buyPrices), dearest(sellPrices)
		profit := sell.price.Sub(buy.price)
		if !profit.IsPositive() {
			continue
		}
		routes = append(routes, Route{
			ResourceID:    resource,
			BuyShopID:     buy.shop,
			SellShopID:    sell.shop,
			BuyUnitPrice:  buy.price,
			SellUnitPrice: sell.price,
			ProfitPerUnit: profit,
		})
	}

	slices.SortFunc(routes, func(a, b Route) int {
		return cmp.Or(b.ProfitPerUnit.Cmp(a.ProfitPerUnit), cmp.Compare(a.ResourceID, b.ResourceID))
	})
	if len(routes) > top {
		routes = routes[:top]
	}
	return routes
}

func pendingGoods(buys, sells []types.TradeEvent, sellUnit map[string][]shopPrice) []PendingGood {
	type totals struct {
		bought decimal.Decimal
		spent  decimal.Decimal
		sold   decimal.Decimal
	}

	byResource := make(map[string]*totals)
	for _, ev := range buys {
		t, ok := byResource[ev.ResourceID]
		if !ok {
			t = &totals{}
			byResource[ev.ResourceID] = t
		}
		t.bought = t.bought.Add(ev.Quantity)
		t.spent = t.spent.Add(ev.Price)
	}
	for _, ev := range sells {
		if t, ok := byResource[ev.ResourceID]; ok {
			t.sold = t.sold.Add(ev.Quantity)
		}
	}

	out := make([]PendingGood, 0)
	for resource, t := range byResource {
		pending := t.bought.Sub(t.sold)
		if !pending.IsPositive() {
			continue
		}
		good := PendingGood{
			ResourceID:      resource,
			PendingQuantity: pending,
			PendingCost:     pending.Mul(t.spent).Div(t.bought),
		}
		if prices, ok := sellUnit[resource]; ok {
			good.SuggestedShopID = dearest(prices).shop
		}
		out = append(out, good)
	}

	slices.SortFunc(out, func(a, b PendingGood) int {
		return cmp.Compare(a.ResourceID, b.ResourceID)
	})
	return out
}

func lastTransactions(events []types.TradeEvent) []Transaction {
	latest := make(map[string]types.TradeEvent)
	for _, ev := range events {
		prev, ok := latest[ev.ShopID]
		if !ok || !ev.Timestamp.Before(prev.Timestamp) {
			latest[ev.ShopID] = ev
		}
	}

	out := make([]Transaction, 0, len(latest))
	for _, ev := range latest {
		out = append(out, Transaction{
			ShopID:     ev.ShopID,
			ShopName:   ev.ShopName,
			Operation:  ev.Operation,
			ResourceID: ev.ResourceID,
			Quantity:   ev.Quantity,
			Timestamp:  ev.Timestamp,
		})
	}
	slices.SortFunc(out, func(a, b Transaction) int {
		return cmp.Compare(a.ShopID, b.ShopID)
	})
	return out
}
