package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/allyounowbud/onetrack/internal/grid"
	"github.com/allyounowbud/onetrack/internal/models"
	"github.com/allyounowbud/onetrack/internal/names"
	"github.com/allyounowbud/onetrack/internal/repository"
	"github.com/allyounowbud/onetrack/utils"
)

// UnknownMarketplace is the grouping bucket for sales with no marketplace.
const UnknownMarketplace = "Unknown/Other"

// Range keys accepted by the statistics report.
const (
	RangeMTD    = "mtd"
	RangeLast7  = "last7"
	RangeLast30 = "last30"
	RangeNone   = "none"
)

// StatsQuery selects the date window and item filter of a statistics run.
type StatsQuery struct {
	// Range is one of mtd, last7, last30 or none.
	Range string

	// Item is a token filter; empty matches every item.
	Item string

	// From and To independently override the range's bounds when they
	// parse as dates. Unparsable overrides are silently ignored.
	From string
	To   string
}

// StatsService computes the period statistics report.
type StatsService struct {
	entries repository.LedgerRepository

	// now is swapped out by tests.
	now func() time.Time
}

// NewStatsService creates a statistics service.
func NewStatsService(entries repository.LedgerRepository) *StatsService {
	return &StatsService{entries: entries, now: time.Now}
}

// window resolves the query to optional [start, end] bounds. Nil on both
// sides means date filtering is a no-op.
func (s *StatsService) window(q StatsQuery) (start, end *time.Time) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch q.Range {
	case RangeMTD:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		start, end = &first, &today
	case RangeLast7:
		from := today.AddDate(0, 0, -7)
		start, end = &from, &today
	case RangeLast30:
		from := today.AddDate(0, 0, -30)
		start, end = &from, &today
	}

	if d, ok := grid.ParseDate(q.From); ok {
		start = &d
	}
	if d, ok := grid.ParseDate(q.To); ok {
		end = &d
	}
	return start, end
}

func inWindow(d time.Time, start, end *time.Time) bool {
	if start != nil && d.Before(*start) {
		return false
	}
	if end != nil && d.After(*end) {
		return false
	}
	return true
}

// Stats runs one pass over the ledger. A row can contribute its purchase
// side and its sale side to the same report independently: purchases bucket
// by order date, sales by sale date.
func (s *StatsService) Stats(ctx context.Context, q StatsQuery) (*models.StatsResult, error) {
	entries, err := s.entries.Entries(ctx)
	if err != nil {
		return nil, err
	}

	start, end := s.window(q)
	windowed := start != nil || end != nil
	matcher := names.NewMatcher(q.Item)

	res := &models.StatsResult{
		Monthly:      []models.MonthRow{},
		Items:        []models.ItemRow{},
		Retailers:    []models.RetailerRow{},
		Marketplaces: []models.MarketplaceRow{},
		TopItems:     []string{},
	}

	months := make(map[string]*models.MonthRow)
	items := make(map[string]*models.ItemRow)
	var itemOrder []string
	retailers := make(map[string]*models.RetailerRow)
	var retailerOrder []string
	marketplaces := make(map[string]*models.MarketplaceRow)
	var marketplaceOrder []string

	monthRow := func(key string) *models.MonthRow {
		if m, ok := months[key]; ok {
			return m
		}
		m := &models.MonthRow{Month: key}
		months[key] = m
		return m
	}
	itemRow := func(name string) *models.ItemRow {
		if r, ok := items[name]; ok {
			return r
		}
		r := &models.ItemRow{Item: name}
		items[name] = r
		itemOrder = append(itemOrder, name)
		return r
	}

	var daysSum, daysCount int

	for _, e := range entries {
		if !matcher.Matches(e.Item) {
			continue
		}

		orderDate, orderOK := grid.ParseDate(e.OrderDate)

		// Purchase side: in window by order date, or unconditionally
		// when no window is active.
		if !windowed || (orderOK && inWindow(orderDate, start, end)) {
			res.Summary.Bought++
			res.Summary.CostAll += e.BuyPrice

			ir := itemRow(e.Item)
			ir.Bought++
			ir.CostAll += e.BuyPrice

			if orderOK {
				m := monthRow(grid.MonthKey(orderDate))
				m.Bought++
				m.CostAll += e.BuyPrice
			}

			rr, ok := retailers[e.BoughtFrom]
			if !ok {
				rr = &models.RetailerRow{Retailer: e.BoughtFrom}
				retailers[e.BoughtFrom] = rr
				retailerOrder = append(retailerOrder, e.BoughtFrom)
			}
			rr.Bought++
			rr.CostAll += e.BuyPrice
		}

		// Sale side: needs a positive sell price and a parseable sale
		// date inside the window.
		if !e.Sold() {
			continue
		}
		saleDate, saleOK := grid.ParseDate(e.SaleDate)
		if !saleOK || !inWindow(saleDate, start, end) {
			continue
		}

		fee := e.SellPrice * e.FeesPct
		profit := e.SellPrice - fee - e.Shipping + e.BuyPrice

		res.Summary.Sold++
		res.Summary.Revenue += e.SellPrice
		res.Summary.Fees += fee
		res.Summary.Shipping += e.Shipping
		res.Summary.CostSold += e.BuyPrice

		ir := itemRow(e.Item)
		ir.Sold++
		ir.Revenue += e.SellPrice
		ir.Fees += fee
		ir.Shipping += e.Shipping
		ir.CostSold += e.BuyPrice
		ir.Profit += profit

		m := monthRow(grid.MonthKey(saleDate))
		m.Sold++
		m.Revenue += e.SellPrice
		m.Fees += fee
		m.Shipping += e.Shipping
		m.CostSold += e.BuyPrice
		m.Profit += profit

		mkName := e.SaleLocation
		if mkName == "" {
			mkName = UnknownMarketplace
		}
		mk, ok := marketplaces[mkName]
		if !ok {
			mk = &models.MarketplaceRow{Marketplace: mkName}
			marketplaces[mkName] = mk
			marketplaceOrder = append(marketplaceOrder, mkName)
		}
		mk.Sold++
		mk.Revenue += e.SellPrice
		mk.Fees += fee
		mk.Profit += profit

		if orderOK {
			days := grid.DaysBetween(orderDate, saleDate)
			if days < 0 {
				days = 0
			}
			daysSum += days
			daysCount++
		}
	}

	s.finalize(res, months, items, itemOrder, retailers, retailerOrder, marketplaces, marketplaceOrder, daysSum, daysCount)
	return res, nil
}

func (s *StatsService) finalize(
	res *models.StatsResult,
	months map[string]*models.MonthRow,
	items map[string]*models.ItemRow, itemOrder []string,
	retailers map[string]*models.RetailerRow, retailerOrder []string,
	marketplaces map[string]*models.MarketplaceRow, marketplaceOrder []string,
	daysSum, daysCount int,
) {
	sum := &res.Summary
	sum.Profit = sum.Revenue - sum.Fees - sum.Shipping + sum.CostSold
	sum.RoiPct = utils.SafeDiv(sum.Profit, math.Abs(sum.CostSold))
	if sum.Revenue > 0 {
		sum.MarginPct = sum.Profit / sum.Revenue
	}
	sum.ASP = utils.SafeDiv(sum.Revenue, float64(sum.Sold))
	if daysCount > 0 {
		sum.AvgDaysToSell = int(math.Round(float64(daysSum) / float64(daysCount)))
	}
	sum.CostAll = utils.Round2(sum.CostAll)
	sum.Revenue = utils.Round2(sum.Revenue)
	sum.Fees = utils.Round2(sum.Fees)
	sum.Shipping = utils.Round2(sum.Shipping)
	sum.CostSold = utils.Round2(sum.CostSold)
	sum.Profit = utils.Round2(sum.Profit)

	monthKeys := make([]string, 0, len(months))
	for k := range months {
		monthKeys = append(monthKeys, k)
	}
	sort.Strings(monthKeys)
	for _, k := range monthKeys {
		m := months[k]
		m.CostAll = utils.Round2(m.CostAll)
		m.Revenue = utils.Round2(m.Revenue)
		m.Fees = utils.Round2(m.Fees)
		m.Shipping = utils.Round2(m.Shipping)
		m.CostSold = utils.Round2(m.CostSold)
		m.Profit = utils.Round2(m.Profit)
		res.Monthly = append(res.Monthly, *m)
	}

	for _, name := range itemOrder {
		r := items[name]
		r.CostAll = utils.Round2(r.CostAll)
		r.Revenue = utils.Round2(r.Revenue)
		r.Fees = utils.Round2(r.Fees)
		r.Shipping = utils.Round2(r.Shipping)
		r.CostSold = utils.Round2(r.CostSold)
		r.Profit = utils.Round2(r.Profit)
		res.Items = append(res.Items, *r)
	}
	sort.SliceStable(res.Items, func(i, j int) bool {
		return res.Items[i].Profit > res.Items[j].Profit
	})
	for i := 0; i < len(res.Items) && i < 10; i++ {
		res.TopItems = append(res.TopItems, res.Items[i].Item)
	}

	for _, name := range retailerOrder {
		r := retailers[name]
		r.CostAll = utils.Round2(r.CostAll)
		res.Retailers = append(res.Retailers, *r)
	}
	for _, name := range marketplaceOrder {
		mk := marketplaces[name]
		mk.Revenue = utils.Round2(mk.Revenue)
		mk.Fees = utils.Round2(mk.Fees)
		mk.Profit = utils.Round2(mk.Profit)
		res.Marketplaces = append(res.Marketplaces, *mk)
	}
}
