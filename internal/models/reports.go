package models

// ItemValuation is the on-hand rollup for a single item. Monetary fields are
// rounded to 2 decimal places; cost fields keep the negative sign.
type ItemValuation struct {
	Item       string     `json:"item"`
	OnHandQty  int        `json:"on_hand_qty"`
	OnHandCost SignedCost `json:"on_hand_cost"`
	AvgCost    SignedCost `json:"avg_cost"`
	MarketEach float64    `json:"market_each"`
	EstValue   float64    `json:"est_value"`
}

// InventoryReport is the point-in-time inventory valuation. Items are sorted
// by on-hand quantity, largest first; ties keep ledger encounter order.
type InventoryReport struct {
	Items         []ItemValuation `json:"items"`
	TotalQty      int             `json:"total_qty"`
	TotalCost     SignedCost      `json:"total_cost"`
	TotalEstValue float64         `json:"total_est_value"`

	// Unrealized is TotalEstValue + TotalCost; cost is negative, so this
	// is the estimated value net of what is still sunk in inventory.
	Unrealized float64 `json:"unrealized"`
}

// StatsSummary holds the period totals of the statistics report.
type StatsSummary struct {
	Bought   int        `json:"bought"`
	CostAll  SignedCost `json:"cost_all"`
	Sold     int        `json:"sold"`
	Revenue  float64    `json:"revenue"`
	Fees     float64    `json:"fees"`
	Shipping float64    `json:"shipping"`
	CostSold SignedCost `json:"cost_sold"`

	// Profit is revenue - fees - shipping + costSold (cost already negative).
	Profit float64 `json:"profit"`

	// RoiPct is profit over the absolute cost of goods sold, as a ratio.
	RoiPct float64 `json:"roi_pct"`

	// MarginPct is profit over revenue, as a ratio.
	MarginPct float64 `json:"margin_pct"`

	// ASP is the average selling price, revenue over units sold.
	ASP float64 `json:"asp"`

	// AvgDaysToSell is the rounded mean holding time of the period's sales.
	AvgDaysToSell int `json:"avg_days_to_sell"`
}

// MonthRow is one month of the monthly breakdown. Purchase-side fields
// bucket by order-date month, sale-side fields by sale-date month.
type MonthRow struct {
	Month    string     `json:"month"` // "YYYY-MM"
	Bought   int        `json:"bought"`
	CostAll  SignedCost `json:"cost_all"`
	Sold     int        `json:"sold"`
	Revenue  float64    `json:"revenue"`
	Fees     float64    `json:"fees"`
	Shipping float64    `json:"shipping"`
	CostSold SignedCost `json:"cost_sold"`
	Profit   float64    `json:"profit"`
}

// ItemRow is one item of the per-item breakdown, sorted by profit descending.
type ItemRow struct {
	Item     string     `json:"item"`
	Bought   int        `json:"bought"`
	CostAll  SignedCost `json:"cost_all"`
	Sold     int        `json:"sold"`
	Revenue  float64    `json:"revenue"`
	Fees     float64    `json:"fees"`
	Shipping float64    `json:"shipping"`
	CostSold SignedCost `json:"cost_sold"`
	Profit   float64    `json:"profit"`
}

// RetailerRow is the purchase-side breakdown by store.
type RetailerRow struct {
	Retailer string     `json:"retailer"`
	Bought   int        `json:"bought"`
	CostAll  SignedCost `json:"cost_all"`
}

// MarketplaceRow is the sale-side breakdown by platform.
type MarketplaceRow struct {
	Marketplace string  `json:"marketplace"`
	Sold        int     `json:"sold"`
	Revenue     float64 `json:"revenue"`
	Fees        float64 `json:"fees"`
	Profit      float64 `json:"profit"`
}

// StatsResult is the full statistics payload for a date window and item filter.
type StatsResult struct {
	Summary      StatsSummary     `json:"summary"`
	Monthly      []MonthRow       `json:"monthly"`
	Items        []ItemRow        `json:"items"`
	Retailers    []RetailerRow    `json:"retailers"`
	Marketplaces []MarketplaceRow `json:"marketplaces"`

	// TopItems lists the first 10 item names by profit for charting.
	TopItems []string `json:"topItems"`
}

// LongestHold reports the oldest open position matching a filter.
type LongestHold struct {
	// Days is the whole-day age of the oldest open purchase, floored at 0.
	// When Matched is 0 there was nothing to measure and Days is 0 too.
	Days    int `json:"days"`
	Matched int `json:"matched"`
}
