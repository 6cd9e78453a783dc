package models

// Item is a row of the Items reference tab.
type Item struct {
	// Row is the 1-based spreadsheet row.
	Row int `json:"row"`

	// Name is the item name, unique and case-sensitive as stored.
	Name string `json:"name"`

	// Market is the current market value of one unit.
	Market float64 `json:"market"`
}

// Retailer is a row of the Retailers reference tab.
type Retailer struct {
	Row  int    `json:"row"`
	Name string `json:"name"`
}

// Marketplace is a row of the Marketplaces reference tab.
type Marketplace struct {
	Row  int    `json:"row"`
	Name string `json:"name"`

	// FeePct is stored normalized to a fraction in [0,1]. Writers divide
	// inputs greater than 1 by 100, so a genuine fee above 100% cannot be
	// represented.
	FeePct float64 `json:"fee_pct"`
}

// InitModel is the names-only reference payload for form dropdowns.
type InitModel struct {
	Items                []string      `json:"items"`
	Retailers            []string      `json:"retailers"`
	Marketplaces         []string      `json:"marketplaces"`
	MarketplacesWithFees []Marketplace `json:"marketplacesWithFees"`
}

// DatabaseFull is the full reference-table dump for the maintenance grid.
type DatabaseFull struct {
	Items        []Item        `json:"items"`
	Retailers    []Retailer    `json:"retailers"`
	Marketplaces []Marketplace `json:"marketplaces"`
}
