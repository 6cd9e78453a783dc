// Package models defines the domain records mapped from the spreadsheet tabs.
package models

// SignedCost is a monetary amount that carries the ledger's sign convention:
// money spent is negative, so profit math adds costs instead of subtracting
// them. Keep the polarity; flipping it inverts every total downstream.
type SignedCost = float64

// LedgerEntry is one Order Book row: a purchase event, optionally carrying
// the sale of the same unit in the same row. Dates are kept as the raw cell
// strings; a blank or unparsable date means "no date".
type LedgerEntry struct {
	// Row is the 1-based spreadsheet row and the only identity the entry
	// has. Deleting rows shifts every position after them.
	Row int `json:"row"`

	// OrderDate is the purchase date as stored (may be empty).
	OrderDate string `json:"order_date"`

	// Item is the item name, matched against the Items reference tab.
	Item string `json:"item"`

	// BuyPrice is the purchase cost, stored negative.
	BuyPrice SignedCost `json:"buy_price"`

	// BoughtFrom is the retailer name.
	BoughtFrom string `json:"bought_from"`

	// SellPrice is the sale amount; 0 or absent means unsold.
	SellPrice float64 `json:"sell_price"`

	// SaleDate is the sale date as stored (may be empty).
	SaleDate string `json:"sale_date"`

	// SaleLocation is the marketplace name; empty groups as "Unknown/Other".
	SaleLocation string `json:"sale_location"`

	// FeesPct is the marketplace fee as a fraction of the sell price.
	FeesPct float64 `json:"fees_pct"`

	// Shipping is the shipping cost paid by the seller, non-negative.
	Shipping float64 `json:"shipping"`
}

// Sold reports whether the row carries a recorded sale.
func (e LedgerEntry) Sold() bool { return e.SellPrice > 0 }

// OpenPurchase is an unsold ledger row shaped for the quick-pick dropdown.
type OpenPurchase struct {
	Row        int     `json:"row"`
	Label      string  `json:"label"`
	Item       string  `json:"item"`
	BuyPrice   float64 `json:"buy_price"`
	OrderDate  string  `json:"order_date"`
	BoughtFrom string  `json:"bought_from"`
}

// SaleDetails carries the sale-side cells written by mark-as-sold.
type SaleDetails struct {
	SellPrice    float64 `json:"sell_price"`
	SaleDate     string  `json:"sale_date"`
	SaleLocation string  `json:"sale_location"`
	FeesPct      float64 `json:"fees_pct"`
	Shipping     float64 `json:"shipping"`
}
