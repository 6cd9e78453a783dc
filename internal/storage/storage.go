// Package storage provides table store implementations for the ledger tabs.
// The primary backend is a Google Spreadsheet; a Postgres backend offers the
// same grid semantics for installs that outgrow Sheets.
package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/allyounowbud/onetrack/internal/grid"
)

// Column binds one grid column to its spreadsheet header and its column
// name in the relational backend. Columns are addressed 1-based, like
// spreadsheet rows.
type Column struct {
	Title string
	DB    string
}

// Table describes the fixed layout of one tab. Layouts are compiled in,
// not configurable at runtime.
type Table struct {
	// Name is the tab title in the spreadsheet.
	Name string

	// DBTable is the table name in the relational backend.
	DBTable string

	// HeaderRow is the 1-based row holding the column headers. Data
	// starts on the next row.
	HeaderRow int

	Columns []Column
}

// Width returns the number of columns in the layout.
func (t Table) Width() int { return len(t.Columns) }

// Order Book column positions (1-based). Column J holds a sheet formula and
// is always written blank.
const (
	OBColOrderDate   = 1
	OBColItem        = 2
	OBColBuyPrice    = 3
	OBColRetailer    = 4
	OBColSellPrice   = 5
	OBColSaleDate    = 6
	OBColMarketplace = 7
	OBColFeesPct     = 8
	OBColShipping    = 9
	OBColPL          = 10
)

// Reference tab column positions.
const (
	ItemsColName   = 1
	ItemsColMarket = 2

	RetailersColName = 1

	MarketplacesColName = 1
	MarketplacesColFee  = 2
)

// OrderBook is the ledger tab: one row per purchase, sale cells filled in
// when the unit sells. Headers sit on row 2.
var OrderBook = Table{
	Name:      "Order Book",
	DBTable:   "order_book",
	HeaderRow: 2,
	Columns: []Column{
		{Title: "Order Date", DB: "order_date"},
		{Title: "Item", DB: "item"},
		{Title: "Buy Price", DB: "buy_price"},
		{Title: "Retailer", DB: "retailer"},
		{Title: "Sell Price", DB: "sell_price"},
		{Title: "Sale Date", DB: "sale_date"},
		{Title: "Marketplace", DB: "marketplace"},
		{Title: "Fees %", DB: "fees_pct"},
		{Title: "Shipping", DB: "shipping"},
		{Title: "P/L", DB: "profit_loss"},
	},
}

// Items is the item reference tab with current market values.
var Items = Table{
	Name:      "Items",
	DBTable:   "items",
	HeaderRow: 1,
	Columns: []Column{
		{Title: "Item", DB: "name"},
		{Title: "Market Value", DB: "market_value"},
	},
}

// Retailers is the store reference tab.
var Retailers = Table{
	Name:      "Retailers",
	DBTable:   "retailers",
	HeaderRow: 1,
	Columns: []Column{
		{Title: "Retailer", DB: "name"},
	},
}

// Marketplaces is the platform reference tab with fee fractions.
var Marketplaces = Table{
	Name:      "Marketplaces",
	DBTable:   "marketplaces",
	HeaderRow: 1,
	Columns: []Column{
		{Title: "Marketplace", DB: "name"},
		{Title: "Fee %", DB: "fee_pct"},
	},
}

// TableStore is the backing-store contract. Positions are 1-based grid rows
// (header rows included), the only identity a row has. Implementations must
// not retry; any I/O failure propagates to the caller as-is.
type TableStore interface {
	// ReadTable fetches the whole tab and splits headers from data rows.
	ReadTable(ctx context.Context, t Table) (*grid.Snapshot, error)

	// AppendRow adds one row after the last data row.
	AppendRow(ctx context.Context, t Table, row []any) error

	// UpdateRow writes values into the row at position, starting at the
	// 1-based column startCol. Cells outside the written range keep
	// their current contents.
	UpdateRow(ctx context.Context, t Table, position, startCol int, values []any) error

	// DeleteRows removes the rows at the given positions in one batched
	// structural operation. Positions refer to the grid as it was read;
	// remaining rows shift up afterwards.
	DeleteRows(ctx context.Context, t Table, positions []int) error
}

// dedupeDescending returns the unique positions sorted largest first, so
// deletions can proceed from the bottom up without invalidating each other.
func dedupeDescending(positions []int) []int {
	seen := make(map[int]struct{}, len(positions))
	out := make([]int, 0, len(positions))
	for _, p := range positions {
		if p <= 0 {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// colToA1 converts a 1-based column number to its A1 letter form.
func colToA1(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}
	return s
}

// rowRangeA1 builds an A1 range covering columns c1..c2 of a single row.
func rowRangeA1(tab string, row, c1, c2 int) string {
	return fmt.Sprintf("%s!%s%d:%s%d", tab, colToA1(c1), row, colToA1(c2), row)
}
