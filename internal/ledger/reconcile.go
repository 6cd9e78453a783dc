// Package ledger reconciles the flat Order Book into open and closed
// positions and builds the per-item running totals every aggregate needs.
package ledger

import (
	"github.com/allyounowbud/onetrack/internal/grid"
	"github.com/allyounowbud/onetrack/internal/models"
)

// ItemAggregate is the single-pass rollup for one item. Cost fields keep
// the ledger's negative sign.
type ItemAggregate struct {
	Item      string
	BoughtQty int
	SoldQty   int

	// CostAll is the signed cost of every purchase of the item.
	CostAll models.SignedCost

	// CostSold is the signed cost of just the sold units.
	CostSold models.SignedCost
}

// OnHand is bought minus sold, floored at 0. A ledger can record more sales
// than purchases for an item; that anomaly is tolerated, not an error.
func (a *ItemAggregate) OnHand() int {
	if a.BoughtQty <= a.SoldQty {
		return 0
	}
	return a.BoughtQty - a.SoldQty
}

// OnHandCost is the signed cost still tied up in unsold units.
func (a *ItemAggregate) OnHandCost() models.SignedCost {
	return a.CostAll - a.CostSold
}

// Book is the reconciled view of the ledger.
type Book struct {
	// Open holds every unsold entry (sell price 0 or absent).
	Open []models.LedgerEntry

	// Closed holds every sold entry with a parseable sale date.
	Closed []models.LedgerEntry

	byItem map[string]*ItemAggregate
	order  []string
}

// Reconcile partitions entries and accumulates the per-item totals in one
// pass. Every entry counts as a purchase unconditionally; only entries with
// a positive sell price also count as a sale.
func Reconcile(entries []models.LedgerEntry) *Book {
	b := &Book{byItem: make(map[string]*ItemAggregate)}

	for _, e := range entries {
		agg, ok := b.byItem[e.Item]
		if !ok {
			agg = &ItemAggregate{Item: e.Item}
			b.byItem[e.Item] = agg
			b.order = append(b.order, e.Item)
		}

		agg.BoughtQty++
		agg.CostAll += e.BuyPrice

		if e.Sold() {
			agg.SoldQty++
			agg.CostSold += e.BuyPrice
			if _, ok := grid.ParseDate(e.SaleDate); ok {
				b.Closed = append(b.Closed, e)
			}
		} else {
			b.Open = append(b.Open, e)
		}
	}
	return b
}

// Aggregates returns the per-item rollups in ledger encounter order.
func (b *Book) Aggregates() []*ItemAggregate {
	out := make([]*ItemAggregate, 0, len(b.order))
	for _, item := range b.order {
		out = append(out, b.byItem[item])
	}
	return out
}

// Aggregate returns the rollup for one item, or nil when the ledger never
// mentions it.
func (b *Book) Aggregate(item string) *ItemAggregate {
	return b.byItem[item]
}
