package repository

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/allyounowbud/onetrack/internal/cache"
	"github.com/allyounowbud/onetrack/internal/grid"
	"github.com/allyounowbud/onetrack/internal/models"
	"github.com/allyounowbud/onetrack/internal/storage"
)

// LedgerRepository reads and mutates the Order Book tab.
type LedgerRepository interface {
	// Entries returns every ledger row with a non-empty item name, in
	// sheet order, each carrying its 1-based row position.
	Entries(ctx context.Context) ([]models.LedgerEntry, error)

	// Append adds one purchase row at the bottom of the tab.
	Append(ctx context.Context, e models.LedgerEntry) error

	// Update rewrites the full width of the row at e.Row.
	Update(ctx context.Context, e models.LedgerEntry) error

	// MarkSold writes only the sale-side cells of the row at position,
	// leaving the purchase cells untouched.
	MarkSold(ctx context.Context, position int, sale models.SaleDetails) error

	// Delete removes the rows at the given positions in one batched
	// operation and shifts everything below them up.
	Delete(ctx context.Context, positions []int) error
}

type tableLedgerRepository struct {
	store storage.TableStore
	cache *cache.SnapshotCache
	log   *logrus.Logger
}

// NewLedgerRepository creates a ledger repository over a table store.
func NewLedgerRepository(store storage.TableStore, c *cache.SnapshotCache, log *logrus.Logger) LedgerRepository {
	return &tableLedgerRepository{store: store, cache: c, log: log}
}

func (r *tableLedgerRepository) Entries(ctx context.Context) ([]models.LedgerEntry, error) {
	snap, err := readTable(ctx, r.store, r.cache, storage.OrderBook)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LedgerEntry, 0, len(snap.Rows))
	for i, row := range snap.Rows {
		item := grid.CellString(row, storage.OBColItem)
		if strings.TrimSpace(item) == "" {
			// A row with no item name never reaches an aggregate.
			continue
		}
		entries = append(entries, models.LedgerEntry{
			Row:          snap.Position(i),
			OrderDate:    grid.CellString(row, storage.OBColOrderDate),
			Item:         item,
			BuyPrice:     grid.CellNumber(row, storage.OBColBuyPrice),
			BoughtFrom:   grid.CellString(row, storage.OBColRetailer),
			SellPrice:    grid.CellNumber(row, storage.OBColSellPrice),
			SaleDate:     grid.CellString(row, storage.OBColSaleDate),
			SaleLocation: grid.CellString(row, storage.OBColMarketplace),
			FeesPct:      grid.CellNumber(row, storage.OBColFeesPct),
			Shipping:     grid.CellNumber(row, storage.OBColShipping),
		})
	}
	return entries, nil
}

// ledgerRow lays an entry out in Order Book column order. The P/L column is
// always written blank; a sheet formula owns it.
func ledgerRow(e models.LedgerEntry) []any {
	return []any{
		e.OrderDate,
		e.Item,
		e.BuyPrice,
		e.BoughtFrom,
		e.SellPrice,
		e.SaleDate,
		e.SaleLocation,
		e.FeesPct,
		e.Shipping,
		"",
	}
}

func (r *tableLedgerRepository) Append(ctx context.Context, e models.LedgerEntry) error {
	if err := r.store.AppendRow(ctx, storage.OrderBook, ledgerRow(e)); err != nil {
		return err
	}
	r.cache.Clear()
	r.log.WithField("item", e.Item).Info("Appended order book row")
	return nil
}

func (r *tableLedgerRepository) Update(ctx context.Context, e models.LedgerEntry) error {
	if err := r.store.UpdateRow(ctx, storage.OrderBook, e.Row, 1, ledgerRow(e)); err != nil {
		return err
	}
	r.cache.Clear()
	r.log.WithField("row", e.Row).Info("Updated order book row")
	return nil
}

func (r *tableLedgerRepository) MarkSold(ctx context.Context, position int, sale models.SaleDetails) error {
	values := []any{
		sale.SellPrice,
		sale.SaleDate,
		sale.SaleLocation,
		sale.FeesPct,
		sale.Shipping,
	}
	if err := r.store.UpdateRow(ctx, storage.OrderBook, position, storage.OBColSellPrice, values); err != nil {
		return err
	}
	r.cache.Clear()
	r.log.WithField("row", position).Info("Marked order book row as sold")
	return nil
}

func (r *tableLedgerRepository) Delete(ctx context.Context, positions []int) error {
	if len(positions) == 0 {
		return nil
	}
	if err := r.store.DeleteRows(ctx, storage.OrderBook, positions); err != nil {
		return err
	}
	r.cache.Clear()
	r.log.WithField("rows", len(positions)).Info("Deleted order book rows")
	return nil
}
