package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/allyounowbud/onetrack/internal/cache"
	"github.com/allyounowbud/onetrack/internal/ledger"
	"github.com/allyounowbud/onetrack/internal/models"
	"github.com/allyounowbud/onetrack/internal/repository"
	"github.com/allyounowbud/onetrack/internal/storage"
)

// OrderBookService exposes the ledger read views and every ledger mutation.
type OrderBookService struct {
	entries repository.LedgerRepository
	cache   *cache.SnapshotCache
	notify  notifiers
}

// NewOrderBookService creates an order book service. Notifiers are called
// after each successful mutation.
func NewOrderBookService(entries repository.LedgerRepository, c *cache.SnapshotCache, ns ...Notifier) *OrderBookService {
	return &OrderBookService{entries: entries, cache: c, notify: notifiers(ns)}
}

// OpenPurchases lists every unsold row shaped for the quick-pick dropdown.
func (s *OrderBookService) OpenPurchases(ctx context.Context) ([]models.OpenPurchase, error) {
	entries, err := s.entries.Entries(ctx)
	if err != nil {
		return nil, err
	}

	book := ledger.Reconcile(entries)
	out := make([]models.OpenPurchase, 0, len(book.Open))
	for _, e := range book.Open {
		buy := strconv.FormatFloat(e.BuyPrice, 'f', -1, 64)
		out = append(out, models.OpenPurchase{
			Row:        e.Row,
			Label:      fmt.Sprintf("%s • %s • $%s • %s", e.OrderDate, e.Item, buy, e.BoughtFrom),
			Item:       e.Item,
			BuyPrice:   e.BuyPrice,
			OrderDate:  e.OrderDate,
			BoughtFrom: e.BoughtFrom,
		})
	}
	return out, nil
}

// Editable returns the full typed ledger for the editing grid.
func (s *OrderBookService) Editable(ctx context.Context) ([]models.LedgerEntry, error) {
	return s.entries.Entries(ctx)
}

// QuickAdd appends one purchase row.
func (s *OrderBookService) QuickAdd(ctx context.Context, e models.LedgerEntry) error {
	if err := s.entries.Append(ctx, e); err != nil {
		return err
	}
	s.notify.mutated(storage.OrderBook.Name, "append", 1)
	return nil
}

// MarkSold writes the sale cells of one open position. Positions are
// fragile references, so the target is re-resolved against a fresh read
// first: the row must still exist and must still be unsold.
func (s *OrderBookService) MarkSold(ctx context.Context, position int, sale models.SaleDetails) error {
	// Bypass the TTL cache; a snapshot up to 30s old is exactly the
	// staleness this check exists to catch.
	s.cache.Clear()
	entries, err := s.entries.Entries(ctx)
	if err != nil {
		return err
	}

	var target *models.LedgerEntry
	for i := range entries {
		if entries[i].Row == position {
			target = &entries[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no order book row at position %d", position)
	}
	if target.Sold() {
		return fmt.Errorf("row %d (%s) is already marked sold", position, target.Item)
	}

	if err := s.entries.MarkSold(ctx, position, sale); err != nil {
		return err
	}
	s.notify.mutated(storage.OrderBook.Name, "mark_sold", 1)
	return nil
}

// UpdateRows rewrites each given row in place, sequentially.
func (s *OrderBookService) UpdateRows(ctx context.Context, rows []models.LedgerEntry) (int, error) {
	for _, e := range rows {
		if e.Row <= storage.OrderBook.HeaderRow {
			return 0, fmt.Errorf("invalid order book position %d", e.Row)
		}
		if err := s.entries.Update(ctx, e); err != nil {
			return 0, err
		}
	}
	if len(rows) > 0 {
		s.notify.mutated(storage.OrderBook.Name, "update", len(rows))
	}
	return len(rows), nil
}

// DeleteRows removes the given positions in one batched operation.
func (s *OrderBookService) DeleteRows(ctx context.Context, positions []int) (int, error) {
	clean := make([]int, 0, len(positions))
	for _, p := range positions {
		if p > storage.OrderBook.HeaderRow {
			clean = append(clean, p)
		}
	}
	if len(clean) == 0 {
		return 0, nil
	}
	if err := s.entries.Delete(ctx, clean); err != nil {
		return 0, err
	}
	s.notify.mutated(storage.OrderBook.Name, "delete", len(clean))
	return len(clean), nil
}
