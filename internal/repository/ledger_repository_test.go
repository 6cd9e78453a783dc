package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/allyounowbud/onetrack/internal/cache"
	"github.com/allyounowbud/onetrack/internal/grid"
	"github.com/allyounowbud/onetrack/internal/models"
	"github.com/allyounowbud/onetrack/internal/storage"
)

// fakeStore is an in-memory TableStore that records calls.
type fakeStore struct {
	rows      map[string][][]any
	reads     int
	updates   []updateCall
	appends   [][]any
	deletions [][]int
}

type updateCall struct {
	table    string
	position int
	startCol int
	values   []any
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string][][]any)}
}

func (f *fakeStore) ReadTable(_ context.Context, t storage.Table) (*grid.Snapshot, error) {
	f.reads++
	return &grid.Snapshot{Rows: f.rows[t.Name], HeaderRow: t.HeaderRow}, nil
}

func (f *fakeStore) AppendRow(_ context.Context, t storage.Table, row []any) error {
	f.appends = append(f.appends, row)
	f.rows[t.Name] = append(f.rows[t.Name], row)
	return nil
}

func (f *fakeStore) UpdateRow(_ context.Context, t storage.Table, position, startCol int, values []any) error {
	f.updates = append(f.updates, updateCall{table: t.Name, position: position, startCol: startCol, values: values})
	return nil
}

func (f *fakeStore) DeleteRows(_ context.Context, _ storage.Table, positions []int) error {
	f.deletions = append(f.deletions, positions)
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestRepo(store *fakeStore) (LedgerRepository, *cache.SnapshotCache) {
	c := cache.New(30 * time.Second)
	return NewLedgerRepository(store, c, testLogger()), c
}

func TestEntriesMapsRowsAndPositions(t *testing.T) {
	store := newFakeStore()
	store.rows[storage.OrderBook.Name] = [][]any{
		{"2024-01-02", "Widget", -10.0, "Target", 20.0, "2024-01-10", "eBay", 0.1, 2.0},
		{"", "   ", -5.0, "Walmart"}, // blank item: excluded
		{"2024-02-01", "Plush", "-12.5"},
	}

	repo, _ := newTestRepo(store)
	entries, err := repo.Entries(context.Background())
	if err != nil {
		t.Fatalf("Entries returned error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries (blank item dropped), got %d", len(entries))
	}

	first := entries[0]
	if first.Row != 3 {
		t.Errorf("Expected first data row at position 3 (header row 2), got %d", first.Row)
	}
	if first.Item != "Widget" || first.BuyPrice != -10 || first.SellPrice != 20 {
		t.Errorf("First entry mapped wrong: %+v", first)
	}
	if first.FeesPct != 0.1 || first.Shipping != 2 {
		t.Errorf("Sale-side numbers mapped wrong: %+v", first)
	}

	second := entries[1]
	if second.Row != 5 {
		t.Errorf("Expected skipped row to keep later positions intact, got %d", second.Row)
	}
	if second.BuyPrice != -12.5 {
		t.Errorf("Expected string price coerced to -12.5, got %v", second.BuyPrice)
	}
	if second.SellPrice != 0 || second.Shipping != 0 {
		t.Errorf("Missing cells must coerce to 0: %+v", second)
	}
}

func TestEntriesUsesCacheUntilMutation(t *testing.T) {
	store := newFakeStore()
	store.rows[storage.OrderBook.Name] = [][]any{
		{"2024-01-02", "Widget", -10.0},
	}
	repo, _ := newTestRepo(store)
	ctx := context.Background()

	if _, err := repo.Entries(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Entries(ctx); err != nil {
		t.Fatal(err)
	}
	if store.reads != 1 {
		t.Fatalf("Expected second read served from cache, store saw %d reads", store.reads)
	}

	if err := repo.Append(ctx, models.LedgerEntry{Item: "Plush", BuyPrice: -5}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Entries(ctx); err != nil {
		t.Fatal(err)
	}
	if store.reads != 2 {
		t.Fatalf("Expected mutation to force a refetch, store saw %d reads", store.reads)
	}
}

func TestAppendWritesFullWidthRowWithBlankPL(t *testing.T) {
	store := newFakeStore()
	repo, _ := newTestRepo(store)

	err := repo.Append(context.Background(), models.LedgerEntry{
		OrderDate:  "2024-03-01",
		Item:       "Widget",
		BuyPrice:   -10,
		BoughtFrom: "Target",
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(store.appends) != 1 {
		t.Fatalf("Expected one append, got %d", len(store.appends))
	}
	row := store.appends[0]
	if len(row) != storage.OrderBook.Width() {
		t.Fatalf("Expected a %d-wide row, got %d", storage.OrderBook.Width(), len(row))
	}
	if row[storage.OBColPL-1] != "" {
		t.Errorf("P/L column must be written blank, got %v", row[storage.OBColPL-1])
	}
}

func TestMarkSoldWritesOnlySaleCells(t *testing.T) {
	store := newFakeStore()
	repo, _ := newTestRepo(store)

	err := repo.MarkSold(context.Background(), 7, models.SaleDetails{
		SellPrice:    50,
		SaleDate:     "2024-01-10",
		SaleLocation: "eBay",
		FeesPct:      0.1,
		Shipping:     2,
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(store.updates) != 1 {
		t.Fatalf("Expected one update, got %d", len(store.updates))
	}
	u := store.updates[0]
	if u.position != 7 {
		t.Errorf("Expected write at position 7, got %d", u.position)
	}
	if u.startCol != storage.OBColSellPrice {
		t.Errorf("Expected write to start at the sell price column, got %d", u.startCol)
	}
	if len(u.values) != 5 {
		t.Errorf("Expected exactly the 5 sale-side cells, got %d", len(u.values))
	}
}

func TestDeleteForwardsPositionsInOneCall(t *testing.T) {
	store := newFakeStore()
	repo, _ := newTestRepo(store)

	if err := repo.Delete(context.Background(), []int{9, 3, 5}); err != nil {
		t.Fatal(err)
	}
	if len(store.deletions) != 1 {
		t.Fatalf("Expected one batched deletion, got %d", len(store.deletions))
	}
	if err := repo.Delete(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if len(store.deletions) != 1 {
		t.Error("Expected empty delete to be a no-op")
	}
}
