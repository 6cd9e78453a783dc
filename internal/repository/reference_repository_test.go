package repository

import (
	"context"
	"testing"
	"time"

	"github.com/allyounowbud/onetrack/internal/cache"
	"github.com/allyounowbud/onetrack/internal/models"
	"github.com/allyounowbud/onetrack/internal/storage"
)

func TestItemsMapping(t *testing.T) {
	store := newFakeStore()
	store.rows[storage.Items.Name] = [][]any{
		{"Widget", 25.0},
		{""},
		{"Plush", "19.99"},
		{"Poster"}, // no market value cell
	}

	c := cache.New(30 * time.Second)
	repo := NewReferenceRepository(store, c, testLogger())

	items, err := repo.Items(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	if items[0].Row != 2 {
		t.Errorf("Expected first item on row 2 (header row 1), got %d", items[0].Row)
	}
	if items[1].Name != "Plush" || items[1].Market != 19.99 {
		t.Errorf("Expected string market value coerced, got %+v", items[1])
	}
	if items[2].Market != 0 {
		t.Errorf("Expected missing market value to read 0, got %v", items[2].Market)
	}
}

func TestReferenceWriteClearsWholeCache(t *testing.T) {
	store := newFakeStore()
	store.rows[storage.OrderBook.Name] = [][]any{{"2024-01-02", "Widget", -10.0}}
	store.rows[storage.Marketplaces.Name] = [][]any{{"eBay", 0.13}}

	c := cache.New(30 * time.Second)
	ledger := NewLedgerRepository(store, c, testLogger())
	refs := NewReferenceRepository(store, c, testLogger())
	ctx := context.Background()

	if _, err := ledger.Entries(ctx); err != nil {
		t.Fatal(err)
	}
	reads := store.reads

	// Writing one tab must invalidate every cached tab, not just its own.
	if err := refs.UpdateMarketplace(ctx, models.Marketplace{Row: 2, Name: "eBay", FeePct: 0.12}); err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.Entries(ctx); err != nil {
		t.Fatal(err)
	}
	if store.reads != reads+1 {
		t.Errorf("Expected order book refetch after marketplace write, reads went %d -> %d", reads, store.reads)
	}
}
