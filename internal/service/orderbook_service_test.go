package service

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/allyounowbud/onetrack/internal/cache"
	"github.com/allyounowbud/onetrack/internal/models"
)

func TestOpenPurchasesLabels(t *testing.T) {
	entries := &fakeLedgerRepo{entries: []models.LedgerEntry{
		{Row: 3, Item: "Booster Box", OrderDate: "2026-01-05", BuyPrice: -119.99, BoughtFrom: "Costco"},
		{Row: 4, Item: "Booster Box", OrderDate: "2026-01-06", BuyPrice: -120,
			SellPrice: 150, SaleDate: "2026-01-20"},
	}}
	s := NewOrderBookService(entries, cache.New(0))

	open, err := s.OpenPurchases(context.Background())
	if err != nil {
		t.Fatalf("OpenPurchases: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("expected 1 open purchase, got %d", len(open))
	}
	want := "2026-01-05 • Booster Box • $-119.99 • Costco"
	if open[0].Label != want {
		t.Errorf("label = %q, want %q", open[0].Label, want)
	}
	if open[0].Row != 3 {
		t.Errorf("row = %d, want 3", open[0].Row)
	}
}

func TestMarkSoldValidatesTarget(t *testing.T) {
	entries := &fakeLedgerRepo{entries: []models.LedgerEntry{
		{Row: 3, Item: "Open Box", BuyPrice: -10},
		{Row: 4, Item: "Closed Box", BuyPrice: -10, SellPrice: 20, SaleDate: "2026-01-02"},
	}}
	n := &recordNotifier{}
	s := NewOrderBookService(entries, cache.New(0), n)
	sale := models.SaleDetails{SellPrice: 25, SaleDate: "2026-02-01", SaleLocation: "eBay", FeesPct: 0.1}

	if err := s.MarkSold(context.Background(), 9, sale); err == nil {
		t.Error("expected error for missing position")
	} else if !strings.Contains(err.Error(), "no order book row") {
		t.Errorf("unexpected error: %v", err)
	}

	if err := s.MarkSold(context.Background(), 4, sale); err == nil {
		t.Error("expected error for already-sold row")
	} else if !strings.Contains(err.Error(), "already marked sold") {
		t.Errorf("unexpected error: %v", err)
	}

	if len(entries.marked) != 0 {
		t.Fatalf("no write should have happened, got %v", entries.marked)
	}

	if err := s.MarkSold(context.Background(), 3, sale); err != nil {
		t.Fatalf("MarkSold: %v", err)
	}
	if !reflect.DeepEqual(entries.marked, []int{3}) {
		t.Errorf("marked = %v, want [3]", entries.marked)
	}
	if !reflect.DeepEqual(n.events, []string{"Order Book/mark_sold/1"}) {
		t.Errorf("events = %v", n.events)
	}

	// Second attempt on the now-sold row fails.
	if err := s.MarkSold(context.Background(), 3, sale); err == nil {
		t.Error("expected error on repeated mark")
	}
}

func TestQuickAddNotifies(t *testing.T) {
	entries := &fakeLedgerRepo{}
	n := &recordNotifier{}
	s := NewOrderBookService(entries, cache.New(0), n)

	e := models.LedgerEntry{OrderDate: "2026-01-05", Item: "Tin", BuyPrice: -15, BoughtFrom: "Target"}
	if err := s.QuickAdd(context.Background(), e); err != nil {
		t.Fatalf("QuickAdd: %v", err)
	}
	if len(entries.appended) != 1 {
		t.Fatalf("appended = %v", entries.appended)
	}
	if !reflect.DeepEqual(n.events, []string{"Order Book/append/1"}) {
		t.Errorf("events = %v", n.events)
	}
}

func TestUpdateRowsRejectsHeaderPositions(t *testing.T) {
	entries := &fakeLedgerRepo{}
	s := NewOrderBookService(entries, cache.New(0))

	_, err := s.UpdateRows(context.Background(), []models.LedgerEntry{{Row: 2, Item: "x"}})
	if err == nil {
		t.Fatal("expected error for header-row position")
	}
	if len(entries.updated) != 0 {
		t.Errorf("no updates expected, got %v", entries.updated)
	}
}

func TestDeleteRowsBatchesAndFilters(t *testing.T) {
	entries := &fakeLedgerRepo{}
	n := &recordNotifier{}
	s := NewOrderBookService(entries, cache.New(0), n)

	count, err := s.DeleteRows(context.Background(), []int{7, 1, 3, 0})
	if err != nil {
		t.Fatalf("DeleteRows: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if len(entries.deleted) != 1 {
		t.Fatalf("expected one batched delete, got %d", len(entries.deleted))
	}
	if !reflect.DeepEqual(entries.deleted[0], []int{7, 3}) {
		t.Errorf("positions = %v, want [7 3]", entries.deleted[0])
	}
	if !reflect.DeepEqual(n.events, []string{"Order Book/delete/2"}) {
		t.Errorf("events = %v", n.events)
	}

	// Nothing valid means no store call and no notification.
	count, err = s.DeleteRows(context.Background(), []int{1, 2})
	if err != nil || count != 0 {
		t.Fatalf("count = %d, err = %v", count, err)
	}
	if len(entries.deleted) != 1 {
		t.Errorf("unexpected extra delete: %v", entries.deleted)
	}
}
