package service

import (
	"context"
	"testing"
	"time"

	"github.com/allyounowbud/onetrack/internal/models"
)

func TestLongestHold(t *testing.T) {
	entries := &fakeLedgerRepo{entries: []models.LedgerEntry{
		{Row: 3, Item: "Charizard UPC", OrderDate: "2026-01-01", BuyPrice: -120},
		{Row: 4, Item: "Charizard UPC", OrderDate: "2026-01-15", BuyPrice: -110},
		// Sold rows never count toward holding age.
		{Row: 5, Item: "Charizard UPC", OrderDate: "2025-06-01", BuyPrice: -100,
			SellPrice: 200, SaleDate: "2025-07-01"},
	}}
	s := NewHoldingService(entries)
	s.now = func() time.Time { return time.Date(2026, 1, 31, 18, 0, 0, 0, time.UTC) }

	tests := []struct {
		name    string
		filter  string
		days    int
		matched int
	}{
		{"matching filter uses oldest open row", "charizard", 30, 2},
		{"empty filter matches everything", "", 30, 2},
		{"no match", "pikachu", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.LongestHold(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("LongestHold: %v", err)
			}
			if got.Days != tt.days || got.Matched != tt.matched {
				t.Errorf("got %+v, want days=%d matched=%d", got, tt.days, tt.matched)
			}
		})
	}
}

func TestLongestHoldUndatedOpenRows(t *testing.T) {
	entries := &fakeLedgerRepo{entries: []models.LedgerEntry{
		{Row: 3, Item: "Mystery", OrderDate: "no date", BuyPrice: -5},
	}}
	s := NewHoldingService(entries)
	s.now = func() time.Time { return time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC) }

	got, err := s.LongestHold(context.Background(), "")
	if err != nil {
		t.Fatalf("LongestHold: %v", err)
	}
	// The row matches but its age cannot be measured.
	if got.Days != 0 || got.Matched != 1 {
		t.Errorf("got %+v, want days=0 matched=1", got)
	}
}
