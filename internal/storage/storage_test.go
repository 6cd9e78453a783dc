package storage

import (
	"reflect"
	"testing"
)

func TestColToA1(t *testing.T) {
	tests := []struct {
		col      int
		expected string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{702, "ZZ"},
	}

	for _, tt := range tests {
		if got := colToA1(tt.col); got != tt.expected {
			t.Errorf("colToA1(%d): expected %q, got %q", tt.col, tt.expected, got)
		}
	}
}

func TestRowRangeA1(t *testing.T) {
	got := rowRangeA1("Order Book", 17, 5, 9)
	if got != "Order Book!E17:I17" {
		t.Errorf("Expected 'Order Book!E17:I17', got %q", got)
	}
}

func TestDedupeDescending(t *testing.T) {
	got := dedupeDescending([]int{3, 9, 3, 0, 5, -2, 9})
	expected := []int{9, 5, 3}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestLayoutWidths(t *testing.T) {
	if OrderBook.Width() != OBColPL {
		t.Errorf("Order Book layout must be %d columns wide, got %d", OBColPL, OrderBook.Width())
	}
	if Items.Width() != 2 || Marketplaces.Width() != 2 || Retailers.Width() != 1 {
		t.Error("Reference tab layouts drifted from their fixed shapes")
	}
}
