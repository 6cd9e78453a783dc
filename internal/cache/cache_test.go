package cache

import (
	"testing"
	"time"

	"github.com/allyounowbud/onetrack/internal/grid"
)

func snapshot(marker string) *grid.Snapshot {
	return &grid.Snapshot{Headers: []string{marker}, HeaderRow: 1}
}

func TestGetWithinTTLReturnsSameSnapshot(t *testing.T) {
	c := New(30 * time.Second)
	now := time.Now()
	c.now = func() time.Time { return now }

	s := snapshot("order book")
	c.Set("Order Book", s)

	got := c.Get("Order Book")
	if got != s {
		t.Fatal("Expected the identical snapshot back within the TTL")
	}

	// 29s later: still fresh, still the same pointer (no revalidation).
	now = now.Add(29 * time.Second)
	if got := c.Get("Order Book"); got != s {
		t.Error("Expected a cache hit just inside the TTL")
	}
}

func TestEntryExpiresAfterTTL(t *testing.T) {
	c := New(30 * time.Second)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("Items", snapshot("items"))

	now = now.Add(31 * time.Second)
	if got := c.Get("Items"); got != nil {
		t.Error("Expected expired entry to read as absent")
	}
}

func TestClearDropsEveryTable(t *testing.T) {
	c := New(30 * time.Second)
	c.Set("Order Book", snapshot("ob"))
	c.Set("Items", snapshot("items"))

	c.Clear()

	if c.Get("Order Book") != nil || c.Get("Items") != nil {
		t.Error("Expected Clear to drop all entries, not just one table")
	}
}

func TestMissIsNil(t *testing.T) {
	c := New(0)
	if got := c.Get("Retailers"); got != nil {
		t.Errorf("Expected nil on miss, got %v", got)
	}
}
