// Package repository maps the raw tab grids into typed records and performs
// the positional writes behind every mutation. All reads go through the
// shared snapshot cache; every successful write clears it wholesale.
package repository

import (
	"context"

	"github.com/allyounowbud/onetrack/internal/cache"
	"github.com/allyounowbud/onetrack/internal/grid"
	"github.com/allyounowbud/onetrack/internal/storage"
)

// readTable returns the cached snapshot for a tab, fetching and memoizing
// on a miss. Read failures propagate; there is no negative caching.
func readTable(ctx context.Context, store storage.TableStore, c *cache.SnapshotCache, t storage.Table) (*grid.Snapshot, error) {
	if hit := c.Get(t.Name); hit != nil {
		return hit, nil
	}
	snap, err := store.ReadTable(ctx, t)
	if err != nil {
		return nil, err
	}
	c.Set(t.Name, snap)
	return snap, nil
}
