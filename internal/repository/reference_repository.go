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

// ReferenceRepository reads and mutates the Items, Retailers and
// Marketplaces tabs. Rows with a blank name are dropped on read.
type ReferenceRepository interface {
	Items(ctx context.Context) ([]models.Item, error)
	Retailers(ctx context.Context) ([]models.Retailer, error)
	Marketplaces(ctx context.Context) ([]models.Marketplace, error)

	UpdateItem(ctx context.Context, it models.Item) error
	UpdateRetailer(ctx context.Context, rt models.Retailer) error
	UpdateMarketplace(ctx context.Context, mk models.Marketplace) error

	AppendItem(ctx context.Context, it models.Item) error
	AppendRetailer(ctx context.Context, rt models.Retailer) error
	AppendMarketplace(ctx context.Context, mk models.Marketplace) error

	DeleteItems(ctx context.Context, positions []int) error
	DeleteRetailers(ctx context.Context, positions []int) error
	DeleteMarketplaces(ctx context.Context, positions []int) error
}

type tableReferenceRepository struct {
	store storage.TableStore
	cache *cache.SnapshotCache
	log   *logrus.Logger
}

// NewReferenceRepository creates a reference-table repository over a table store.
func NewReferenceRepository(store storage.TableStore, c *cache.SnapshotCache, log *logrus.Logger) ReferenceRepository {
	return &tableReferenceRepository{store: store, cache: c, log: log}
}

func (r *tableReferenceRepository) Items(ctx context.Context) ([]models.Item, error) {
	snap, err := readTable(ctx, r.store, r.cache, storage.Items)
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(snap.Rows))
	for i, row := range snap.Rows {
		name := grid.CellString(row, storage.ItemsColName)
		if strings.TrimSpace(name) == "" {
			continue
		}
		items = append(items, models.Item{
			Row:    snap.Position(i),
			Name:   name,
			Market: grid.CellNumber(row, storage.ItemsColMarket),
		})
	}
	return items, nil
}

func (r *tableReferenceRepository) Retailers(ctx context.Context) ([]models.Retailer, error) {
	snap, err := readTable(ctx, r.store, r.cache, storage.Retailers)
	if err != nil {
		return nil, err
	}

	retailers := make([]models.Retailer, 0, len(snap.Rows))
	for i, row := range snap.Rows {
		name := grid.CellString(row, storage.RetailersColName)
		if strings.TrimSpace(name) == "" {
			continue
		}
		retailers = append(retailers, models.Retailer{Row: snap.Position(i), Name: name})
	}
	return retailers, nil
}

func (r *tableReferenceRepository) Marketplaces(ctx context.Context) ([]models.Marketplace, error) {
	snap, err := readTable(ctx, r.store, r.cache, storage.Marketplaces)
	if err != nil {
		return nil, err
	}

	marketplaces := make([]models.Marketplace, 0, len(snap.Rows))
	for i, row := range snap.Rows {
		name := grid.CellString(row, storage.MarketplacesColName)
		if strings.TrimSpace(name) == "" {
			continue
		}
		marketplaces = append(marketplaces, models.Marketplace{
			Row:    snap.Position(i),
			Name:   name,
			FeePct: grid.CellNumber(row, storage.MarketplacesColFee),
		})
	}
	return marketplaces, nil
}

func (r *tableReferenceRepository) UpdateItem(ctx context.Context, it models.Item) error {
	return r.write(ctx, storage.Items, it.Row, []any{it.Name, it.Market})
}

func (r *tableReferenceRepository) UpdateRetailer(ctx context.Context, rt models.Retailer) error {
	return r.write(ctx, storage.Retailers, rt.Row, []any{rt.Name})
}

func (r *tableReferenceRepository) UpdateMarketplace(ctx context.Context, mk models.Marketplace) error {
	return r.write(ctx, storage.Marketplaces, mk.Row, []any{mk.Name, mk.FeePct})
}

func (r *tableReferenceRepository) AppendItem(ctx context.Context, it models.Item) error {
	return r.append(ctx, storage.Items, []any{it.Name, it.Market})
}

func (r *tableReferenceRepository) AppendRetailer(ctx context.Context, rt models.Retailer) error {
	return r.append(ctx, storage.Retailers, []any{rt.Name})
}

func (r *tableReferenceRepository) AppendMarketplace(ctx context.Context, mk models.Marketplace) error {
	return r.append(ctx, storage.Marketplaces, []any{mk.Name, mk.FeePct})
}

func (r *tableReferenceRepository) DeleteItems(ctx context.Context, positions []int) error {
	return r.delete(ctx, storage.Items, positions)
}

func (r *tableReferenceRepository) DeleteRetailers(ctx context.Context, positions []int) error {
	return r.delete(ctx, storage.Retailers, positions)
}

func (r *tableReferenceRepository) DeleteMarketplaces(ctx context.Context, positions []int) error {
	return r.delete(ctx, storage.Marketplaces, positions)
}

func (r *tableReferenceRepository) write(ctx context.Context, t storage.Table, position int, values []any) error {
	if err := r.store.UpdateRow(ctx, t, position, 1, values); err != nil {
		return err
	}
	r.cache.Clear()
	r.log.WithFields(logrus.Fields{"table": t.Name, "row": position}).Info("Updated reference row")
	return nil
}

func (r *tableReferenceRepository) append(ctx context.Context, t storage.Table, values []any) error {
	if err := r.store.AppendRow(ctx, t, values); err != nil {
		return err
	}
	r.cache.Clear()
	r.log.WithField("table", t.Name).Info("Appended reference row")
	return nil
}

func (r *tableReferenceRepository) delete(ctx context.Context, t storage.Table, positions []int) error {
	if len(positions) == 0 {
		return nil
	}
	if err := r.store.DeleteRows(ctx, t, positions); err != nil {
		return err
	}
	r.cache.Clear()
	r.log.WithFields(logrus.Fields{"table": t.Name, "rows": len(positions)}).Info("Deleted reference rows")
	return nil
}
