package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/allyounowbud/onetrack/internal/models"
	"github.com/allyounowbud/onetrack/internal/repository"
	"github.com/allyounowbud/onetrack/internal/storage"
)

// DatabaseService maintains the Items, Retailers and Marketplaces
// reference tabs.
type DatabaseService struct {
	refs   repository.ReferenceRepository
	notify notifiers
}

// NewDatabaseService creates a reference-table maintenance service.
func NewDatabaseService(refs repository.ReferenceRepository, ns ...Notifier) *DatabaseService {
	return &DatabaseService{refs: refs, notify: notifiers(ns)}
}

// normalizeFee keeps stored fees as fractions. Inputs above 1 are read as
// percentages and divided by 100. One-way and lossy: a genuine 150% fee
// cannot be represented, by longstanding convention of the sheet.
func normalizeFee(fee float64) float64 {
	if fee > 1 {
		return fee / 100
	}
	return fee
}

// InitModel returns the names-only reference lists for form dropdowns.
func (s *DatabaseService) InitModel(ctx context.Context) (*models.InitModel, error) {
	items, err := s.refs.Items(ctx)
	if err != nil {
		return nil, err
	}
	retailers, err := s.refs.Retailers(ctx)
	if err != nil {
		return nil, err
	}
	marketplaces, err := s.refs.Marketplaces(ctx)
	if err != nil {
		return nil, err
	}

	m := &models.InitModel{
		Items:                make([]string, 0, len(items)),
		Retailers:            make([]string, 0, len(retailers)),
		Marketplaces:         make([]string, 0, len(marketplaces)),
		MarketplacesWithFees: marketplaces,
	}
	for _, it := range items {
		m.Items = append(m.Items, it.Name)
	}
	for _, rt := range retailers {
		m.Retailers = append(m.Retailers, rt.Name)
	}
	for _, mk := range marketplaces {
		m.Marketplaces = append(m.Marketplaces, mk.Name)
	}
	return m, nil
}

// Full returns every reference row with positions for the maintenance grid.
func (s *DatabaseService) Full(ctx context.Context) (*models.DatabaseFull, error) {
	items, err := s.refs.Items(ctx)
	if err != nil {
		return nil, err
	}
	retailers, err := s.refs.Retailers(ctx)
	if err != nil {
		return nil, err
	}
	marketplaces, err := s.refs.Marketplaces(ctx)
	if err != nil {
		return nil, err
	}
	return &models.DatabaseFull{Items: items, Retailers: retailers, Marketplaces: marketplaces}, nil
}

// UpdateItems rewrites reference items in place, keyed by row position.
// Rows without a position are skipped, as the sheet version did.
func (s *DatabaseService) UpdateItems(ctx context.Context, rows []models.Item) (int, error) {
	updated := 0
	for _, it := range rows {
		if it.Row <= storage.Items.HeaderRow {
			continue
		}
		if err := s.refs.UpdateItem(ctx, it); err != nil {
			return updated, err
		}
		updated++
	}
	if updated > 0 {
		s.notify.mutated(storage.Items.Name, "update", updated)
	}
	return updated, nil
}

// UpdateRetailers rewrites retailer rows in place.
func (s *DatabaseService) UpdateRetailers(ctx context.Context, rows []models.Retailer) (int, error) {
	updated := 0
	for _, rt := range rows {
		if rt.Row <= storage.Retailers.HeaderRow {
			continue
		}
		if err := s.refs.UpdateRetailer(ctx, rt); err != nil {
			return updated, err
		}
		updated++
	}
	if updated > 0 {
		s.notify.mutated(storage.Retailers.Name, "update", updated)
	}
	return updated, nil
}

// UpdateMarketplaces rewrites marketplace rows in place, normalizing fees.
func (s *DatabaseService) UpdateMarketplaces(ctx context.Context, rows []models.Marketplace) (int, error) {
	updated := 0
	for _, mk := range rows {
		if mk.Row <= storage.Marketplaces.HeaderRow {
			continue
		}
		mk.FeePct = normalizeFee(mk.FeePct)
		if err := s.refs.UpdateMarketplace(ctx, mk); err != nil {
			return updated, err
		}
		updated++
	}
	if updated > 0 {
		s.notify.mutated(storage.Marketplaces.Name, "update", updated)
	}
	return updated, nil
}

// AddItem appends a new reference item.
func (s *DatabaseService) AddItem(ctx context.Context, it models.Item) error {
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("item name is required")
	}
	if err := s.refs.AppendItem(ctx, it); err != nil {
		return err
	}
	s.notify.mutated(storage.Items.Name, "append", 1)
	return nil
}

// AddRetailer appends a new retailer.
func (s *DatabaseService) AddRetailer(ctx context.Context, rt models.Retailer) error {
	if strings.TrimSpace(rt.Name) == "" {
		return fmt.Errorf("retailer name is required")
	}
	if err := s.refs.AppendRetailer(ctx, rt); err != nil {
		return err
	}
	s.notify.mutated(storage.Retailers.Name, "append", 1)
	return nil
}

// AddMarketplace appends a new marketplace, normalizing its fee.
func (s *DatabaseService) AddMarketplace(ctx context.Context, mk models.Marketplace) error {
	if strings.TrimSpace(mk.Name) == "" {
		return fmt.Errorf("marketplace name is required")
	}
	mk.FeePct = normalizeFee(mk.FeePct)
	if err := s.refs.AppendMarketplace(ctx, mk); err != nil {
		return err
	}
	s.notify.mutated(storage.Marketplaces.Name, "append", 1)
	return nil
}

// RemoveItems deletes item rows by position.
func (s *DatabaseService) RemoveItems(ctx context.Context, positions []int) (int, error) {
	return s.remove(ctx, storage.Items, positions, s.refs.DeleteItems)
}

// RemoveRetailers deletes retailer rows by position.
func (s *DatabaseService) RemoveRetailers(ctx context.Context, positions []int) (int, error) {
	return s.remove(ctx, storage.Retailers, positions, s.refs.DeleteRetailers)
}

// RemoveMarketplaces deletes marketplace rows by position.
func (s *DatabaseService) RemoveMarketplaces(ctx context.Context, positions []int) (int, error) {
	return s.remove(ctx, storage.Marketplaces, positions, s.refs.DeleteMarketplaces)
}

func (s *DatabaseService) remove(ctx context.Context, t storage.Table, positions []int, del func(context.Context, []int) error) (int, error) {
	clean := make([]int, 0, len(positions))
	for _, p := range positions {
		if p > t.HeaderRow {
			clean = append(clean, p)
		}
	}
	if len(clean) == 0 {
		return 0, nil
	}
	if err := del(ctx, clean); err != nil {
		return 0, err
	}
	s.notify.mutated(t.Name, "delete", len(clean))
	return len(clean), nil
}
