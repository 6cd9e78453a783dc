// Package service implements the read rollups and mutation flows exposed
// over HTTP: inventory valuation, period statistics, holding age, order-book
// editing and reference-table maintenance.
package service

import (
	"context"
	"sort"

	"github.com/allyounowbud/onetrack/internal/ledger"
	"github.com/allyounowbud/onetrack/internal/models"
	"github.com/allyounowbud/onetrack/internal/repository"
	"github.com/allyounowbud/onetrack/utils"
)

// InventoryService computes the point-in-time inventory valuation.
type InventoryService struct {
	entries repository.LedgerRepository
	refs    repository.ReferenceRepository
}

// NewInventoryService creates an inventory service.
func NewInventoryService(entries repository.LedgerRepository, refs repository.ReferenceRepository) *InventoryService {
	return &InventoryService{entries: entries, refs: refs}
}

// Valuate rolls the ledger up into on-hand quantity, cost basis and
// estimated market value per item. Items with nothing on hand are omitted;
// the rest sort by quantity, largest first, ties keeping ledger order.
func (s *InventoryService) Valuate(ctx context.Context) (*models.InventoryReport, error) {
	entries, err := s.entries.Entries(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.refs.Items(ctx)
	if err != nil {
		return nil, err
	}

	// Market value lookup is by exact stored name.
	market := make(map[string]float64, len(items))
	for _, it := range items {
		market[it.Name] = it.Market
	}

	book := ledger.Reconcile(entries)
	report := &models.InventoryReport{Items: []models.ItemValuation{}}

	for _, agg := range book.Aggregates() {
		qty := agg.OnHand()
		if qty <= 0 {
			continue
		}

		onHandCost := agg.OnHandCost() // still signed negative
		each := market[agg.Item]
		estValue := each * float64(qty)

		report.Items = append(report.Items, models.ItemValuation{
			Item:       agg.Item,
			OnHandQty:  qty,
			OnHandCost: utils.Round2(onHandCost),
			AvgCost:    utils.Round2(onHandCost / float64(qty)),
			MarketEach: utils.Round2(each),
			EstValue:   utils.Round2(estValue),
		})

		report.TotalQty += qty
		report.TotalCost += onHandCost
		report.TotalEstValue += estValue
	}

	sort.SliceStable(report.Items, func(i, j int) bool {
		return report.Items[i].OnHandQty > report.Items[j].OnHandQty
	})

	report.TotalCost = utils.Round2(report.TotalCost)
	report.TotalEstValue = utils.Round2(report.TotalEstValue)
	// Cost is negative, so adding it nets the estimate down to unrealized gain.
	report.Unrealized = utils.Round2(report.TotalEstValue + report.TotalCost)
	return report, nil
}
