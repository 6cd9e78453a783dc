package service

import (
	"context"
	"fmt"

	"github.com/allyounowbud/onetrack/internal/models"
)

// fakeLedgerRepo serves canned entries and records mutations.
type fakeLedgerRepo struct {
	entries []models.LedgerEntry

	appended []models.LedgerEntry
	updated  []models.LedgerEntry
	marked   []int
	deleted  [][]int
}

func (f *fakeLedgerRepo) Entries(ctx context.Context) ([]models.LedgerEntry, error) {
	return f.entries, nil
}

func (f *fakeLedgerRepo) Append(ctx context.Context, e models.LedgerEntry) error {
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeLedgerRepo) Update(ctx context.Context, e models.LedgerEntry) error {
	f.updated = append(f.updated, e)
	return nil
}

func (f *fakeLedgerRepo) MarkSold(ctx context.Context, position int, sale models.SaleDetails) error {
	f.marked = append(f.marked, position)
	for i := range f.entries {
		if f.entries[i].Row == position {
			f.entries[i].SellPrice = sale.SellPrice
			f.entries[i].SaleDate = sale.SaleDate
			f.entries[i].SaleLocation = sale.SaleLocation
			f.entries[i].FeesPct = sale.FeesPct
			f.entries[i].Shipping = sale.Shipping
		}
	}
	return nil
}

func (f *fakeLedgerRepo) Delete(ctx context.Context, positions []int) error {
	f.deleted = append(f.deleted, positions)
	return nil
}

// fakeRefRepo serves canned reference rows and records mutations.
type fakeRefRepo struct {
	items        []models.Item
	retailers    []models.Retailer
	marketplaces []models.Marketplace

	updatedItems        []models.Item
	updatedRetailers    []models.Retailer
	updatedMarketplaces []models.Marketplace
	appendedMarketplace []models.Marketplace
	appendedItems       []models.Item
	appendedRetailers   []models.Retailer
	deletions           map[string][][]int
}

func (f *fakeRefRepo) Items(ctx context.Context) ([]models.Item, error) { return f.items, nil }
func (f *fakeRefRepo) Retailers(ctx context.Context) ([]models.Retailer, error) {
	return f.retailers, nil
}
func (f *fakeRefRepo) Marketplaces(ctx context.Context) ([]models.Marketplace, error) {
	return f.marketplaces, nil
}

func (f *fakeRefRepo) UpdateItem(ctx context.Context, it models.Item) error {
	f.updatedItems = append(f.updatedItems, it)
	return nil
}

func (f *fakeRefRepo) UpdateRetailer(ctx context.Context, rt models.Retailer) error {
	f.updatedRetailers = append(f.updatedRetailers, rt)
	return nil
}

func (f *fakeRefRepo) UpdateMarketplace(ctx context.Context, mk models.Marketplace) error {
	f.updatedMarketplaces = append(f.updatedMarketplaces, mk)
	return nil
}

func (f *fakeRefRepo) AppendItem(ctx context.Context, it models.Item) error {
	f.appendedItems = append(f.appendedItems, it)
	return nil
}

func (f *fakeRefRepo) AppendRetailer(ctx context.Context, rt models.Retailer) error {
	f.appendedRetailers = append(f.appendedRetailers, rt)
	return nil
}

func (f *fakeRefRepo) AppendMarketplace(ctx context.Context, mk models.Marketplace) error {
	f.appendedMarketplace = append(f.appendedMarketplace, mk)
	return nil
}

func (f *fakeRefRepo) delete(table string, positions []int) error {
	if f.deletions == nil {
		f.deletions = make(map[string][][]int)
	}
	f.deletions[table] = append(f.deletions[table], positions)
	return nil
}

func (f *fakeRefRepo) DeleteItems(ctx context.Context, positions []int) error {
	return f.delete("items", positions)
}

func (f *fakeRefRepo) DeleteRetailers(ctx context.Context, positions []int) error {
	return f.delete("retailers", positions)
}

func (f *fakeRefRepo) DeleteMarketplaces(ctx context.Context, positions []int) error {
	return f.delete("marketplaces", positions)
}

// recordNotifier captures mutation notifications as "table/action/rows".
type recordNotifier struct {
	events []string
}

func (n *recordNotifier) LedgerMutated(table, action string, rows int) {
	n.events = append(n.events, fmt.Sprintf("%s/%s/%d", table, action, rows))
}
