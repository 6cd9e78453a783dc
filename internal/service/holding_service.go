package service

import (
	"context"
	"time"

	"github.com/allyounowbud/onetrack/internal/grid"
	"github.com/allyounowbud/onetrack/internal/ledger"
	"github.com/allyounowbud/onetrack/internal/models"
	"github.com/allyounowbud/onetrack/internal/names"
	"github.com/allyounowbud/onetrack/internal/repository"
)

// HoldingService finds the oldest unsold purchase matching a filter.
type HoldingService struct {
	entries repository.LedgerRepository

	// now is swapped out by tests.
	now func() time.Time
}

// NewHoldingService creates a holding-age service.
func NewHoldingService(entries repository.LedgerRepository) *HoldingService {
	return &HoldingService{entries: entries, now: time.Now}
}

// LongestHold scans open positions only, keeps those whose item matches the
// token filter, and returns the whole-day age of the earliest parseable
// order date, floored at 0. With no match Days is 0, which a caller cannot
// tell apart from "opened today" by Days alone; Matched carries the count.
func (s *HoldingService) LongestHold(ctx context.Context, itemFilter string) (*models.LongestHold, error) {
	entries, err := s.entries.Entries(ctx)
	if err != nil {
		return nil, err
	}

	matcher := names.NewMatcher(itemFilter)
	book := ledger.Reconcile(entries)

	var oldest time.Time
	var found bool
	matched := 0
	for _, e := range book.Open {
		if !matcher.Matches(e.Item) {
			continue
		}
		matched++
		d, ok := grid.ParseDate(e.OrderDate)
		if !ok {
			continue
		}
		if !found || d.Before(oldest) {
			oldest = d
			found = true
		}
	}

	result := &models.LongestHold{Matched: matched}
	if found {
		days := grid.DaysBetween(oldest, s.now().UTC())
		if days < 0 {
			days = 0
		}
		result.Days = days
	}
	return result, nil
}
