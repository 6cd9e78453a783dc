// Package grid models a spreadsheet tab as an untyped cell grid and provides
// the coercion rules used to read it. The source has no schema enforcement,
// so every accessor is total: missing cells read as empty, bad numbers read
// as 0, and bad dates read as "no date". Aggregation must always produce a
// result over dirty rows.
package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Snapshot is one immutable read of a tab: the trimmed header row and every
// data row below it. Row i corresponds to spreadsheet row HeaderRow + 1 + i.
type Snapshot struct {
	Headers   []string
	Rows      [][]any
	HeaderRow int
}

// Position returns the 1-based spreadsheet row for data row index i.
func (s *Snapshot) Position(i int) int {
	return s.HeaderRow + 1 + i
}

// Cell returns the value at 1-based column col, or nil when the row is
// shorter than that. Sparse rows are the norm, never an error.
func Cell(row []any, col int) any {
	if col < 1 || col > len(row) {
		return nil
	}
	return row[col-1]
}

// CellString returns the cell rendered as a trimmed display string.
func CellString(row []any, col int) string {
	v := Cell(row, col)
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// CellNumber returns the cell coerced to a number per ToNumber.
func CellNumber(row []any, col int) float64 {
	return ToNumber(Cell(row, col))
}

// ToNumber coerces a cell value to a float64. Empty, nil and non-numeric
// values become 0; NaN results are floored to 0 as well.
func ToNumber(v any) float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case bool:
		if n {
			f = 1
		}
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) {
		return 0
	}
	return f
}

// dateLayouts are tried in order. The sheet renders dates as display strings,
// so both ISO and US slash formats show up in real data.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"1/2/2006",
	"1/2/06",
}

// ParseDate parses a cell's date string. The second return is false for
// empty or unparsable input, which callers treat as "no date", not an error.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// CellDate parses the cell at 1-based column col as a date.
func CellDate(row []any, col int) (time.Time, bool) {
	return ParseDate(CellString(row, col))
}

// DaysBetween returns the whole-day span from one calendar date to another,
// rounding the difference and ignoring the time of day.
func DaysBetween(from, to time.Time) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// MonthKey buckets a date into its "YYYY-MM" month key.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
