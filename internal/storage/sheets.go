package storage

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/allyounowbud/onetrack/internal/grid"
)

// readWidth is the widest range fetched per tab. Wide on purpose; the mapper
// only looks at the layout's columns.
const readWidth = "A1:ZZ"

// SheetsOptions configures the Google Sheets store.
type SheetsOptions struct {
	// SpreadsheetID identifies the spreadsheet. Required.
	SpreadsheetID string

	// CredentialsJSON is a service-account key. Takes precedence over
	// CredentialsFile.
	CredentialsJSON []byte

	// CredentialsFile is a path to a service-account key file.
	CredentialsFile string

	// ReadsPerMinute caps API calls to stay under the Sheets quota.
	ReadsPerMinute int
}

// SheetsStore reads and writes the spreadsheet through the Sheets API.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	limiter       *rate.Limiter
}

// NewSheetsStore creates a Sheets-backed table store. Missing spreadsheet
// identity or credentials is a configuration error and fails immediately.
func NewSheetsStore(ctx context.Context, opts SheetsOptions) (*SheetsStore, error) {
	if opts.SpreadsheetID == "" {
		return nil, errors.New("missing SPREADSHEET_ID")
	}

	var clientOpt option.ClientOption
	switch {
	case len(opts.CredentialsJSON) > 0:
		// Parse the inlined key up front so a malformed credential fails
		// here instead of on the first API call.
		creds, err := google.CredentialsFromJSON(ctx, opts.CredentialsJSON, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("parse Google credentials: %w", err)
		}
		clientOpt = option.WithCredentials(creds)
	case opts.CredentialsFile != "":
		clientOpt = option.WithCredentialsFile(opts.CredentialsFile)
	default:
		return nil, errors.New("missing Google credentials (set GOOGLE_CREDENTIALS_JSON or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	svc, err := sheets.NewService(ctx, clientOpt, option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	perMinute := opts.ReadsPerMinute
	if perMinute <= 0 {
		perMinute = 50
	}

	return &SheetsStore{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		limiter:       rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 5),
	}, nil
}

// ReadTable fetches the tab in one ranged read. Numeric cells keep their
// numeric type (UNFORMATTED_VALUE); dates come back as display strings.
func (s *SheetsStore) ReadTable(ctx context.Context, t Table) (*grid.Snapshot, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, t.Name+"!"+readWidth).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.Name, err)
	}

	vals := resp.Values
	headers := make([]string, 0, t.Width())
	if len(vals) >= t.HeaderRow {
		for col := 1; col <= len(vals[t.HeaderRow-1]); col++ {
			headers = append(headers, grid.CellString(vals[t.HeaderRow-1], col))
		}
	}

	var rows [][]any
	if len(vals) > t.HeaderRow {
		rows = vals[t.HeaderRow:]
	}

	return &grid.Snapshot{Headers: headers, Rows: rows, HeaderRow: t.HeaderRow}, nil
}

// AppendRow appends one row below the existing data.
func (s *SheetsStore) AppendRow(ctx context.Context, t Table, row []any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	vr := &sheets.ValueRange{Values: [][]any{row}}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, t.Name+"!A1", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", t.Name, err)
	}
	return nil
}

// UpdateRow writes a contiguous run of cells in one row.
func (s *SheetsStore) UpdateRow(ctx context.Context, t Table, position, startCol int, values []any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	endCol := startCol + len(values) - 1
	vr := &sheets.ValueRange{Values: [][]any{values}}
	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, rowRangeA1(t.Name, position, startCol, endCol), vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s row %d: %w", t.Name, position, err)
	}
	return nil
}

// DeleteRows removes the given rows in a single batchUpdate. Requests are
// ordered from the bottom of the sheet up so each one's index is still
// valid after the deletions before it.
func (s *SheetsStore) DeleteRows(ctx context.Context, t Table, positions []int) error {
	if len(positions) == 0 {
		return nil
	}

	sheetID, err := s.sheetID(ctx, t.Name)
	if err != nil {
		return err
	}

	rows := dedupeDescending(positions)
	requests := make([]*sheets.Request, 0, len(rows))
	for _, rn := range rows {
		requests = append(requests, &sheets.Request{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rn - 1),
					EndIndex:   int64(rn),
				},
			},
		})
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err = s.svc.Spreadsheets.
		BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{Requests: requests}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("delete rows from %s: %w", t.Name, err)
	}
	return nil
}

// sheetID resolves a tab title to its numeric sheet id.
func (s *SheetsStore) sheetID(ctx context.Context, name string) (int64, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	meta, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("spreadsheet metadata: %w", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == name {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("no sheet named %q", name)
}
