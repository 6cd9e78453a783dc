package storage

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/allyounowbud/onetrack/internal/grid"
)

// PostgresStore presents the relational backend through the same grid
// contract as the spreadsheet. Rows are ordered by their serial id and a
// 1-based position is the row's rank offset by the layout's header row, so
// deletes shift later positions exactly like removing sheet rows.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore opens the Postgres connection and verifies it.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// dbColumns returns the layout's column names in grid order.
func dbColumns(t Table) []string {
	cols := make([]string, 0, t.Width())
	for _, c := range t.Columns {
		cols = append(cols, c.DB)
	}
	return cols
}

// ReadTable selects every row ordered by id and lays it out in grid column
// order. Headers are synthesized from the layout titles.
func (s *PostgresStore) ReadTable(ctx context.Context, t Table) (*grid.Snapshot, error) {
	cols := dbColumns(t)

	var records []map[string]any
	err := s.db.WithContext(ctx).
		Table(t.DBTable).
		Select(cols).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.DBTable, err)
	}

	headers := make([]string, 0, t.Width())
	for _, c := range t.Columns {
		headers = append(headers, c.Title)
	}

	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		row := make([]any, t.Width())
		for i, col := range cols {
			row[i] = rec[col]
		}
		rows = append(rows, row)
	}

	return &grid.Snapshot{Headers: headers, Rows: rows, HeaderRow: t.HeaderRow}, nil
}

// AppendRow inserts one row; the serial id places it after existing rows.
func (s *PostgresStore) AppendRow(ctx context.Context, t Table, row []any) error {
	values := make(map[string]any, t.Width())
	for i, col := range dbColumns(t) {
		if i < len(row) {
			values[col] = row[i]
		}
	}
	if err := s.db.WithContext(ctx).Table(t.DBTable).Create(&values).Error; err != nil {
		return fmt.Errorf("append to %s: %w", t.DBTable, err)
	}
	return nil
}

// UpdateRow writes a contiguous run of columns in the row at position.
func (s *PostgresStore) UpdateRow(ctx context.Context, t Table, position, startCol int, values []any) error {
	id, err := s.idAt(ctx, t, position)
	if err != nil {
		return err
	}

	cols := dbColumns(t)
	updates := make(map[string]any, len(values))
	for i, v := range values {
		col := startCol - 1 + i
		if col >= len(cols) {
			break
		}
		updates[cols[col]] = v
	}
	if len(updates) == 0 {
		return nil
	}

	err = s.db.WithContext(ctx).
		Table(t.DBTable).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("update %s row %d: %w", t.DBTable, position, err)
	}
	return nil
}

// DeleteRows resolves every position against one consistent id snapshot and
// removes them in a single DELETE, so the shifting caused by earlier
// positions cannot skew later ones.
func (s *PostgresStore) DeleteRows(ctx context.Context, t Table, positions []int) error {
	if len(positions) == 0 {
		return nil
	}

	var ids []int64
	if err := s.db.WithContext(ctx).Table(t.DBTable).Order("id").Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("list %s ids: %w", t.DBTable, err)
	}

	targets := make([]int64, 0, len(positions))
	for _, p := range dedupeDescending(positions) {
		offset := p - t.HeaderRow - 1
		if offset < 0 || offset >= len(ids) {
			return fmt.Errorf("%s has no row at position %d", t.DBTable, p)
		}
		targets = append(targets, ids[offset])
	}

	err := s.db.WithContext(ctx).
		Exec("DELETE FROM "+t.DBTable+" WHERE id IN ?", targets).Error
	if err != nil {
		return fmt.Errorf("delete rows from %s: %w", t.DBTable, err)
	}
	return nil
}

// idAt resolves a grid position to the underlying row id.
func (s *PostgresStore) idAt(ctx context.Context, t Table, position int) (int64, error) {
	offset := position - t.HeaderRow - 1
	if offset < 0 {
		return 0, fmt.Errorf("%s has no row at position %d", t.DBTable, position)
	}

	var id int64
	err := s.db.WithContext(ctx).
		Table(t.DBTable).
		Select("id").
		Order("id").
		Limit(1).
		Offset(offset).
		Scan(&id).Error
	if err != nil {
		return 0, fmt.Errorf("resolve %s position %d: %w", t.DBTable, position, err)
	}
	if id == 0 {
		return 0, fmt.Errorf("%s has no row at position %d", t.DBTable, position)
	}
	return id, nil
}
