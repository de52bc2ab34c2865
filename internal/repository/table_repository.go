package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// TableRepo reads the static `tables` reference data. Tables are
// seeded at initialization and never written by the application.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a new TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

// List returns all tables ordered by their human-readable number.
func (r *TableRepo) List(ctx context.Context) ([]model.Table, error) {
	const q = `SELECT id, number, seats, isAvailable, createdAt, updatedAt
	           FROM tables
	           ORDER BY number`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tables := make([]model.Table, 0)
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.ID, &t.Number, &t.Seats, &t.IsAvailable, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tables, nil
}

// CountByIDs returns how many of the given table IDs exist. Callers
// compare the result against len(ids) to detect unknown identifiers
// before opening the reservation transaction. Passing an empty slice
// returns zero.
func (r *TableRepo) CountByIDs(ctx context.Context, ids []uint64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := make([]string, 0, len(ids))
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `SELECT COUNT(*) FROM tables WHERE id IN (` + strings.Join(placeholders, ",") + `)`
	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
