package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// MenuRepo provides access to the `menuitems` table. Reads serve
// the public menu page; writes are admin-only.
type MenuRepo struct {
	db *sql.DB
}

// NewMenuRepo returns a new MenuRepo bound to the given database.
func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{db: db} }

// List returns every menu item ordered by category then name, the
// order in which the presentation layer renders the menu.
func (r *MenuRepo) List(ctx context.Context) ([]model.MenuItem, error) {
	const q = `SELECT id, name, description, price, category, imageUrl, isAvailable, createdAt, updatedAt
	           FROM menuitems
	           ORDER BY category, name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.MenuItem, 0)
	for rows.Next() {
		var it model.MenuItem
		var desc, img sql.NullString
		if err := rows.Scan(&it.ID, &it.Name, &desc, &it.Price, &it.Category, &img, &it.IsAvailable, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			d := desc.String
			it.Description = &d
		}
		if img.Valid {
			u := img.String
			it.ImageURL = &u
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new menu item and returns its ID.
func (r *MenuRepo) Create(ctx context.Context, name, description, price, category string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO menuitems (name, description, price, category) VALUES (?,?,?,?)",
		name, description, price, category)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update overwrites the editable columns of a menu item. Updating a
// non-existent id affects zero rows and is not treated as an error.
func (r *MenuRepo) Update(ctx context.Context, id uint64, name, description, price, category string, isAvailable bool) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE menuitems SET name=?, description=?, price=?, category=?, isAvailable=? WHERE id=?",
		name, description, price, category, isAvailable, id)
	return err
}

// Delete removes a menu item by id.
func (r *MenuRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM menuitems WHERE id=?", id)
	return err
}
