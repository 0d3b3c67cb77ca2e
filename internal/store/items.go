package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sacirovic/rallebola/internal/model"
)

// CreateItem adds an item to a list. Quantity is clamped to at least 1.
func CreateItem(ctx context.Context, db *sql.DB, listID int64, name string, quantity int, notes string) (*model.Item, error) {
	if quantity < 1 {
		quantity = 1
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (list_id, name, quantity, notes) VALUES (?, ?, ?, ?)`,
		listID, name, quantity, nullable(notes),
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	var notes sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, list_id, name, quantity, notes, created_at, updated_at
		 FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.ListID, &item.Name, &item.Quantity, &notes, &item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.Notes = notes.String
	return item, nil
}

// GetItemInList returns an item only if it belongs to the given list.
func GetItemInList(ctx context.Context, db *sql.DB, id, listID int64) (*model.Item, error) {
	item, err := GetItem(ctx, db, id)
	if err != nil || item == nil {
		return item, err
	}
	if item.ListID != listID {
		return nil, nil
	}
	return item, nil
}

// ListItems returns all items on a list in creation order.
func ListItems(ctx context.Context, db *sql.DB, listID int64) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, list_id, name, quantity, notes, created_at, updated_at
		 FROM items WHERE list_id = ? ORDER BY created_at ASC, id ASC`, listID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var notes sql.NullString
		if err := rows.Scan(&item.ID, &item.ListID, &item.Name, &item.Quantity, &notes, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.Notes = notes.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// ItemUpdate carries the fields of a partial item update. Nil fields are
// left unchanged.
type ItemUpdate struct {
	Name     *string
	Quantity *int
	Notes    *string
}

// UpdateItem applies a partial update to an item. Returns the updated item,
// or nil if no fields were set.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, upd ItemUpdate) (*model.Item, error) {
	set := ""
	var args []any

	if upd.Name != nil {
		set += "name = ?, "
		args = append(args, *upd.Name)
	}
	if upd.Quantity != nil {
		q := *upd.Quantity
		if q < 1 {
			q = 1
		}
		set += "quantity = ?, "
		args = append(args, q)
	}
	if upd.Notes != nil {
		set += "notes = ?, "
		args = append(args, nullable(*upd.Notes))
	}

	if set == "" {
		return nil, nil
	}

	args = append(args, id)
	_, err := db.ExecContext(ctx,
		`UPDATE items SET `+set+`updated_at = CURRENT_TIMESTAMP WHERE id = ?`, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	return GetItem(ctx, db, id)
}

// DeleteItem deletes an item; its borrow requests cascade.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// nullable maps the empty string to NULL so optional text columns stay NULL
// instead of collecting empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
