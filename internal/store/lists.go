package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sacirovic/rallebola/internal/model"
)

// CreateList creates a personal list owned by a user.
func CreateList(ctx context.Context, db *sql.DB, userID int64, name string) (*model.List, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO lists (user_id, name) VALUES (?, ?)`,
		userID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("creating list: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting list id: %w", err)
	}

	return GetList(ctx, db, id)
}

// CreateRoadtripList creates a list owned by a roadtrip rather than a user.
// The given executor may be a transaction so the list can be created
// atomically with its roadtrip.
func CreateRoadtripList(ctx context.Context, db executor, roadtripID int64, name string) (int64, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO lists (roadtrip_id, name) VALUES (?, ?)`,
		roadtripID, name,
	)
	if err != nil {
		return 0, fmt.Errorf("creating roadtrip list: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting roadtrip list id: %w", err)
	}
	return id, nil
}

// GetList returns a list by ID.
func GetList(ctx context.Context, db *sql.DB, id int64) (*model.List, error) {
	l := &model.List{}
	err := db.QueryRowContext(ctx,
		`SELECT id, user_id, roadtrip_id, name, created_at, updated_at
		 FROM lists WHERE id = ?`, id,
	).Scan(&l.ID, &l.UserID, &l.RoadtripID, &l.Name, &l.CreatedAt, &l.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting list: %w", err)
	}
	return l, nil
}

// ListPersonalLists returns a user's own lists, newest-updated first,
// with a flag set on lists that have at least one share.
func ListPersonalLists(ctx context.Context, db *sql.DB, userID int64) ([]model.List, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT l.id, l.user_id, l.roadtrip_id, l.name, l.created_at, l.updated_at,
		        EXISTS(SELECT 1 FROM list_shares ls WHERE ls.list_id = l.id) AS is_shared
		 FROM lists l
		 WHERE l.user_id = ? AND l.roadtrip_id IS NULL
		 ORDER BY l.updated_at DESC, l.id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing lists: %w", err)
	}
	defer rows.Close()

	var lists []model.List
	for rows.Next() {
		var l model.List
		if err := rows.Scan(&l.ID, &l.UserID, &l.RoadtripID, &l.Name, &l.CreatedAt, &l.UpdatedAt, &l.Shared); err != nil {
			return nil, fmt.Errorf("scanning list: %w", err)
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// ListSharedWithUser returns lists other users have shared with the given
// user, newest-updated first, annotated with the grant and the owner's name.
func ListSharedWithUser(ctx context.Context, db *sql.DB, userID int64) ([]model.List, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT l.id, l.user_id, l.roadtrip_id, l.name, l.created_at, l.updated_at,
		        ls.permission, u.name AS owner_name
		 FROM lists l
		 JOIN list_shares ls ON ls.list_id = l.id
		 JOIN users u ON u.id = l.user_id
		 WHERE ls.shared_with_user_id = ?
		 ORDER BY l.updated_at DESC, l.id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing shared lists: %w", err)
	}
	defer rows.Close()

	var lists []model.List
	for rows.Next() {
		var l model.List
		if err := rows.Scan(&l.ID, &l.UserID, &l.RoadtripID, &l.Name, &l.CreatedAt, &l.UpdatedAt, &l.Permission, &l.OwnerName); err != nil {
			return nil, fmt.Errorf("scanning shared list: %w", err)
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// RenameList updates a list's name.
func RenameList(ctx context.Context, db *sql.DB, id int64, name string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE lists SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, id,
	)
	if err != nil {
		return fmt.Errorf("renaming list: %w", err)
	}
	return nil
}

// TouchList bumps a list's updated_at, used when its items change.
func TouchList(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE lists SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("touching list: %w", err)
	}
	return nil
}

// DeleteList deletes a list; items, shares and borrow requests cascade.
func DeleteList(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting list: %w", err)
	}
	return nil
}

// executor is the subset of *sql.DB and *sql.Tx the store needs for writes
// that may run inside a transaction.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
