package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sacirovic/rallebola/internal/model"
)

// UpsertShare inserts a share or, if one already exists for the
// (list, grantee) pair, updates its permission in place. The uniqueness
// constraint is the only concurrency control needed here.
func UpsertShare(ctx context.Context, db *sql.DB, listID, granteeID int64, permission model.Permission) (*model.Share, error) {
	_, err := db.ExecContext(ctx,
		`INSERT INTO list_shares (list_id, shared_with_user_id, permission)
		 VALUES (?, ?, ?)
		 ON CONFLICT (list_id, shared_with_user_id) DO UPDATE SET permission = excluded.permission`,
		listID, granteeID, string(permission),
	)
	if err != nil {
		return nil, fmt.Errorf("upserting share: %w", err)
	}

	return GetShareByGrantee(ctx, db, listID, granteeID)
}

// GetShare returns a share by ID, scoped to a list.
func GetShare(ctx context.Context, db *sql.DB, id, listID int64) (*model.Share, error) {
	s := &model.Share{}
	err := db.QueryRowContext(ctx,
		`SELECT id, list_id, shared_with_user_id, permission, created_at
		 FROM list_shares WHERE id = ? AND list_id = ?`, id, listID,
	).Scan(&s.ID, &s.ListID, &s.UserID, &s.Permission, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting share: %w", err)
	}
	return s, nil
}

// GetShareByGrantee returns the share for a (list, grantee) pair with the
// grantee's display fields joined in.
func GetShareByGrantee(ctx context.Context, db *sql.DB, listID, granteeID int64) (*model.Share, error) {
	s := &model.Share{}
	err := db.QueryRowContext(ctx,
		`SELECT ls.id, ls.list_id, ls.shared_with_user_id, ls.permission, ls.created_at,
		        u.name, u.email
		 FROM list_shares ls
		 JOIN users u ON u.id = ls.shared_with_user_id
		 WHERE ls.list_id = ? AND ls.shared_with_user_id = ?`, listID, granteeID,
	).Scan(&s.ID, &s.ListID, &s.UserID, &s.Permission, &s.CreatedAt, &s.UserName, &s.UserEmail)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting share by grantee: %w", err)
	}
	return s, nil
}

// ListShares returns all shares on a list, oldest first.
func ListShares(ctx context.Context, db *sql.DB, listID int64) ([]model.Share, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT ls.id, ls.list_id, ls.shared_with_user_id, ls.permission, ls.created_at,
		        u.name, u.email
		 FROM list_shares ls
		 JOIN users u ON u.id = ls.shared_with_user_id
		 WHERE ls.list_id = ?
		 ORDER BY ls.created_at ASC, ls.id ASC`, listID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing shares: %w", err)
	}
	defer rows.Close()

	var shares []model.Share
	for rows.Next() {
		var s model.Share
		if err := rows.Scan(&s.ID, &s.ListID, &s.UserID, &s.Permission, &s.CreatedAt, &s.UserName, &s.UserEmail); err != nil {
			return nil, fmt.Errorf("scanning share: %w", err)
		}
		shares = append(shares, s)
	}
	return shares, rows.Err()
}

// DeleteShare deletes a share. Deleting a share never touches the list.
func DeleteShare(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM list_shares WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting share: %w", err)
	}
	return nil
}
