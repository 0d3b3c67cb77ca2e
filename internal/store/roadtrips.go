package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Sacirovic/rallebola/internal/model"
)

// GroceryListName is the name given to the list created with each roadtrip.
const GroceryListName = "Groceries"

// CreateRoadtrip creates a roadtrip and its grocery list in one transaction.
func CreateRoadtrip(ctx context.Context, db *sql.DB, ownerID int64, name string, date *string) (*model.Roadtrip, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO roadtrips (owner_id, name, date) VALUES (?, ?, ?)`,
		ownerID, name, date,
	)
	if err != nil {
		return nil, fmt.Errorf("creating roadtrip: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting roadtrip id: %w", err)
	}

	if _, err := CreateRoadtripList(ctx, tx, id, GroceryListName); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing roadtrip: %w", err)
	}

	return GetRoadtrip(ctx, db, id)
}

// GetRoadtrip returns a roadtrip by ID with the owner's name joined in.
func GetRoadtrip(ctx context.Context, db *sql.DB, id int64) (*model.Roadtrip, error) {
	r := &model.Roadtrip{}
	err := db.QueryRowContext(ctx,
		`SELECT r.id, r.owner_id, r.name, r.date, r.created_at, r.updated_at, u.name
		 FROM roadtrips r
		 JOIN users u ON u.id = r.owner_id
		 WHERE r.id = ?`, id,
	).Scan(&r.ID, &r.OwnerID, &r.Name, &r.Date, &r.CreatedAt, &r.UpdatedAt, &r.OwnerName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting roadtrip: %w", err)
	}
	return r, nil
}

// ListRoadtripsForUser returns roadtrips the user owns or travels on,
// newest-updated first, with member and todo counts.
func ListRoadtripsForUser(ctx context.Context, db *sql.DB, userID int64) ([]model.Roadtrip, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT r.id, r.owner_id, r.name, r.date, r.created_at, r.updated_at, u.name,
		        (SELECT COUNT(*) FROM roadtrip_members rm WHERE rm.roadtrip_id = r.id),
		        (SELECT COUNT(*) FROM roadtrip_todos rt WHERE rt.roadtrip_id = r.id)
		 FROM roadtrips r
		 JOIN users u ON u.id = r.owner_id
		 WHERE r.owner_id = ? OR EXISTS (
		   SELECT 1 FROM roadtrip_members rm WHERE rm.roadtrip_id = r.id AND rm.user_id = ?
		 )
		 ORDER BY r.updated_at DESC, r.id DESC`, userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing roadtrips: %w", err)
	}
	defer rows.Close()

	var trips []model.Roadtrip
	for rows.Next() {
		var r model.Roadtrip
		if err := rows.Scan(&r.ID, &r.OwnerID, &r.Name, &r.Date, &r.CreatedAt, &r.UpdatedAt,
			&r.OwnerName, &r.MemberCount, &r.TodoCount); err != nil {
			return nil, fmt.Errorf("scanning roadtrip: %w", err)
		}
		trips = append(trips, r)
	}
	return trips, rows.Err()
}

// UpdateRoadtrip updates a roadtrip's name and date.
func UpdateRoadtrip(ctx context.Context, db *sql.DB, id int64, name string, date *string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE roadtrips SET name = ?, date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, date, id,
	)
	if err != nil {
		return fmt.Errorf("updating roadtrip: %w", err)
	}
	return nil
}

// DeleteRoadtrip deletes a roadtrip; members, todos and its lists cascade.
func DeleteRoadtrip(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM roadtrips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting roadtrip: %w", err)
	}
	return nil
}

// GetRoadtripGroceryList returns a roadtrip's grocery list, or nil if the
// trip has none.
func GetRoadtripGroceryList(ctx context.Context, db *sql.DB, roadtripID int64) (*model.List, error) {
	l := &model.List{}
	err := db.QueryRowContext(ctx,
		`SELECT id, user_id, roadtrip_id, name, created_at, updated_at
		 FROM lists WHERE roadtrip_id = ? ORDER BY id ASC LIMIT 1`, roadtripID,
	).Scan(&l.ID, &l.UserID, &l.RoadtripID, &l.Name, &l.CreatedAt, &l.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting grocery list: %w", err)
	}
	return l, nil
}

// AddRoadtripMember inserts a membership row. Returns conflict=true when
// the row already exists; a concurrent double-add resolves to the same
// result through the primary key constraint.
func AddRoadtripMember(ctx context.Context, db *sql.DB, roadtripID, userID int64) (conflict bool, err error) {
	_, err = db.ExecContext(ctx,
		`INSERT INTO roadtrip_members (roadtrip_id, user_id) VALUES (?, ?)`,
		roadtripID, userID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return true, nil
		}
		return false, fmt.Errorf("adding roadtrip member: %w", err)
	}
	return false, nil
}

// RemoveRoadtripMember deletes a membership row. Removing a non-member is
// a no-op.
func RemoveRoadtripMember(ctx context.Context, db *sql.DB, roadtripID, userID int64) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM roadtrip_members WHERE roadtrip_id = ? AND user_id = ?`,
		roadtripID, userID,
	)
	if err != nil {
		return fmt.Errorf("removing roadtrip member: %w", err)
	}
	return nil
}

// ListRoadtripMembers returns a roadtrip's members (excluding the owner,
// who is never a member row).
func ListRoadtripMembers(ctx context.Context, db *sql.DB, roadtripID int64) ([]model.Member, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT u.id, u.name, u.email
		 FROM roadtrip_members rm
		 JOIN users u ON u.id = rm.user_id
		 WHERE rm.roadtrip_id = ?
		 ORDER BY rm.created_at ASC, u.id ASC`, roadtripID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing roadtrip members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email); err != nil {
			return nil, fmt.Errorf("scanning roadtrip member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// IsRoadtripMember checks whether a user has a membership row on a trip.
func IsRoadtripMember(ctx context.Context, db *sql.DB, roadtripID, userID int64) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM roadtrip_members WHERE roadtrip_id = ? AND user_id = ?`,
		roadtripID, userID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking roadtrip membership: %w", err)
	}
	return n > 0, nil
}

// isUniqueViolation checks for a SQLite uniqueness constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
