package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sacirovic/rallebola/internal/model"
)

// UpsertBorrowRequest inserts a borrow request or, if the (item, requester)
// pair already has one, resets it to pending with the new message and a
// refreshed timestamp. Re-requesting after rejection or return deliberately
// reopens the request instead of failing.
func UpsertBorrowRequest(ctx context.Context, db *sql.DB, itemID, requesterID int64, message string) (*model.BorrowRequest, error) {
	_, err := db.ExecContext(ctx,
		`INSERT INTO borrow_requests (item_id, requester_id, message)
		 VALUES (?, ?, ?)
		 ON CONFLICT (item_id, requester_id) DO UPDATE SET
		   message = excluded.message,
		   status = 'pending',
		   updated_at = CURRENT_TIMESTAMP`,
		itemID, requesterID, nullable(message),
	)
	if err != nil {
		return nil, fmt.Errorf("upserting borrow request: %w", err)
	}

	return GetBorrowRequestByPair(ctx, db, itemID, requesterID)
}

// borrowSelect joins the display and ownership fields every borrow read
// needs. The owner party of a trip-owned list is the roadtrip's owner.
const borrowSelect = `
	SELECT br.id, br.item_id, br.requester_id, br.status, br.message,
	       br.created_at, br.updated_at,
	       i.name, l.id, l.name,
	       COALESCE(l.user_id, r.owner_id),
	       ou.name, ru.name, ru.email
	FROM borrow_requests br
	JOIN items i ON i.id = br.item_id
	JOIN lists l ON l.id = i.list_id
	LEFT JOIN roadtrips r ON r.id = l.roadtrip_id
	JOIN users ou ON ou.id = COALESCE(l.user_id, r.owner_id)
	JOIN users ru ON ru.id = br.requester_id`

func scanBorrowRequest(row interface{ Scan(...any) error }) (*model.BorrowRequest, error) {
	br := &model.BorrowRequest{}
	var message sql.NullString
	err := row.Scan(&br.ID, &br.ItemID, &br.RequesterID, &br.Status, &message,
		&br.CreatedAt, &br.UpdatedAt,
		&br.ItemName, &br.ListID, &br.ListName,
		&br.OwnerID, &br.OwnerName, &br.RequesterName, &br.RequesterEmail)
	if err != nil {
		return nil, err
	}
	br.Message = message.String
	return br, nil
}

// GetBorrowRequest returns a borrow request by ID.
func GetBorrowRequest(ctx context.Context, db *sql.DB, id int64) (*model.BorrowRequest, error) {
	row := db.QueryRowContext(ctx, borrowSelect+` WHERE br.id = ?`, id)
	br, err := scanBorrowRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting borrow request: %w", err)
	}
	return br, nil
}

// GetBorrowRequestByPair returns the borrow request for an (item, requester)
// pair, of which at most one exists.
func GetBorrowRequestByPair(ctx context.Context, db *sql.DB, itemID, requesterID int64) (*model.BorrowRequest, error) {
	row := db.QueryRowContext(ctx,
		borrowSelect+` WHERE br.item_id = ? AND br.requester_id = ?`, itemID, requesterID)
	br, err := scanBorrowRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting borrow request by pair: %w", err)
	}
	return br, nil
}

// ListIncomingBorrowRequests returns requests for items on lists the user
// is the owner party of, newest-updated first.
func ListIncomingBorrowRequests(ctx context.Context, db *sql.DB, userID int64) ([]model.BorrowRequest, error) {
	rows, err := db.QueryContext(ctx,
		borrowSelect+`
		 WHERE COALESCE(l.user_id, r.owner_id) = ?
		 ORDER BY br.updated_at DESC, br.id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing incoming borrow requests: %w", err)
	}
	defer rows.Close()

	return collectBorrowRequests(rows)
}

// ListOutgoingBorrowRequests returns requests the user made, newest-updated
// first.
func ListOutgoingBorrowRequests(ctx context.Context, db *sql.DB, userID int64) ([]model.BorrowRequest, error) {
	rows, err := db.QueryContext(ctx,
		borrowSelect+`
		 WHERE br.requester_id = ?
		 ORDER BY br.updated_at DESC, br.id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing outgoing borrow requests: %w", err)
	}
	defer rows.Close()

	return collectBorrowRequests(rows)
}

func collectBorrowRequests(rows *sql.Rows) ([]model.BorrowRequest, error) {
	var requests []model.BorrowRequest
	for rows.Next() {
		br, err := scanBorrowRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning borrow request: %w", err)
		}
		requests = append(requests, *br)
	}
	return requests, rows.Err()
}

// SetBorrowRequestStatus writes a request's status. Transition legality is
// decided by the caller; this is the single status write.
func SetBorrowRequestStatus(ctx context.Context, db *sql.DB, id int64, status string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE borrow_requests SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("setting borrow request status: %w", err)
	}
	return nil
}
