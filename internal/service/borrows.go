package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/Sacirovic/rallebola/internal/access"
	"github.com/Sacirovic/rallebola/internal/model"
	"github.com/Sacirovic/rallebola/internal/notify"
	"github.com/Sacirovic/rallebola/internal/store"
)

// BorrowEngine runs the borrow-request workflow: a per-(item, requester)
// state machine where the lender decides pending requests and the borrower
// attests the return.
type BorrowEngine struct {
	DB       *sql.DB
	Notifier notify.Notifier
}

// Create files a borrow request for an item. The requester needs any
// visibility on the item's list (a view share is enough); the owner party
// of the list cannot borrow from it. If the pair already has a request in
// any state it is reset to pending with the new message, as an explicit
// re-request rather than an error.
func (e *BorrowEngine) Create(ctx context.Context, itemID, requesterID int64, message string) (*model.BorrowRequest, error) {
	item, err := store.GetItem(ctx, e.DB, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}

	ownerID, err := e.listOwnerParty(ctx, item.ListID)
	if err != nil {
		return nil, err
	}
	if ownerID == requesterID {
		return nil, ErrSelfBorrow
	}

	perm, err := access.ResolveList(ctx, e.DB, item.ListID, requesterID)
	if err != nil {
		return nil, err
	}
	if perm == model.PermissionNone {
		return nil, ErrNoAccess
	}

	request, err := store.UpsertBorrowRequest(ctx, e.DB, itemID, requesterID, message)
	if err != nil {
		return nil, err
	}

	e.notifyOwner(ctx, request)

	return request, nil
}

// listOwnerParty returns the user who answers for a list: its personal
// owner, or the owner of the roadtrip that owns it.
func (e *BorrowEngine) listOwnerParty(ctx context.Context, listID int64) (int64, error) {
	list, err := store.GetList(ctx, e.DB, listID)
	if err != nil {
		return 0, err
	}
	if list == nil {
		return 0, ErrNotFound
	}
	if list.UserID != nil {
		return *list.UserID, nil
	}

	trip, err := store.GetRoadtrip(ctx, e.DB, *list.RoadtripID)
	if err != nil {
		return 0, err
	}
	if trip == nil {
		return 0, ErrNotFound
	}
	return trip.OwnerID, nil
}

// notifyOwner schedules a best-effort notification to the list owner.
// Delivery runs detached from the request; failures are logged and
// swallowed so mail infrastructure can never fail a borrow request.
func (e *BorrowEngine) notifyOwner(ctx context.Context, request *model.BorrowRequest) {
	owner, err := store.GetUser(ctx, e.DB, request.OwnerID)
	if err != nil || owner == nil {
		slog.Warn("skipping borrow notification, owner lookup failed",
			"request_id", request.ID, "owner_id", request.OwnerID, "error", err)
		return
	}

	note := notify.BorrowRequested{
		OwnerName:     owner.Name,
		OwnerEmail:    owner.Email,
		RequesterName: request.RequesterName,
		ItemName:      request.ItemName,
		ListName:      request.ListName,
		Message:       request.Message,
	}

	go func() {
		if err := e.Notifier.BorrowRequested(context.Background(), note); err != nil {
			slog.Warn("borrow notification failed", "request_id", request.ID, "error", err)
		}
	}()
}

// Transition moves a request through the workflow. Only the two parties
// may act, each with a disjoint set of legal moves: the list owner decides
// a pending request (approve or reject), the requester returns an approved
// one. Rejected and returned are terminal.
func (e *BorrowEngine) Transition(ctx context.Context, requestID, actingUserID int64, target string) (*model.BorrowRequest, error) {
	request, err := store.GetBorrowRequest(ctx, e.DB, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrNotFound
	}

	isOwner := request.OwnerID == actingUserID
	isRequester := request.RequesterID == actingUserID
	if !isOwner && !isRequester {
		return nil, ErrForbidden
	}

	allowed := isOwner && model.CanTransition(model.BorrowRoleOwner, request.Status, target) ||
		isRequester && model.CanTransition(model.BorrowRoleRequester, request.Status, target)
	if !allowed {
		return nil, ErrIllegalTransition
	}

	if err := store.SetBorrowRequestStatus(ctx, e.DB, requestID, target); err != nil {
		return nil, err
	}

	return store.GetBorrowRequest(ctx, e.DB, requestID)
}

// ListIncoming returns requests for items on lists the user answers for,
// newest-updated first.
func (e *BorrowEngine) ListIncoming(ctx context.Context, userID int64) ([]model.BorrowRequest, error) {
	return store.ListIncomingBorrowRequests(ctx, e.DB, userID)
}

// ListOutgoing returns requests the user made, newest-updated first.
func (e *BorrowEngine) ListOutgoing(ctx context.Context, userID int64) ([]model.BorrowRequest, error) {
	return store.ListOutgoingBorrowRequests(ctx, e.DB, userID)
}
