package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sacirovic/rallebola/internal/model"
	"github.com/Sacirovic/rallebola/internal/store"
)

// ShareManager creates, updates and revokes direct view/edit grants on
// personal lists. Only the list's owner may manage its shares; roadtrip
// lists are shared through trip membership instead and are rejected here.
type ShareManager struct {
	DB *sql.DB
}

// ownedList loads a list if the caller personally owns it. Roadtrip-owned
// lists have no personal owner and therefore never pass this check.
func (m *ShareManager) ownedList(ctx context.Context, listID, ownerID int64) (*model.List, error) {
	list, err := store.GetList(ctx, m.DB, listID)
	if err != nil {
		return nil, err
	}
	if list == nil || list.UserID == nil || *list.UserID != ownerID {
		return nil, ErrNotOwner
	}
	return list, nil
}

// UpsertShare grants or updates view/edit access on a list for the user
// with the given email. Re-sharing with a different level changes the
// level in place; there is never more than one share per (list, grantee).
func (m *ShareManager) UpsertShare(ctx context.Context, listID, ownerID int64, granteeEmail string, permission model.Permission) (*model.Share, error) {
	if !model.ValidSharePermission(permission) {
		return nil, fmt.Errorf("permission must be view or edit: %w", ErrInvalidArgument)
	}

	if _, err := m.ownedList(ctx, listID, ownerID); err != nil {
		return nil, err
	}

	grantee, err := store.GetUserByEmail(ctx, m.DB, granteeEmail)
	if err != nil {
		return nil, err
	}
	if grantee == nil {
		return nil, ErrUnknownUser
	}
	if grantee.ID == ownerID {
		return nil, ErrSelfShare
	}

	return store.UpsertShare(ctx, m.DB, listID, grantee.ID, permission)
}

// RemoveShare revokes a grant. The share must belong to the given list.
// The underlying list and its items are untouched.
func (m *ShareManager) RemoveShare(ctx context.Context, listID, shareID, ownerID int64) error {
	if _, err := m.ownedList(ctx, listID, ownerID); err != nil {
		return err
	}

	share, err := store.GetShare(ctx, m.DB, shareID, listID)
	if err != nil {
		return err
	}
	if share == nil {
		return ErrShareNotFound
	}

	return store.DeleteShare(ctx, m.DB, shareID)
}

// ListShares returns a list's shares, for the owner only.
func (m *ShareManager) ListShares(ctx context.Context, listID, ownerID int64) ([]model.Share, error) {
	if _, err := m.ownedList(ctx, listID, ownerID); err != nil {
		return nil, err
	}
	return store.ListShares(ctx, m.DB, listID)
}
