package service

import (
	"context"
	"database/sql"

	"github.com/Sacirovic/rallebola/internal/model"
	"github.com/Sacirovic/rallebola/internal/store"
)

// TripManager manages roadtrip membership. A membership row implicitly
// grants edit access to every list the roadtrip owns; the access resolver
// reads the rows this manager writes, with no cache in between, so changes
// take effect on the next resolution.
type TripManager struct {
	DB *sql.DB
}

// ownedRoadtrip loads a roadtrip if the caller owns it.
func (m *TripManager) ownedRoadtrip(ctx context.Context, roadtripID, ownerID int64) (*model.Roadtrip, error) {
	trip, err := store.GetRoadtrip(ctx, m.DB, roadtripID)
	if err != nil {
		return nil, err
	}
	if trip == nil || trip.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return trip, nil
}

// AddMember adds the user with the given email as a traveller. The owner
// is implicitly a traveller and cannot be added; a concurrent double-add
// races on the membership primary key and loses deterministically.
func (m *TripManager) AddMember(ctx context.Context, roadtripID, ownerID int64, email string) (*model.Member, error) {
	if _, err := m.ownedRoadtrip(ctx, roadtripID, ownerID); err != nil {
		return nil, err
	}

	user, err := store.GetUserByEmail(ctx, m.DB, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	if user.ID == ownerID {
		return nil, ErrAlreadyOwner
	}

	conflict, err := store.AddRoadtripMember(ctx, m.DB, roadtripID, user.ID)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrAlreadyMember
	}

	return &model.Member{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// RemoveMember revokes a membership. Removing a user who is not a member
// succeeds without effect.
func (m *TripManager) RemoveMember(ctx context.Context, roadtripID, ownerID, memberUserID int64) error {
	if _, err := m.ownedRoadtrip(ctx, roadtripID, ownerID); err != nil {
		return err
	}
	return store.RemoveRoadtripMember(ctx, m.DB, roadtripID, memberUserID)
}
