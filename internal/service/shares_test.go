package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Sacirovic/rallebola/internal/db"
	"github.com/Sacirovic/rallebola/internal/model"
	"github.com/Sacirovic/rallebola/internal/store"
)

func TestUpsertShareValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	shares := &ShareManager{DB: database}

	owner := newUser(t, database, "Ana", "ana@example.com")
	friend := newUser(t, database, "Bo", "bo@example.com")
	list := newList(t, database, owner.ID, "Tools")

	// Only view and edit are grantable.
	if _, err := shares.UpsertShare(ctx, list.ID, owner.ID, friend.Email, model.PermissionOwner); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("owner permission: got %v, want ErrInvalidArgument", err)
	}

	// A non-owner always gets NotOwner, even with a perfectly valid grant.
	if _, err := shares.UpsertShare(ctx, list.ID, friend.ID, owner.Email, model.PermissionView); !errors.Is(err, ErrNotOwner) {
		t.Errorf("non-owner caller: got %v, want ErrNotOwner", err)
	}

	if _, err := shares.UpsertShare(ctx, list.ID, owner.ID, "ghost@example.com", model.PermissionView); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("unknown grantee: got %v, want ErrUnknownUser", err)
	}

	if _, err := shares.UpsertShare(ctx, list.ID, owner.ID, owner.Email, model.PermissionView); !errors.Is(err, ErrSelfShare) {
		t.Errorf("self share: got %v, want ErrSelfShare", err)
	}

	// Missing lists and lists the caller cannot touch are the same error.
	if _, err := shares.UpsertShare(ctx, 9999, owner.ID, friend.Email, model.PermissionView); !errors.Is(err, ErrNotOwner) {
		t.Errorf("missing list: got %v, want ErrNotOwner", err)
	}
}

func TestUpsertShareIsIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	shares := &ShareManager{DB: database}

	owner := newUser(t, database, "Ana", "ana@example.com")
	friend := newUser(t, database, "Bo", "bo@example.com")
	list := newList(t, database, owner.ID, "Tools")

	first, err := shares.UpsertShare(ctx, list.ID, owner.ID, friend.Email, model.PermissionView)
	if err != nil {
		t.Fatalf("first share: %v", err)
	}

	// Same grantee, same level: still one row.
	if _, err := shares.UpsertShare(ctx, list.ID, owner.ID, friend.Email, model.PermissionView); err != nil {
		t.Fatalf("repeat share: %v", err)
	}

	// Different level updates in place without removal.
	upgraded, err := shares.UpsertShare(ctx, list.ID, owner.ID, friend.Email, model.PermissionEdit)
	if err != nil {
		t.Fatalf("upgrade share: %v", err)
	}
	if upgraded.ID != first.ID {
		t.Errorf("upgrade created a new row: id %d -> %d", first.ID, upgraded.ID)
	}
	if upgraded.Permission != model.PermissionEdit {
		t.Errorf("permission = %q, want edit", upgraded.Permission)
	}

	all, err := shares.ListShares(ctx, list.ID, owner.ID)
	if err != nil {
		t.Fatalf("ListShares: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected exactly 1 share row, got %d", len(all))
	}
}

func TestShareManagerRejectsRoadtripLists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	shares := &ShareManager{DB: database}

	owner := newUser(t, database, "Ana", "ana@example.com")
	friend := newUser(t, database, "Bo", "bo@example.com")

	trip, err := store.CreateRoadtrip(ctx, database, owner.ID, "Lofoten", nil)
	if err != nil {
		t.Fatalf("CreateRoadtrip: %v", err)
	}
	grocery, _ := store.GetRoadtripGroceryList(ctx, database, trip.ID)

	// Trip lists are shared via membership only, even for the trip owner.
	if _, err := shares.UpsertShare(ctx, grocery.ID, owner.ID, friend.Email, model.PermissionView); !errors.Is(err, ErrNotOwner) {
		t.Errorf("sharing a trip list: got %v, want ErrNotOwner", err)
	}
}

func TestRemoveShare(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	shares := &ShareManager{DB: database}

	owner := newUser(t, database, "Ana", "ana@example.com")
	friend := newUser(t, database, "Bo", "bo@example.com")
	list := newList(t, database, owner.ID, "Tools")
	other := newList(t, database, owner.ID, "Books")
	newItem(t, database, list.ID, "Drill")

	share, err := shares.UpsertShare(ctx, list.ID, owner.ID, friend.Email, model.PermissionView)
	if err != nil {
		t.Fatalf("UpsertShare: %v", err)
	}

	if err := shares.RemoveShare(ctx, list.ID, share.ID, friend.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("non-owner remove: got %v, want ErrNotOwner", err)
	}

	// The share must belong to the list named in the call.
	if err := shares.RemoveShare(ctx, other.ID, share.ID, owner.ID); !errors.Is(err, ErrShareNotFound) {
		t.Errorf("cross-list remove: got %v, want ErrShareNotFound", err)
	}

	if err := shares.RemoveShare(ctx, list.ID, share.ID, owner.ID); err != nil {
		t.Fatalf("RemoveShare: %v", err)
	}

	// Revoking a grant never touches the list or its items.
	if l, _ := store.GetList(ctx, database, list.ID); l == nil {
		t.Error("list deleted by share removal")
	}
	items, _ := store.ListItems(ctx, database, list.ID)
	if len(items) != 1 {
		t.Errorf("expected list items to survive, got %d", len(items))
	}
}
