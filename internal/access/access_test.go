package access

import (
	"context"
	"testing"

	"github.com/Sacirovic/rallebola/internal/db"
	"github.com/Sacirovic/rallebola/internal/model"
	"github.com/Sacirovic/rallebola/internal/store"
)

func TestResolvePrecedence(t *testing.T) {
	const userID = int64(7)

	tests := []struct {
		name     string
		grants   Grants
		expected model.Permission
	}{
		{
			name:     "missing list",
			grants:   Grants{},
			expected: model.PermissionNone,
		},
		{
			name:     "personal owner",
			grants:   Grants{ListExists: true, OwnerID: userID},
			expected: model.PermissionOwner,
		},
		{
			name:     "view share",
			grants:   Grants{ListExists: true, OwnerID: 1, Share: model.PermissionView},
			expected: model.PermissionView,
		},
		{
			name:     "edit share",
			grants:   Grants{ListExists: true, OwnerID: 1, Share: model.PermissionEdit},
			expected: model.PermissionEdit,
		},
		{
			// Ownership is checked before shares, so a stray share row can
			// never downgrade the owner.
			name:     "owner with share row",
			grants:   Grants{ListExists: true, OwnerID: userID, Share: model.PermissionView},
			expected: model.PermissionOwner,
		},
		{
			name:     "trip owner gets edit, not owner",
			grants:   Grants{ListExists: true, RoadtripID: 3, TripOwnerID: userID},
			expected: model.PermissionEdit,
		},
		{
			name:     "trip member gets edit",
			grants:   Grants{ListExists: true, RoadtripID: 3, TripOwnerID: 1, TripMember: true},
			expected: model.PermissionEdit,
		},
		{
			name:     "stranger on personal list",
			grants:   Grants{ListExists: true, OwnerID: 1},
			expected: model.PermissionNone,
		},
		{
			name:     "stranger on trip list",
			grants:   Grants{ListExists: true, RoadtripID: 3, TripOwnerID: 1},
			expected: model.PermissionNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.grants, userID)
			if got != tt.expected {
				t.Errorf("Resolve(%+v, %d) = %q, want %q", tt.grants, userID, got, tt.expected)
			}
		})
	}
}

func TestResolveIsStable(t *testing.T) {
	g := Grants{ListExists: true, OwnerID: 1, Share: model.PermissionView}
	first := Resolve(g, 7)
	for i := 0; i < 3; i++ {
		if got := Resolve(g, 7); got != first {
			t.Fatalf("Resolve changed between calls: %q then %q", first, got)
		}
	}
}

func TestResolveListGrantPaths(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner, _ := store.CreateUser(ctx, database, "Ana", "ana@example.com", "x")
	friend, _ := store.CreateUser(ctx, database, "Bo", "bo@example.com", "x")
	stranger, _ := store.CreateUser(ctx, database, "Cato", "cato@example.com", "x")

	list, err := store.CreateList(ctx, database, owner.ID, "Camping gear")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	perm, err := ResolveList(ctx, database, list.ID, owner.ID)
	if err != nil {
		t.Fatalf("ResolveList(owner): %v", err)
	}
	if perm != model.PermissionOwner {
		t.Errorf("owner resolved to %q, want owner", perm)
	}

	if perm, _ = ResolveList(ctx, database, list.ID, stranger.ID); perm != model.PermissionNone {
		t.Errorf("stranger resolved to %q, want none", perm)
	}

	// A missing list is indistinguishable from a forbidden one.
	if perm, _ = ResolveList(ctx, database, 9999, owner.ID); perm != model.PermissionNone {
		t.Errorf("missing list resolved to %q, want none", perm)
	}

	store.UpsertShare(ctx, database, list.ID, friend.ID, model.PermissionView)
	if perm, _ = ResolveList(ctx, database, list.ID, friend.ID); perm != model.PermissionView {
		t.Errorf("view grantee resolved to %q, want view", perm)
	}

	// Upserting a new level replaces the grant rather than stacking.
	store.UpsertShare(ctx, database, list.ID, friend.ID, model.PermissionEdit)
	if perm, _ = ResolveList(ctx, database, list.ID, friend.ID); perm != model.PermissionEdit {
		t.Errorf("edit grantee resolved to %q, want edit", perm)
	}
}

func TestResolveListRoadtripPaths(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner, _ := store.CreateUser(ctx, database, "Ana", "ana@example.com", "x")
	member, _ := store.CreateUser(ctx, database, "Bo", "bo@example.com", "x")

	trip, err := store.CreateRoadtrip(ctx, database, owner.ID, "Lofoten", nil)
	if err != nil {
		t.Fatalf("CreateRoadtrip: %v", err)
	}
	grocery, err := store.GetRoadtripGroceryList(ctx, database, trip.ID)
	if err != nil || grocery == nil {
		t.Fatalf("GetRoadtripGroceryList: %v, list %v", err, grocery)
	}

	// Trip owner edits trip resources but never personally owns them.
	perm, _ := ResolveList(ctx, database, grocery.ID, owner.ID)
	if perm != model.PermissionEdit {
		t.Errorf("trip owner resolved to %q, want edit", perm)
	}

	if perm, _ = ResolveList(ctx, database, grocery.ID, member.ID); perm != model.PermissionNone {
		t.Errorf("non-member resolved to %q, want none", perm)
	}

	// Membership grants edit immediately, and revoking drops it immediately.
	store.AddRoadtripMember(ctx, database, trip.ID, member.ID)
	if perm, _ = ResolveList(ctx, database, grocery.ID, member.ID); perm != model.PermissionEdit {
		t.Errorf("member resolved to %q, want edit", perm)
	}

	store.RemoveRoadtripMember(ctx, database, trip.ID, member.ID)
	if perm, _ = ResolveList(ctx, database, grocery.ID, member.ID); perm != model.PermissionNone {
		t.Errorf("removed member resolved to %q, want none", perm)
	}
}
