package store

import (
	"context"
	"testing"

	"github.com/Sacirovic/rallebola/internal/db"
	"github.com/Sacirovic/rallebola/internal/model"
)

func TestUpsertBorrowRequestResets(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner, _ := CreateUser(ctx, database, "Ana", "ana@example.com", "hash")
	requester, _ := CreateUser(ctx, database, "Bo", "bo@example.com", "hash")
	list, _ := CreateList(ctx, database, owner.ID, "Tools")
	item, _ := CreateItem(ctx, database, list.ID, "Drill", 1, "")

	first, err := UpsertBorrowRequest(ctx, database, item.ID, requester.ID, "first")
	if err != nil {
		t.Fatalf("UpsertBorrowRequest: %v", err)
	}
	if first.Status != model.BorrowPending {
		t.Errorf("status = %q, want pending", first.Status)
	}

	if err := SetBorrowRequestStatus(ctx, database, first.ID, model.BorrowRejected); err != nil {
		t.Fatalf("SetBorrowRequestStatus: %v", err)
	}

	second, err := UpsertBorrowRequest(ctx, database, item.ID, requester.ID, "second")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert created a new row: %d -> %d", first.ID, second.ID)
	}
	if second.Status != model.BorrowPending {
		t.Errorf("status = %q, want pending after re-request", second.Status)
	}
	if second.Message != "second" {
		t.Errorf("message = %q, want 'second'", second.Message)
	}
}

func TestBorrowRequestJoinsDisplayFields(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner, _ := CreateUser(ctx, database, "Ana", "ana@example.com", "hash")
	requester, _ := CreateUser(ctx, database, "Bo", "bo@example.com", "hash")
	list, _ := CreateList(ctx, database, owner.ID, "Tools")
	item, _ := CreateItem(ctx, database, list.ID, "Drill", 1, "")

	request, _ := UpsertBorrowRequest(ctx, database, item.ID, requester.ID, "")
	got, err := GetBorrowRequest(ctx, database, request.ID)
	if err != nil {
		t.Fatalf("GetBorrowRequest: %v", err)
	}
	if got.ItemName != "Drill" || got.ListName != "Tools" {
		t.Errorf("unexpected joined fields: item %q, list %q", got.ItemName, got.ListName)
	}
	if got.OwnerID != owner.ID || got.OwnerName != "Ana" {
		t.Errorf("owner = %d %q, want %d Ana", got.OwnerID, got.OwnerName, owner.ID)
	}
	if got.RequesterName != "Bo" {
		t.Errorf("requester = %q, want Bo", got.RequesterName)
	}
}

func TestIncomingRequestsUseTripOwner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner, _ := CreateUser(ctx, database, "Ana", "ana@example.com", "hash")
	member, _ := CreateUser(ctx, database, "Bo", "bo@example.com", "hash")
	trip, _ := CreateRoadtrip(ctx, database, owner.ID, "Lofoten", nil)
	AddRoadtripMember(ctx, database, trip.ID, member.ID)

	grocery, _ := GetRoadtripGroceryList(ctx, database, trip.ID)
	item, _ := CreateItem(ctx, database, grocery.ID, "Cooler", 1, "")
	UpsertBorrowRequest(ctx, database, item.ID, member.ID, "")

	incoming, err := ListIncomingBorrowRequests(ctx, database, owner.ID)
	if err != nil {
		t.Fatalf("ListIncomingBorrowRequests: %v", err)
	}
	if len(incoming) != 1 {
		t.Fatalf("expected trip owner to see 1 request, got %d", len(incoming))
	}
	if incoming[0].OwnerID != owner.ID {
		t.Errorf("owner id = %d, want %d", incoming[0].OwnerID, owner.ID)
	}

	outgoing, _ := ListOutgoingBorrowRequests(ctx, database, member.ID)
	if len(outgoing) != 1 {
		t.Errorf("expected requester to see 1 outgoing request, got %d", len(outgoing))
	}
}
