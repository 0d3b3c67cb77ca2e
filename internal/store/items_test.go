package store

import (
	"context"
	"testing"

	"github.com/Sacirovic/rallebola/internal/db"
)

func TestCreateItemClampsQuantity(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "Ana", "ana@example.com", "hash")
	list, _ := CreateList(ctx, database, user.ID, "Tools")

	item, err := CreateItem(ctx, database, list.ID, "Drill", 0, "")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", item.Quantity)
	}

	item, _ = CreateItem(ctx, database, list.ID, "Clamps", 4, "blue case")
	if item.Quantity != 4 {
		t.Errorf("quantity = %d, want 4", item.Quantity)
	}
	if item.Notes != "blue case" {
		t.Errorf("notes = %q, want 'blue case'", item.Notes)
	}
}

func TestGetItemInListScoping(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "Ana", "ana@example.com", "hash")
	first, _ := CreateList(ctx, database, user.ID, "Tools")
	second, _ := CreateList(ctx, database, user.ID, "Kitchen")
	item, _ := CreateItem(ctx, database, first.ID, "Drill", 1, "")

	got, err := GetItemInList(ctx, database, item.ID, first.ID)
	if err != nil {
		t.Fatalf("GetItemInList: %v", err)
	}
	if got == nil {
		t.Fatal("expected item in its own list")
	}

	got, err = GetItemInList(ctx, database, item.ID, second.ID)
	if err != nil {
		t.Fatalf("GetItemInList: %v", err)
	}
	if got != nil {
		t.Error("expected no item when scoped to another list")
	}
}

func TestUpdateItemPartial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "Ana", "ana@example.com", "hash")
	list, _ := CreateList(ctx, database, user.ID, "Tools")
	item, _ := CreateItem(ctx, database, list.ID, "Drill", 2, "charger included")

	quantity := 5
	updated, err := UpdateItem(ctx, database, item.ID, ItemUpdate{Quantity: &quantity})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.Quantity != 5 {
		t.Errorf("quantity = %d, want 5", updated.Quantity)
	}
	if updated.Name != "Drill" || updated.Notes != "charger included" {
		t.Errorf("untouched fields changed: %+v", updated)
	}

	// Clearing notes stores NULL, read back as empty.
	empty := ""
	updated, err = UpdateItem(ctx, database, item.ID, ItemUpdate{Notes: &empty})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.Notes != "" {
		t.Errorf("notes = %q, want empty", updated.Notes)
	}

	// No fields set is a no-op.
	updated, err = UpdateItem(ctx, database, item.ID, ItemUpdate{})
	if err != nil {
		t.Fatalf("UpdateItem no-op: %v", err)
	}
	if updated != nil {
		t.Errorf("expected nil result for empty update, got %+v", updated)
	}
}

func TestListItemsInCreatedOrder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "Ana", "ana@example.com", "hash")
	list, _ := CreateList(ctx, database, user.ID, "Tools")
	CreateItem(ctx, database, list.ID, "first", 1, "")
	CreateItem(ctx, database, list.ID, "second", 1, "")
	CreateItem(ctx, database, list.ID, "third", 1, "")

	items, err := ListItems(ctx, database, list.ID)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, want := range []string{"first", "second", "third"} {
		if items[i].Name != want {
			t.Errorf("items[%d] = %q, want %q", i, items[i].Name, want)
		}
	}
}
