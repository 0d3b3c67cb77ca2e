package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Sacirovic/rallebola/internal/model"
	"github.com/Sacirovic/rallebola/internal/store"
)

func newUser(t *testing.T, db *sql.DB, name, email string) *model.User {
	t.Helper()
	u, err := store.CreateUser(context.Background(), db, name, email, "hash")
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return u
}

func newList(t *testing.T, db *sql.DB, ownerID int64, name string) *model.List {
	t.Helper()
	l, err := store.CreateList(context.Background(), db, ownerID, name)
	if err != nil {
		t.Fatalf("CreateList(%s): %v", name, err)
	}
	return l
}

func newItem(t *testing.T, db *sql.DB, listID int64, name string) *model.Item {
	t.Helper()
	i, err := store.CreateItem(context.Background(), db, listID, name, 1, "")
	if err != nil {
		t.Fatalf("CreateItem(%s): %v", name, err)
	}
	return i
}
