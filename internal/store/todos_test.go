package store

import (
	"context"
	"testing"

	"github.com/Sacirovic/rallebola/internal/db"
)

func TestCreateTodoAssignsPositions(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner, _ := CreateUser(ctx, database, "Ana", "ana@example.com", "hash")
	trip, _ := CreateRoadtrip(ctx, database, owner.ID, "Lofoten", nil)

	first, err := CreateTodo(ctx, database, trip.ID, "Book ferry")
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	second, _ := CreateTodo(ctx, database, trip.ID, "Pack tent")

	if first.Position >= second.Position {
		t.Errorf("positions not increasing: %d then %d", first.Position, second.Position)
	}
	if first.Done {
		t.Error("new todo should not be done")
	}
}

func TestReorderTodos(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner, _ := CreateUser(ctx, database, "Ana", "ana@example.com", "hash")
	trip, _ := CreateRoadtrip(ctx, database, owner.ID, "Lofoten", nil)
	other, _ := CreateRoadtrip(ctx, database, owner.ID, "Alps", nil)

	a, _ := CreateTodo(ctx, database, trip.ID, "a")
	b, _ := CreateTodo(ctx, database, trip.ID, "b")
	c, _ := CreateTodo(ctx, database, trip.ID, "c")
	foreign, _ := CreateTodo(ctx, database, other.ID, "other trip")

	// The foreign id is scoped out, not moved.
	if err := ReorderTodos(ctx, database, trip.ID, []int64{c.ID, a.ID, b.ID, foreign.ID}); err != nil {
		t.Fatalf("ReorderTodos: %v", err)
	}

	todos, _ := ListTodos(ctx, database, trip.ID)
	if len(todos) != 3 {
		t.Fatalf("expected 3 todos, got %d", len(todos))
	}
	for i, want := range []string{"c", "a", "b"} {
		if todos[i].Text != want {
			t.Errorf("todos[%d] = %q, want %q", i, todos[i].Text, want)
		}
	}

	otherTodos, _ := ListTodos(ctx, database, other.ID)
	if len(otherTodos) != 1 || otherTodos[0].Text != "other trip" {
		t.Errorf("other trip's todos changed: %+v", otherTodos)
	}
}

func TestUpdateAndDeleteTodoScoped(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	owner, _ := CreateUser(ctx, database, "Ana", "ana@example.com", "hash")
	trip, _ := CreateRoadtrip(ctx, database, owner.ID, "Lofoten", nil)
	other, _ := CreateRoadtrip(ctx, database, owner.ID, "Alps", nil)
	todo, _ := CreateTodo(ctx, database, trip.ID, "Book ferry")

	done := true
	updated, err := UpdateTodo(ctx, database, todo.ID, trip.ID, TodoUpdate{Done: &done})
	if err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
	if updated == nil || !updated.Done {
		t.Errorf("expected done todo, got %+v", updated)
	}

	// Wrong trip cannot touch it.
	if got, _ := GetTodo(ctx, database, todo.ID, other.ID); got != nil {
		t.Error("expected todo to be invisible from another trip")
	}
	DeleteTodo(ctx, database, todo.ID, other.ID)
	if got, _ := GetTodo(ctx, database, todo.ID, trip.ID); got == nil {
		t.Error("todo deleted through the wrong trip scope")
	}

	DeleteTodo(ctx, database, todo.ID, trip.ID)
	if got, _ := GetTodo(ctx, database, todo.ID, trip.ID); got != nil {
		t.Error("expected todo to be deleted")
	}
}
