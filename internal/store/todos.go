package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sacirovic/rallebola/internal/model"
)

// CreateTodo appends a todo to a roadtrip's list, placing it last.
func CreateTodo(ctx context.Context, db *sql.DB, roadtripID int64, text string) (*model.Todo, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO roadtrip_todos (roadtrip_id, text, position)
		 SELECT ?, ?, COALESCE(MAX(position), 0) + 1
		 FROM roadtrip_todos WHERE roadtrip_id = ?`,
		roadtripID, text, roadtripID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting todo id: %w", err)
	}

	return GetTodo(ctx, db, id, roadtripID)
}

// GetTodo returns a todo by ID, scoped to a roadtrip.
func GetTodo(ctx context.Context, db *sql.DB, id, roadtripID int64) (*model.Todo, error) {
	t := &model.Todo{}
	err := db.QueryRowContext(ctx,
		`SELECT id, roadtrip_id, text, done, position, created_at
		 FROM roadtrip_todos WHERE id = ? AND roadtrip_id = ?`, id, roadtripID,
	).Scan(&t.ID, &t.RoadtripID, &t.Text, &t.Done, &t.Position, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting todo: %w", err)
	}
	return t, nil
}

// ListTodos returns a roadtrip's todos in position order.
func ListTodos(ctx context.Context, db *sql.DB, roadtripID int64) ([]model.Todo, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, roadtrip_id, text, done, position, created_at
		 FROM roadtrip_todos WHERE roadtrip_id = ?
		 ORDER BY position ASC, id ASC`, roadtripID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(&t.ID, &t.RoadtripID, &t.Text, &t.Done, &t.Position, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning todo: %w", err)
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// TodoUpdate carries the fields of a partial todo update. Nil fields are
// left unchanged.
type TodoUpdate struct {
	Text *string
	Done *bool
}

// UpdateTodo applies a partial update to a todo, scoped to a roadtrip.
// Returns the updated todo, or nil if no fields were set.
func UpdateTodo(ctx context.Context, db *sql.DB, id, roadtripID int64, upd TodoUpdate) (*model.Todo, error) {
	set := ""
	var args []any

	if upd.Text != nil {
		set += "text = ?, "
		args = append(args, *upd.Text)
	}
	if upd.Done != nil {
		set += "done = ?, "
		args = append(args, *upd.Done)
	}

	if set == "" {
		return nil, nil
	}

	set = set[:len(set)-2]
	args = append(args, id, roadtripID)
	_, err := db.ExecContext(ctx,
		`UPDATE roadtrip_todos SET `+set+` WHERE id = ? AND roadtrip_id = ?`, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("updating todo: %w", err)
	}

	return GetTodo(ctx, db, id, roadtripID)
}

// ReorderTodos rewrites the positions of a roadtrip's todos to match the
// given ID order. IDs not belonging to the trip are ignored by the scoped
// update; omitted todos keep their old positions and sort after the rest
// only if those positions are higher.
func ReorderTodos(ctx context.Context, db *sql.DB, roadtripID int64, orderedIDs []int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for i, id := range orderedIDs {
		if _, err := tx.ExecContext(ctx,
			`UPDATE roadtrip_todos SET position = ? WHERE id = ? AND roadtrip_id = ?`,
			i+1, id, roadtripID,
		); err != nil {
			return fmt.Errorf("reordering todo %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reorder: %w", err)
	}
	return nil
}

// DeleteTodo deletes a todo, scoped to a roadtrip.
func DeleteTodo(ctx context.Context, db *sql.DB, id, roadtripID int64) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM roadtrip_todos WHERE id = ? AND roadtrip_id = ?`, id, roadtripID,
	)
	if err != nil {
		return fmt.Errorf("deleting todo: %w", err)
	}
	return nil
}
