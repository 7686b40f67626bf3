package repository

import (
	"context"

	"todolist/internal/domain"
)

// TodoRepository exposes persistence operations for Todo records.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Todo, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Todo, error)
	// ToggleComplete flips the flag of the todo with the given id and owner.
	ToggleComplete(ctx context.Context, id, userID int64) error
	// Delete removes the todo with the given id and owner.
	Delete(ctx context.Context, id, userID int64) error
}
