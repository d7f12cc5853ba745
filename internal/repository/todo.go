package repository

import (
	"context"

	"github.com/ErlanBelekov/todo-api/internal/domain"
)

// TodoUpdate carries the already-derived field values for an update. The
// completed/completedAt pair is computed by the usecase; the repository
// writes it as-is. A nil Text keeps the stored text.
type TodoUpdate struct {
	Text        *string
	Completed   bool
	CompletedAt *int64
}

// Every read and write is scoped by creatorID so that a todo owned by
// another user is indistinguishable from one that does not exist.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	List(ctx context.Context, creatorID string) ([]*domain.Todo, error)
	GetByID(ctx context.Context, id, creatorID string) (*domain.Todo, error)
	UpdateByID(ctx context.Context, id, creatorID string, upd TodoUpdate) (*domain.Todo, error)
	DeleteByID(ctx context.Context, id, creatorID string) (*domain.Todo, error)
}
