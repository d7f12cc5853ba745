package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	query := `
		INSERT INTO todos (creator_id, text, completed, completed_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, creator_id, text, completed, completed_at, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query,
		todo.CreatorID, todo.Text, todo.Completed, todo.CompletedAt)

	created, err := scanTodo(row)
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return created, nil
}

func (r *TodoRepository) List(ctx context.Context, creatorID string) ([]*domain.Todo, error) {
	query := `
		SELECT id, creator_id, text, completed, completed_at, created_at, updated_at
		FROM todos
		WHERE creator_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []*domain.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *TodoRepository) GetByID(ctx context.Context, id, creatorID string) (*domain.Todo, error) {
	query := `
		SELECT id, creator_id, text, completed, completed_at, created_at, updated_at
		FROM todos
		WHERE id = $1 AND creator_id = $2`

	return scanTodo(r.pool.QueryRow(ctx, query, id, creatorID))
}

func (r *TodoRepository) UpdateByID(ctx context.Context, id, creatorID string, upd repository.TodoUpdate) (*domain.Todo, error) {
	// The completed/completed_at pair arrives pre-derived from the usecase
	// and is written unconditionally, not merged.
	query := `
		UPDATE todos
		SET    text         = COALESCE($3, text),
		       completed    = $4,
		       completed_at = $5,
		       updated_at   = NOW()
		WHERE id = $1 AND creator_id = $2
		RETURNING id, creator_id, text, completed, completed_at, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query, id, creatorID, upd.Text, upd.Completed, upd.CompletedAt)
	return scanTodo(row)
}

func (r *TodoRepository) DeleteByID(ctx context.Context, id, creatorID string) (*domain.Todo, error) {
	query := `
		DELETE FROM todos
		WHERE id = $1 AND creator_id = $2
		RETURNING id, creator_id, text, completed, completed_at, created_at, updated_at`

	return scanTodo(r.pool.QueryRow(ctx, query, id, creatorID))
}

func scanTodo(row pgx.Row) (*domain.Todo, error) {
	var t domain.Todo
	err := row.Scan(&t.ID, &t.CreatorID, &t.Text, &t.Completed, &t.CompletedAt,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	return &t, nil
}
