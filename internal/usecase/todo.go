package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/repository"
	"github.com/google/uuid"
)

type TodoUsecase struct {
	repo repository.TodoRepository
}

func NewTodoUsecase(repo repository.TodoRepository) *TodoUsecase {
	return &TodoUsecase{repo: repo}
}

// TodoPatch is the whitelisted update surface. A nil Text leaves the stored
// text alone; Completed nil is treated the same as false.
type TodoPatch struct {
	Text      *string
	Completed *bool
}

func (u *TodoUsecase) Create(ctx context.Context, creatorID, text string) (*domain.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrValidation)
	}

	todo := &domain.Todo{
		CreatorID: creatorID,
		Text:      text,
		Completed: false,
	}
	created, err := u.repo.Create(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return created, nil
}

func (u *TodoUsecase) List(ctx context.Context, creatorID string) ([]*domain.Todo, error) {
	todos, err := u.repo.List(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

func (u *TodoUsecase) GetByID(ctx context.Context, id, creatorID string) (*domain.Todo, error) {
	if !validID(id) {
		return nil, domain.ErrTodoNotFound
	}
	todo, err := u.repo.GetByID(ctx, id, creatorID)
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// UpdateByID derives the completion pair unconditionally: completed=true
// stamps completedAt with the current time, anything else forces both
// completed=false and completedAt=null. Repeated application is idempotent
// apart from the timestamp value.
func (u *TodoUsecase) UpdateByID(ctx context.Context, id, creatorID string, patch TodoPatch) (*domain.Todo, error) {
	if !validID(id) {
		return nil, domain.ErrTodoNotFound
	}

	if patch.Text != nil {
		trimmed := strings.TrimSpace(*patch.Text)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: text must not be empty", domain.ErrValidation)
		}
		patch.Text = &trimmed
	}

	upd := repository.TodoUpdate{Text: patch.Text}
	if patch.Completed != nil && *patch.Completed {
		now := time.Now().UnixMilli()
		upd.Completed = true
		upd.CompletedAt = &now
	}

	todo, err := u.repo.UpdateByID(ctx, id, creatorID, upd)
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func (u *TodoUsecase) DeleteByID(ctx context.Context, id, creatorID string) (*domain.Todo, error) {
	if !validID(id) {
		return nil, domain.ErrTodoNotFound
	}
	todo, err := u.repo.DeleteByID(ctx, id, creatorID)
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// validID guards the repository from malformed ids so that probing with
// garbage ids looks exactly like a miss, per the 404 contract.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
