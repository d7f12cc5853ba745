package repository

import (
	"context"
	"time"

	"github.com/ErlanBelekov/todo-api/internal/domain"
)

// UseCase depends on interface, not concrete implementation.
// This way we get: 1) can swap DB later without touching usecase 2) We can pass a mock implementation of interface in tests
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// Token-list management. Membership of a row in the list is what makes a
	// signed token live; logout removes the row and thereby revokes it.
	AddToken(ctx context.Context, t *domain.SessionToken) error
	HasToken(ctx context.Context, userID, token string) (bool, error)
	RemoveToken(ctx context.Context, userID, token string) error
	DeleteExpiredTokens(ctx context.Context, cutoff time.Time) (int64, error)
}
