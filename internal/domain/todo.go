package domain

import (
	"errors"
	"time"
)

var ErrTodoNotFound = errors.New("todo not found")

type Todo struct {
	ID        string
	CreatorID string
	Text      string
	Completed bool

	// CompletedAt is epoch milliseconds; non-nil exactly when Completed is true.
	CompletedAt *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
