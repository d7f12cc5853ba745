package domain

import (
	"errors"
	"time"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrUnauthorized       = errors.New("unauthorized")
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SessionToken is one entry in a user's active-token list. A signed token
// that is no longer listed here is revoked, regardless of its signature.
type SessionToken struct {
	UserID    string
	Access    string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// AccessAuth is the only token purpose the API accepts.
const AccessAuth = "auth"
