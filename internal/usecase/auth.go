package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/email"
	"github.com/ErlanBelekov/todo-api/internal/metrics"
	"github.com/ErlanBelekov/todo-api/internal/repository"
	"github.com/ErlanBelekov/todo-api/internal/token"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

var validate = validator.New()

type AuthUsecase struct {
	users  repository.UserRepository
	tokens *token.Issuer
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, tokens *token.Issuer, emailSender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		tokens: tokens,
		email:  emailSender,
		logger: logger.With("component", "auth_usecase"),
	}
}

// Register creates the user and immediately opens a session, so the client
// is logged in right after signing up. The plaintext password is hashed at
// this boundary and never stored or returned.
func (u *AuthUsecase) Register(ctx context.Context, emailAddr, password string) (*domain.User, string, error) {
	if err := validate.Var(emailAddr, "required,email"); err != nil {
		return nil, "", fmt.Errorf("%w: email format", domain.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return nil, "", fmt.Errorf("%w: password shorter than %d characters", domain.ErrValidation, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, emailAddr, string(hash))
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, "", domain.ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	signed, err := u.openSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	// Welcome email is best-effort; registration already succeeded.
	if err := u.email.Send(ctx, user.Email, "Welcome to Todo API",
		"<p>Your account is ready. Keep your x-auth token safe.</p>"); err != nil {
		u.logger.Warn("welcome email", "error", err)
	}

	metrics.RegistrationsTotal.Inc()
	return user, signed, nil
}

// Login verifies credentials and appends a fresh token to the user's list.
// Unknown email and wrong password fail identically.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (*domain.User, string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, err := u.openSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	metrics.LoginsTotal.Inc()
	return user, signed, nil
}

// Logout removes the exact token from the user's list. Removing a token
// that is already gone is not an error.
func (u *AuthUsecase) Logout(ctx context.Context, userID, rawToken string) error {
	if err := u.users.RemoveToken(ctx, userID, rawToken); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// Authenticate resolves a raw token to its user. The signature check alone
// is not enough: the token must still be listed for the user, otherwise a
// logged-out token would keep working until expiry.
func (u *AuthUsecase) Authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	userID, err := u.tokens.Validate(rawToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	listed, err := u.users.HasToken(ctx, userID, rawToken)
	if err != nil {
		return nil, fmt.Errorf("check token membership: %w", err)
	}
	if !listed {
		return nil, domain.ErrUnauthorized
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (u *AuthUsecase) openSession(ctx context.Context, userID string) (string, error) {
	signed, err := u.tokens.Issue(userID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	now := time.Now()
	st := &domain.SessionToken{
		UserID:    userID,
		Access:    domain.AccessAuth,
		Token:     signed,
		CreatedAt: now,
		ExpiresAt: now.Add(u.tokens.TTL()),
	}
	if err := u.users.AddToken(ctx, st); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return signed, nil
}
