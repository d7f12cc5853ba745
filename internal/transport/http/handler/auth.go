package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Logout(ctx context.Context, userID, rawToken string) error
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type registerRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// userResponse deliberately has no password field of any kind.
type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// POST /users
// Creates the account and opens the first session; the token travels in
// the x-auth response header, never in the body.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, signed, err := h.authUsecase.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": errDuplicateEmail})
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.ErrorContext(c.Request.Context(), "register", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": errBadRequest})
		}
		return
	}

	c.Header(middleware.HeaderAuth, signed)
	c.JSON(http.StatusOK, newUserResponse(user))
}

// POST /users/login
// Unknown email and wrong password produce the same response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, signed, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidCredentials})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadRequest})
		return
	}

	c.Header(middleware.HeaderAuth, signed)
	c.JSON(http.StatusOK, newUserResponse(user))
}

// GET /users/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.UserFrom(c)
	c.JSON(http.StatusOK, newUserResponse(user))
}

// DELETE /users/me/token
// Revokes exactly the token the request was authenticated with.
func (h *AuthHandler) Logout(c *gin.Context) {
	user := middleware.UserFrom(c)
	raw := middleware.TokenFrom(c)

	if err := h.authUsecase.Logout(c.Request.Context(), user.ID, raw); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "logout", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadRequest})
		return
	}

	c.Status(http.StatusOK)
}
