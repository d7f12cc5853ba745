package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

// HeaderAuth is the request header carrying the session token.
const HeaderAuth = "x-auth"

// Context keys set by Auth for downstream handlers.
const (
	ContextUser  = "user"
	ContextToken = "token"
)

// Authenticator is the subset of AuthUsecase the middleware needs.
// Defined here (point of use) so tests can inject a fake.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*domain.User, error)
}

// Auth resolves the x-auth token to a user and stores both in the gin
// context. Any failure is a bare 401 with an empty body so the response
// never hints at whether the token ever existed.
func Auth(auth Authenticator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderAuth)
		if raw == "" {
			metrics.AuthRejectionsTotal.Inc()
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), raw)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthorized) {
				logger.ErrorContext(c.Request.Context(), "authenticate", "error", err)
			}
			metrics.AuthRejectionsTotal.Inc()
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextToken, raw)
		c.Next()
	}
}

// UserFrom returns the authenticated user set by Auth.
func UserFrom(c *gin.Context) *domain.User {
	u, _ := c.Get(ContextUser)
	user, _ := u.(*domain.User)
	return user
}

// TokenFrom returns the raw session token set by Auth.
func TokenFrom(c *gin.Context) string {
	return c.GetString(ContextToken)
}
