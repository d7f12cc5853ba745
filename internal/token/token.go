// Package token issues and validates the signed opaque strings used as
// session tokens. A token carries the user id and a fixed "auth" purpose;
// revocation is handled elsewhere by list membership, not by the signature.
package token

import (
	"errors"
	"time"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultTTL = 30 * 24 * time.Hour

type Issuer struct {
	key []byte
	ttl time.Duration
}

func NewIssuer(key []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Issuer{key: key, ttl: ttl}
}

// TTL reports how long issued tokens stay structurally valid.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token bound to userID with the fixed "auth" purpose.
// The jti claim makes every issued token distinct even when two sessions
// open for the same user within the same second; without it the claims
// are deterministic at one-second resolution and a repeat issuance would
// collide with the (user_id, token) key in the token list.
func (i *Issuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    userID,
		"access": domain.AccessAuth,
		"jti":    uuid.NewString(),
		"iat":    now.Unix(),
		"exp":    now.Add(i.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.key)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Validate verifies the signature and the "auth" purpose and returns the
// embedded user id. Malformed or tampered input yields domain.ErrTokenInvalid;
// it never distinguishes the failure modes for the caller.
func (i *Issuer) Validate(raw string) (string, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.key, nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrTokenInvalid
	}

	if access, _ := claims["access"].(string); access != domain.AccessAuth {
		return "", domain.ErrTokenInvalid
	}

	userID, _ := claims["sub"].(string)
	if userID == "" {
		return "", domain.ErrTokenInvalid
	}
	return userID, nil
}
