package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables on startup if they do not exist yet.
// There is no migration tooling here on purpose; the schema is small and
// additive changes go through new IF NOT EXISTS statements.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS user_tokens (
			user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			access     TEXT NOT NULL DEFAULT 'auth',
			token      TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (user_id, token)
		)`,

		`CREATE INDEX IF NOT EXISTS user_tokens_expires_at_idx
			ON user_tokens (expires_at)`,

		`CREATE TABLE IF NOT EXISTS todos (
			id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			creator_id   UUID NOT NULL REFERENCES users(id),
			text         TEXT NOT NULL,
			completed    BOOLEAN NOT NULL DEFAULT FALSE,
			completed_at BIGINT,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS todos_creator_id_idx
			ON todos (creator_id)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
