// Package session holds the background maintenance for the session-token
// list: expired rows serve no purpose (their signatures no longer verify)
// and are pruned so the membership table does not grow without bound.
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/todo-api/internal/metrics"
	"github.com/ErlanBelekov/todo-api/internal/repository"
)

type Reaper struct {
	users    repository.UserRepository
	logger   *slog.Logger
	interval time.Duration
}

func NewReaper(users repository.UserRepository, logger *slog.Logger, interval time.Duration) *Reaper {
	return &Reaper{
		users:    users,
		logger:   logger.With("component", "session_reaper"),
		interval: interval,
	}
}

func (r *Reaper) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("session reaper started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("session reaper shut down")
			return
		case <-ticker.C:
			r.reap(ctx)
		}
	}
}

func (r *Reaper) reap(ctx context.Context) {
	pruned, err := r.users.DeleteExpiredTokens(ctx, time.Now())
	if err != nil {
		r.logger.Error("prune expired tokens", "error", err)
		return
	}
	if pruned > 0 {
		metrics.TokensPrunedTotal.Add(float64(pruned))
		r.logger.Info("pruned expired session tokens", "count", pruned)
	}
}
