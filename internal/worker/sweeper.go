// Package worker holds the background session sweeper. Sessions are never
// deleted in the request path; without the sweeper the session table grows
// without bound.
package worker

import (
	"context"
	"log/slog"
	"time"

	"collabcode/backend/internal/store"
)

type SessionSweeper struct {
	store    store.Store
	interval time.Duration
	logger   *slog.Logger
}

func NewSessionSweeper(st store.Store, interval time.Duration, logger *slog.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionSweeper{store: st, interval: interval, logger: logger}
}

// Run sweeps expired sessions on every tick until ctx is cancelled.
func (s *SessionSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.store.DeleteExpiredSessions(ctx)
			if err != nil {
				s.logger.Error("session sweep failed", "error", err)
				continue
			}
			if deleted > 0 {
				s.logger.Info("expired sessions removed", "count", deleted)
			}
		}
	}
}
