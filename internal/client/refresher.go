package client

import (
	"context"
	"log/slog"
	"time"
)

// DefaultRefreshInterval is how often the dashboard badge re-reads the
// unread count.
const DefaultRefreshInterval = 30 * time.Second

// CountRefresher periodically refreshes the unread-form count and
// pushes it to a callback. Failures keep the last known value; the next
// tick tries again.
type CountRefresher struct {
	backend  *Backend
	interval time.Duration
	onCount  func(int)
	logger   *slog.Logger
}

func NewCountRefresher(backend *Backend, interval time.Duration, onCount func(int), logger *slog.Logger) *CountRefresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &CountRefresher{backend: backend, interval: interval, onCount: onCount, logger: logger}
}

// Run blocks until the context is cancelled. An immediate first read
// primes the badge before the first tick.
func (r *CountRefresher) Run(ctx context.Context) error {
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *CountRefresher) refresh(ctx context.Context) {
	// Invalidate first so the read hits the service, not the cache.
	r.backend.Cache().Invalidate(CacheNewCount)
	count, err := r.backend.NewCount(ctx)
	if err != nil {
		r.logger.WarnContext(ctx, "unread count refresh failed", "error", err.Error())
		return
	}
	r.onCount(count)
}
