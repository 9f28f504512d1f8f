// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package janitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/Sonu99kr/Assignment/metrics"
	"github.com/Sonu99kr/Assignment/poll"
)

// LimiterIdle is how long a client may be silent before its rate limiter
// state is dropped.
const LimiterIdle = 10 * time.Minute

// Sweeper is the part of poll.Store the janitor needs.
type Sweeper interface {
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// Pruner forgets idle per-client state.
type Pruner interface {
	Prune(idle time.Duration) int
}

type Janitor struct {
	store     Sweeper
	limiter   Pruner
	clock     poll.Clock
	retention time.Duration
	interval  time.Duration
	metrics   *metrics.Metrics
}

// New builds a janitor. A zero retention keeps polls forever; limiter may be nil.
func New(store Sweeper, limiter Pruner, clock poll.Clock, retention, interval time.Duration, m *metrics.Metrics) *Janitor {
	if clock == nil {
		clock = poll.SystemClock
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Janitor{
		store:     store,
		limiter:   limiter,
		clock:     clock,
		retention: retention,
		interval:  interval,
		metrics:   m,
	}
}

// Run sweeps every interval until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	slog.Info("janitor started", "interval", j.interval, "retention", j.retention)
	for {
		select {
		case <-ctx.Done():
			slog.Info("janitor stopped")
			return
		case <-ticker.C:
			if _, err := j.Sweep(ctx); err != nil && ctx.Err() == nil {
				slog.Error("janitor sweep failed", "error", err)
			}
		}
	}
}

// Sweep runs one pass and returns how many polls were deleted.
func (j *Janitor) Sweep(ctx context.Context) (int, error) {
	if j.limiter != nil {
		if pruned := j.limiter.Prune(LimiterIdle); pruned > 0 {
			slog.Debug("pruned idle rate limiters", "count", pruned)
		}
	}

	if j.retention <= 0 {
		return 0, nil
	}

	cutoff := j.clock.Now().Add(-j.retention)
	deleted, err := j.store.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		j.metrics.PollsDeleted(deleted)
		slog.Info("deleted expired polls", "count", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}
