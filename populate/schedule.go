package populate

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

// DefaultPopulateInterval is how often the scheduler re-populates.
const DefaultPopulateInterval = 7 * 24 * time.Hour

// Scheduler keeps the cache warm: it populates at startup when no full
// populate has ever finished, then re-populates on a fixed interval. Runs
// are single-flight; a tick that lands while a run is active is dropped.
type Scheduler struct {
	Registry  samsungdocs.RegistryStore
	Populator *Populator
	Interval  time.Duration
	Logger    *slog.Logger

	running atomic.Bool
}

func (s *Scheduler) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Run blocks until ctx is canceled. Populate failures are logged and never
// propagate; the next tick tries again.
func (s *Scheduler) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultPopulateInterval
	}

	registry, err := s.Registry.Load(ctx)
	if err == nil && !registry.PopulatedAt.Fetched() {
		s.populate(ctx)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.populate(ctx)
		}
	}
}

// populate runs one populate pass unless another is already in flight.
func (s *Scheduler) populate(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger().Info("populate already running, skipping")
		return
	}
	defer s.running.Store(false)

	if _, err := s.Populator.Run(ctx, Options{}); err != nil {
		s.logger().Error("scheduled populate failed", "err", err)
	}
}
