package slog

import (
	"context"
	"log/slog"
	"time"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

// Ensure LoggingRegistryStore implements samsungdocs.RegistryStore.
var _ samsungdocs.RegistryStore = (*LoggingRegistryStore)(nil)

// LoggingRegistryStore wraps a RegistryStore with debug logging. Save runs
// once per fetch batch, so it logs at debug level to keep populate runs
// readable.
type LoggingRegistryStore struct {
	next   samsungdocs.RegistryStore
	logger *slog.Logger
}

// NewLoggingRegistryStore creates a new LoggingRegistryStore.
func NewLoggingRegistryStore(next samsungdocs.RegistryStore, logger *slog.Logger) *LoggingRegistryStore {
	return &LoggingRegistryStore{next: next, logger: logger}
}

// Load delegates to the wrapped store and logs the outcome.
func (s *LoggingRegistryStore) Load(ctx context.Context) (registry *samsungdocs.Registry, err error) {
	defer func(begin time.Time) {
		var pages int
		if registry != nil {
			pages = len(registry.Pages)
		}
		s.logger.Debug("registry load",
			"pages", pages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx)
}

// Save delegates to the wrapped store and logs the outcome.
func (s *LoggingRegistryStore) Save(ctx context.Context, registry *samsungdocs.Registry) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("registry save",
			"pages", len(registry.Pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, registry)
}

// Delete delegates to the wrapped store and logs the outcome.
func (s *LoggingRegistryStore) Delete(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("registry delete",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Delete(ctx)
}
