// Package slog provides logging decorators for the discovery and storage
// interfaces using the standard library's structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

// Ensure LoggingDiscoverer implements samsungdocs.Discoverer.
var _ samsungdocs.Discoverer = (*LoggingDiscoverer)(nil)

// LoggingDiscoverer wraps a Discoverer with operation logging.
type LoggingDiscoverer struct {
	next   samsungdocs.Discoverer
	logger *slog.Logger
}

// NewLoggingDiscoverer creates a new LoggingDiscoverer.
func NewLoggingDiscoverer(next samsungdocs.Discoverer, logger *slog.Logger) *LoggingDiscoverer {
	return &LoggingDiscoverer{next: next, logger: logger}
}

// DiscoverEntryPoint delegates to the wrapped discoverer and logs the outcome.
func (d *LoggingDiscoverer) DiscoverEntryPoint(ctx context.Context, entry samsungdocs.EntryPoint) (pages []samsungdocs.DiscoveredPage, err error) {
	defer func(begin time.Time) {
		d.logger.Info("entry point discovery",
			"section", entry.Section,
			"url", entry.URL,
			"pages", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.DiscoverEntryPoint(ctx, entry)
}
