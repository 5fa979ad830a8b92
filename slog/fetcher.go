package slog

import (
	"context"
	"log/slog"
	"time"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

// Ensure LoggingDocumentFetcher implements samsungdocs.DocumentFetcher.
var _ samsungdocs.DocumentFetcher = (*LoggingDocumentFetcher)(nil)

// LoggingDocumentFetcher wraps a DocumentFetcher with operation logging.
type LoggingDocumentFetcher struct {
	next   samsungdocs.DocumentFetcher
	logger *slog.Logger
}

// NewLoggingDocumentFetcher creates a new LoggingDocumentFetcher.
func NewLoggingDocumentFetcher(next samsungdocs.DocumentFetcher, logger *slog.Logger) *LoggingDocumentFetcher {
	return &LoggingDocumentFetcher{next: next, logger: logger}
}

// FetchDocument delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingDocumentFetcher) FetchDocument(ctx context.Context, key samsungdocs.PageKey) (doc *samsungdocs.FetchedDocument, err error) {
	defer func(begin time.Time) {
		var size int
		if doc != nil {
			size = len(doc.Markdown)
		}
		f.logger.Info("document fetch",
			"key", key,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchDocument(ctx, key)
}
