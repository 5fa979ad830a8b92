// Package mcp exposes the documentation mirror to MCP clients over stdio.
package mcp

import (
	"context"
	"errors"

	"github.com/mallendeo/samsung-docs-mcp/populate"
)

// DocService is the slice of the populate service the MCP server drives.
type DocService interface {
	Search(ctx context.Context, opts populate.SearchOptions) (*populate.SearchOutput, error)
	Populate(ctx context.Context, opts populate.Options) (*populate.RunResult, error)
	FetchPage(ctx context.Context, ref string) (*populate.PageDocument, error)
	List(ctx context.Context, patterns []string) ([]populate.PageListing, error)
	Clear(ctx context.Context) (int, error)
	Status(ctx context.Context) (*populate.CacheStatus, error)
}

// ErrMissingDocService is returned when a server is built without a doc
// service.
var ErrMissingDocService = errors.New("mcp: doc service is required")

// Ports aggregates the services the MCP server depends on. A single
// injection point keeps the server constructor stable as tools grow.
type Ports struct {
	Docs DocService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Docs == nil {
		return ErrMissingDocService
	}
	return nil
}
