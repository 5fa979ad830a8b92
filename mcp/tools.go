package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
	"github.com/mallendeo/samsung-docs-mcp/populate"
)

// SearchInput is the input schema for the search_docs tool.
type SearchInput struct {
	Query    string   `json:"query" jsonschema:"free-text query over the cached documentation"`
	Limit    int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Patterns []string `json:"patterns,omitempty" jsonschema:"glob patterns over page paths, e.g. smarttv/*"`
	Version  string   `json:"version,omitempty" jsonschema:"platform version filter, e.g. >=2.3 or >=2.3,<6"`
}

// SearchOutput is the output schema for the search_docs tool.
type SearchOutput struct {
	Results []samsungdocs.SearchResult `json:"results"`
	Count   int                        `json:"count"`
	Notes   []string                   `json:"notes,omitempty"`
}

// DiscoverInput is the input schema for the discover_docs tool.
type DiscoverInput struct {
	Section string `json:"section,omitempty" jsonschema:"documentation section: smart-tv, galaxy-watch, smartthings, health or all"`
	Force   bool   `json:"force,omitempty" jsonschema:"refetch every page regardless of freshness"`
}

// FetchInput is the input schema for the fetch_page tool.
type FetchInput struct {
	Page string `json:"page" jsonschema:"portal URL or path, e.g. smarttv/develop/api/avplay.html"`
}

// ListInput is the input schema for the list_pages tool.
type ListInput struct {
	Patterns []string `json:"patterns,omitempty" jsonschema:"glob patterns over page paths"`
}

// ListOutput is the output schema for the list_pages tool.
type ListOutput struct {
	Pages []populate.PageListing `json:"pages"`
	Count int                    `json:"count"`
}

// ClearInput is the input schema for the clear_cache tool.
type ClearInput struct{}

// ClearOutput is the output schema for the clear_cache tool.
type ClearOutput struct {
	Removed int `json:"removed"`
}

// StatusInput is the input schema for the cache_status tool.
type StatusInput struct{}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_docs",
		Description: "Search the cached Samsung developer documentation",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "discover_docs",
		Description: "Discover and cache documentation pages for a section",
	}, s.handleDiscover)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "fetch_page",
		Description: "Fetch one documentation page as markdown, from cache when possible",
	}, s.handleFetch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_pages",
		Description: "List known documentation pages and their cache status",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clear_cache",
		Description: "Delete every cached page and reset the index",
	}, s.handleClear)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cache_status",
		Description: "Report cache location, last populate time and coverage",
	}, s.handleStatus)
}

func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	out, err := s.ports.Docs.Search(ctx, populate.SearchOptions{
		Text:     input.Query,
		Limit:    limit,
		Patterns: input.Patterns,
		Version:  input.Version,
	})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, SearchOutput{
		Results: out.Results,
		Count:   len(out.Results),
		Notes:   out.Notes,
	}, nil
}

func (s *Server) handleDiscover(ctx context.Context, _ *mcp.CallToolRequest, input DiscoverInput) (*mcp.CallToolResult, populate.RunResult, error) {
	result, err := s.ports.Docs.Populate(ctx, populate.Options{
		Section: samsungdocs.Section(input.Section),
		Force:   input.Force,
	})
	if err != nil {
		return nil, populate.RunResult{}, err
	}
	return nil, *result, nil
}

func (s *Server) handleFetch(ctx context.Context, _ *mcp.CallToolRequest, input FetchInput) (*mcp.CallToolResult, populate.PageDocument, error) {
	doc, err := s.ports.Docs.FetchPage(ctx, input.Page)
	if err != nil {
		return nil, populate.PageDocument{}, err
	}
	return nil, *doc, nil
}

func (s *Server) handleList(ctx context.Context, _ *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
	pages, err := s.ports.Docs.List(ctx, input.Patterns)
	if err != nil {
		return nil, ListOutput{}, err
	}
	return nil, ListOutput{Pages: pages, Count: len(pages)}, nil
}

func (s *Server) handleClear(ctx context.Context, _ *mcp.CallToolRequest, _ ClearInput) (*mcp.CallToolResult, ClearOutput, error) {
	removed, err := s.ports.Docs.Clear(ctx)
	if err != nil {
		return nil, ClearOutput{}, err
	}
	return nil, ClearOutput{Removed: removed}, nil
}

func (s *Server) handleStatus(ctx context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, populate.CacheStatus, error) {
	status, err := s.ports.Docs.Status(ctx)
	if err != nil {
		return nil, populate.CacheStatus{}, err
	}
	return nil, *status, nil
}
