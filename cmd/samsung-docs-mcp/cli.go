package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/mallendeo/samsung-docs-mcp/populate"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Service  *populate.Service
	CacheDir string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Cache   string `help:"Cache directory" env:"SAMSUNG_DOCS_CACHE"`
	DB      string `help:"Store the cache in a SQLite database at this path instead of plain files"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Serve    ServeCmd    `cmd:"" default:"1" help:"Run the MCP server over stdio"`
	Populate PopulateCmd `cmd:"" help:"Discover and cache documentation pages"`
	Search   SearchCmd   `cmd:"" help:"Search the cached documentation"`
	Fetch    FetchCmd    `cmd:"" help:"Fetch one page as markdown"`
	List     ListCmd     `cmd:"" help:"List known pages and their cache status"`
	Clear    ClearCmd    `cmd:"" help:"Delete the cache"`
	Status   StatusCmd   `cmd:"" help:"Show cache status"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	NoSchedule bool `help:"Disable the startup and weekly populate schedule"`
}

// PopulateCmd is the "populate" subcommand.
type PopulateCmd struct {
	Section     string `arg:"" optional:"" default:"all" help:"Section: smart-tv, galaxy-watch, smartthings, health or all"`
	Force       bool   `short:"f" help:"Refetch every page regardless of freshness"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent fetch limit"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query    string   `arg:"" help:"Search query"`
	Limit    int      `short:"n" default:"10" help:"Maximum number of results"`
	Patterns []string `short:"p" name:"pattern" help:"Glob pattern over page paths (repeatable)"`
	Version  string   `help:"Platform version filter, e.g. '>=2.3' or '>=2.3,<6'"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	Page string `arg:"" help:"Portal URL or path, e.g. smarttv/develop/api/avplay.html"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Patterns []string `short:"p" name:"pattern" help:"Glob pattern over page paths (repeatable)"`
}

// ClearCmd is the "clear" subcommand.
type ClearCmd struct {
	Force bool `help:"Confirm deletion"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}
