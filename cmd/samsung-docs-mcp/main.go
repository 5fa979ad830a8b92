package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
	"github.com/mallendeo/samsung-docs-mcp/bleve"
	"github.com/mallendeo/samsung-docs-mcp/fs"
	"github.com/mallendeo/samsung-docs-mcp/goquery"
	"github.com/mallendeo/samsung-docs-mcp/htmltomarkdown"
	samsungdocshttp "github.com/mallendeo/samsung-docs-mcp/http"
	"github.com/mallendeo/samsung-docs-mcp/populate"
	samsungdocsslog "github.com/mallendeo/samsung-docs-mcp/slog"
	"github.com/mallendeo/samsung-docs-mcp/sqlite"
)

// fetchRPS is the per-domain request rate during populate runs.
const fetchRPS = 4.0

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database, open only when --db is used.
	DB *sqlite.DB

	// Service for end-to-end testing.
	Service *populate.Service
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	parser, err := kong.New(cli,
		kong.Name("samsung-docs-mcp"),
		kong.Description("Local mirror of the Samsung Developer documentation, exposed over MCP."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	// The MCP transport owns stdout; all logging goes to stderr.
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	cacheDir := cli.Cache
	if cacheDir == "" {
		cacheDir = defaultCacheDir()
	}
	deps.CacheDir = cacheDir

	var registryStore samsungdocs.RegistryStore
	var contentStore samsungdocs.ContentStore
	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		registryStore = sqlite.NewRegistryStore(m.DB)
		contentStore = sqlite.NewContentStore(m.DB)
	} else {
		registryStore = fs.NewRegistryStore(cacheDir)
		contentStore = fs.NewContentStore(cacheDir)
	}
	defer m.Close()

	index, err := bleve.NewIndex(contentStore)
	if err != nil {
		return fmt.Errorf("failed to create search index: %w", err)
	}

	fetcher := samsungdocshttp.NewFetcher()
	defer fetcher.Close()

	pageFetcher := samsungdocsslog.NewLoggingDocumentFetcher(&populate.PageFetcher{
		Fetcher:   fetcher,
		Extractor: goquery.NewExtractor(),
		Converter: htmltomarkdown.NewConverter(),
		Limiter:   populate.NewDomainLimiter(fetchRPS),
	}, logger)

	concurrency := cli.Populate.Concurrency
	if concurrency < 1 {
		concurrency = populate.DefaultConcurrency
	}

	m.Service = populate.NewService(populate.ServiceParams{
		Registry:   samsungdocsslog.NewLoggingRegistryStore(registryStore, logger),
		Content:    contentStore,
		Index:      index,
		Discoverer: samsungdocsslog.NewLoggingDiscoverer(goquery.NewDiscoverer(fetcher), logger),
		Sitemaps:   samsungdocshttp.NewSitemapService(nil),
		Fetcher:    pageFetcher,
		CacheDir:   cacheDir,
		Logger:     logger,
		Config: populate.Config{
			Concurrency: concurrency,
			TTL:         populate.DefaultTTL,
		},
	})
	deps.Service = m.Service

	return kongCtx.Run(deps)
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".samsung-docs"
	}
	return filepath.Join(base, "samsung-docs")
}
