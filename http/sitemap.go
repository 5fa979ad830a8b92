package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

// maxSitemaps bounds recursion through sitemap indexes.
const maxSitemaps = 50

// Ensure SitemapService implements samsungdocs.SitemapService.
var _ samsungdocs.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from the portal's sitemaps via HTTP.
// It is the fallback discovery source when navigation markup yields nothing
// for an entry point.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs finds all URLs under baseURL's path prefix. It checks
// robots.txt for sitemap directives first, then falls back to /sitemap.xml.
// Sitemap indexes are resolved recursively. Returns an empty slice (not
// nil) when no sitemaps exist.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	// Scope results to the entry point's path prefix. The prefix is the
	// containing directory: /smarttv/develop.html scopes to /smarttv/.
	pathPrefix := base.Path
	if i := strings.LastIndex(pathPrefix, "/"); i >= 0 {
		pathPrefix = pathPrefix[:i+1]
	}
	if pathPrefix == "/" {
		pathPrefix = ""
	}

	root := *base
	root.Path = ""
	root.RawQuery = ""

	sitemapURLs, err := s.findSitemapURLs(ctx, &root)
	if err != nil {
		return nil, err
	}
	if len(sitemapURLs) == 0 {
		return []string{}, nil
	}

	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	var urls []string

	for _, sitemapURL := range sitemapURLs {
		pageURLs, err := s.processSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, pageURL := range pageURLs {
			if seenURLs[pageURL] {
				continue
			}
			seenURLs[pageURL] = true

			u, err := url.Parse(pageURL)
			if err != nil {
				continue
			}
			if pathPrefix != "" && !strings.HasPrefix(u.Path, pathPrefix) {
				continue
			}
			urls = append(urls, pageURL)
		}
	}

	if urls == nil {
		urls = []string{}
	}
	return urls, nil
}

// findSitemapURLs returns sitemap locations from robots.txt, falling back
// to the conventional /sitemap.xml.
func (s *SitemapService) findSitemapURLs(ctx context.Context, root *url.URL) ([]string, error) {
	body, err := s.get(ctx, root.String()+"/robots.txt")
	if err == nil {
		var sitemaps []string
		scanner := bufio.NewScanner(strings.NewReader(body))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if rest, ok := strings.CutPrefix(line, "Sitemap:"); ok {
				if sitemap := strings.TrimSpace(rest); sitemap != "" {
					sitemaps = append(sitemaps, sitemap)
				}
			}
		}
		if len(sitemaps) > 0 {
			return sitemaps, nil
		}
	}

	fallback := root.String() + "/sitemap.xml"
	if _, err := s.get(ctx, fallback); err != nil {
		return nil, nil
	}
	return []string{fallback}, nil
}

// processSitemap parses one sitemap document, recursing into sitemap
// indexes, and returns the page URLs it lists.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if seen[sitemapURL] || len(seen) >= maxSitemaps {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, fmt.Errorf("malformed sitemap %s: %w", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, nil
	}

	switch root.Tag {
	case "sitemapindex":
		var urls []string
		for _, sitemap := range root.SelectElements("sitemap") {
			loc := sitemap.SelectElement("loc")
			if loc == nil {
				continue
			}
			child, err := s.processSitemap(ctx, strings.TrimSpace(loc.Text()), seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, child...)
		}
		return urls, nil
	case "urlset":
		var urls []string
		for _, u := range root.SelectElements("url") {
			loc := u.SelectElement("loc")
			if loc == nil {
				continue
			}
			urls = append(urls, strings.TrimSpace(loc.Text()))
		}
		return urls, nil
	}
	return nil, nil
}

func (s *SitemapService) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
