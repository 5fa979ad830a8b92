// Package goquery implements navigation discovery and content extraction
// for the developer portal using CSS selectors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

// navSelectors target the portal's navigation markup, ordered from most to
// least specific. The portal's left navigation tree carries the canonical
// page titles, so it runs first.
var navSelectors = []string{
	".lnb a[href]",
	"nav a[href]",
	"aside a[href]",
	".card-list a[href]",
	"main a[href], article a[href]",
}

// navLink is a candidate child page found in navigation markup.
type navLink struct {
	URL  string
	Text string
}

// scopeForURL returns the containing-directory path prefix used to scope
// discovered links: /smarttv/develop.html scopes to /smarttv/.
func scopeForURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	path := u.Path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[:i+1]
	}
	return path
}

// extractNavLinks extracts navigation links from HTML. Links are resolved
// against baseURL, deduplicated by URL in selector order, and filtered to
// the same host and pathPrefix. Fragment-only and non-HTTP links are
// skipped.
func extractNavLinks(html string, baseURL string, pathPrefix string) ([]navLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, samsungdocs.Errorf(samsungdocs.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, samsungdocs.Errorf(samsungdocs.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []navLink

	for _, selector := range navSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" {
				return
			}
			if isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" {
				return
			}
			if !isSameHost(base, resolved) {
				return
			}

			u, err := url.Parse(resolved)
			if err != nil {
				return
			}
			if pathPrefix != "" && pathPrefix != "/" && !strings.HasPrefix(u.Path, pathPrefix) {
				return
			}

			if seen[resolved] {
				return
			}
			seen[resolved] = true

			links = append(links, navLink{
				URL:  resolved,
				Text: strings.TrimSpace(sel.Text()),
			})
		})
	}

	return links, nil
}

// resolveURL resolves a relative URL against a base URL. Returns empty
// string if the href cannot be parsed or resolves to the base page itself.
// Fragments are stripped for deduplication.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base URL.
// Exact host matching; subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		strings.HasPrefix(href, "#")
}
