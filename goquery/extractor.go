package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

// contentSelectors locate the main documentation body, most specific first.
var contentSelectors = []string{
	".sdp-contents",
	"#contents",
	"article",
	"main",
	"body",
}

// chromeSelectors match portal chrome stripped from the extracted content.
var chromeSelectors = []string{
	"script",
	"style",
	"noscript",
	"nav",
	"aside",
	"header",
	"footer",
	".lnb",
	".gnb",
	".breadcrumb",
	".sdp-feedback",
	".page-nav",
}

// sinceRe matches the portal's minimum-version annotation, e.g. "Since : 2.3".
var sinceRe = regexp.MustCompile(`(?i)\bsince\s*:?\s*v?([0-9]+(?:\.[0-9]+)*)`)

// Ensure Extractor implements samsungdocs.Extractor at compile time.
var _ samsungdocs.Extractor = (*Extractor)(nil)

// Extractor pulls the main documentation content out of portal HTML,
// stripping navigation and other chrome.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title, the main content HTML with chrome
// removed, and the minimum platform version the page declares, if any.
func (e *Extractor) Extract(html string) (*samsungdocs.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, samsungdocs.Errorf(samsungdocs.EINVALID, "failed to parse HTML: %v", err)
	}

	content := selectContent(doc)
	if content == nil {
		return nil, samsungdocs.Errorf(samsungdocs.EINVALID, "no content found in HTML")
	}

	for _, selector := range chromeSelectors {
		content.Find(selector).Remove()
	}

	contentHTML, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, samsungdocs.Errorf(samsungdocs.EINTERNAL, "failed to render content: %v", err)
	}

	return &samsungdocs.ExtractResult{
		Title:       extractTitle(doc, content),
		ContentHTML: contentHTML,
		Since:       extractSince(content),
	}, nil
}

// selectContent returns the first non-empty match among contentSelectors.
func selectContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 && strings.TrimSpace(sel.Text()) != "" {
			return sel
		}
	}
	return nil
}

// extractTitle prefers Open Graph metadata, then the document title, then
// the content's first heading.
func extractTitle(doc *goquery.Document, content *goquery.Selection) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if title := strings.TrimSpace(og); title != "" {
			return cleanTitle(title)
		}
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return cleanTitle(title)
	}
	if h1 := strings.TrimSpace(content.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return ""
}

// cleanTitle strips the portal's " | Samsung Developer" style suffix.
func cleanTitle(title string) string {
	for _, sep := range []string{" | ", " - "} {
		if i := strings.Index(title, sep); i > 0 {
			return strings.TrimSpace(title[:i])
		}
	}
	return title
}

// extractSince finds the page's minimum platform version. API reference
// pages annotate it near the top of the content; the first match wins.
func extractSince(content *goquery.Selection) string {
	for _, selector := range []string{".since", ".api-since", "em", "dd"} {
		var found string
		content.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if m := sinceRe.FindStringSubmatch(sel.Text()); m != nil {
				found = m[1]
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}
