package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	samsungdocshttp "github.com/mallendeo/samsung-docs-mcp/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_DiscoverURLsFromRobots(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "User-agent: *\nSitemap: %s/sitemap.xml\n", srv.URL)
	})
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%[1]s/smarttv/develop/api/avplay.html</loc></url>
  <url><loc>%[1]s/smarttv/develop/guides/media.html</loc></url>
  <url><loc>%[1]s/health/develop.html</loc></url>
</urlset>`, srv.URL)
	})

	s := samsungdocshttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL+"/smarttv/develop.html")

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		srv.URL + "/smarttv/develop/api/avplay.html",
		srv.URL + "/smarttv/develop/guides/media.html",
	}, urls, "URLs outside the entry point's path prefix are dropped")
}

func TestSitemapService_ResolvesSitemapIndex(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>%[1]s/sitemap-docs.xml</loc></sitemap>
</sitemapindex>`, srv.URL)
	})
	mux.HandleFunc("/sitemap-docs.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%[1]s/smarttv/develop/api.html</loc></url>
</urlset>`, srv.URL)
	})

	s := samsungdocshttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL+"/smarttv/develop.html")

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/smarttv/develop/api.html"}, urls)
}

func TestSitemapService_NoSitemapReturnsEmpty(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s := samsungdocshttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL+"/smarttv/develop.html")

	require.NoError(t, err)
	assert.Empty(t, urls)
	assert.NotNil(t, urls, "empty result is a slice, not nil")
}
