package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

// pagesDir is the subdirectory holding one blob per cached page.
const pagesDir = "pages"

// Ensure ContentStore implements samsungdocs.ContentStore at compile time.
var _ samsungdocs.ContentStore = (*ContentStore)(nil)

// ContentStore stores cached documents as <key>.md files. Writes go through
// a temporary file and a rename, so readers never observe a partial write.
type ContentStore struct {
	dir string
}

// NewContentStore creates a ContentStore rooted at the cache directory.
func NewContentStore(dir string) *ContentStore {
	return &ContentStore{dir: dir}
}

func (s *ContentStore) pagePath(key samsungdocs.PageKey) string {
	return filepath.Join(s.dir, pagesDir, string(key)+".md")
}

// Read returns the cached document for key, or ENOTFOUND.
func (s *ContentStore) Read(ctx context.Context, key samsungdocs.PageKey) (string, error) {
	data, err := os.ReadFile(s.pagePath(key))
	if os.IsNotExist(err) {
		return "", samsungdocs.Errorf(samsungdocs.ENOTFOUND, "page %q not cached", key)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write stores the document, overwriting any prior content.
func (s *ContentStore) Write(ctx context.Context, key samsungdocs.PageKey, text string) error {
	path := s.pagePath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Keys enumerates every cached page key.
func (s *ContentStore) Keys(ctx context.Context) ([]samsungdocs.PageKey, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, pagesDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var keys []samsungdocs.PageKey
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		keys = append(keys, samsungdocs.PageKey(strings.TrimSuffix(name, ".md")))
	}
	return keys, nil
}

// Clear deletes every cached document and returns the count removed.
func (s *ContentStore) Clear(ctx context.Context) (int, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return 0, err
	}

	var removed int
	for _, key := range keys {
		if err := os.Remove(s.pagePath(key)); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
