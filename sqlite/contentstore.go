package sqlite

import (
	"context"
	"database/sql"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

// Compile-time interface verification.
var _ samsungdocs.ContentStore = (*ContentStore)(nil)

// ContentStore implements samsungdocs.ContentStore using SQLite.
// Each write is a single statement, so readers never observe a partial
// document.
type ContentStore struct {
	db *DB
}

// NewContentStore creates a new ContentStore.
func NewContentStore(db *DB) *ContentStore {
	return &ContentStore{db: db}
}

// Read returns the cached document for key, or ENOTFOUND.
func (s *ContentStore) Read(ctx context.Context, key samsungdocs.PageKey) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx, `SELECT content FROM documents WHERE key = ?`, string(key)).Scan(&content)
	if err == sql.ErrNoRows {
		return "", samsungdocs.Errorf(samsungdocs.ENOTFOUND, "page %q not cached", key)
	}
	if err != nil {
		return "", err
	}
	return content, nil
}

// Write stores the document, overwriting any prior content.
func (s *ContentStore) Write(ctx context.Context, key samsungdocs.PageKey, text string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (key, content) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET content = excluded.content
	`, string(key), text)
	return err
}

// Keys enumerates every cached page key.
func (s *ContentStore) Keys(ctx context.Context) ([]samsungdocs.PageKey, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM documents ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []samsungdocs.PageKey
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, samsungdocs.PageKey(key))
	}
	return keys, rows.Err()
}

// Clear deletes every cached document and returns the count removed.
func (s *ContentStore) Clear(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents`)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
