package sqlite

import (
	"context"
	"database/sql"
	"time"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

// Compile-time interface verification.
var _ samsungdocs.RegistryStore = (*RegistryStore)(nil)

// RegistryStore implements samsungdocs.RegistryStore using SQLite.
// Save replaces the full registry in one transaction, matching the
// whole-record replace semantics of the fs backend.
type RegistryStore struct {
	db *DB
}

// NewRegistryStore creates a new RegistryStore.
func NewRegistryStore(db *DB) *RegistryStore {
	return &RegistryStore{db: db}
}

// Load returns the persisted registry. Query failures yield a fresh empty
// registry and a nil error (fail-open, same as the fs backend).
func (s *RegistryStore) Load(ctx context.Context) (*samsungdocs.Registry, error) {
	registry := samsungdocs.NewRegistry()

	var populatedAt sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT populated_at FROM meta WHERE id = 1`).Scan(&populatedAt); err != nil {
		return samsungdocs.NewRegistry(), nil
	}
	if populatedAt.Valid {
		registry.PopulatedAt = samsungdocs.FetchedAt(time.UnixMilli(populatedAt.Int64).UTC())
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key, title, content_hash, fetched_at FROM pages`)
	if err != nil {
		return samsungdocs.NewRegistry(), nil
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key       string
			title     string
			hash      string
			fetchedAt sql.NullInt64
		)
		if err := rows.Scan(&key, &title, &hash, &fetchedAt); err != nil {
			return samsungdocs.NewRegistry(), nil
		}

		entry := &samsungdocs.PageEntry{
			Key:         samsungdocs.PageKey(key),
			Title:       title,
			ContentHash: hash,
			Fetched:     samsungdocs.Pending(),
		}
		if fetchedAt.Valid {
			entry.Fetched = samsungdocs.FetchedAt(time.UnixMilli(fetchedAt.Int64).UTC())
		}
		registry.Pages[entry.Key] = entry
	}
	if err := rows.Err(); err != nil {
		return samsungdocs.NewRegistry(), nil
	}

	return registry, nil
}

// Save durably persists the full registry, replacing prior content.
func (s *RegistryStore) Save(ctx context.Context, registry *samsungdocs.Registry) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages`); err != nil {
		return err
	}

	for _, entry := range registry.Pages {
		var fetchedAt any
		if entry.Fetched.Fetched() {
			fetchedAt = entry.Fetched.Time().UnixMilli()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pages (key, title, content_hash, fetched_at)
			VALUES (?, ?, ?, ?)
		`, string(entry.Key), entry.Title, entry.ContentHash, fetchedAt); err != nil {
			return err
		}
	}

	var populatedAt any
	if registry.PopulatedAt.Fetched() {
		populatedAt = registry.PopulatedAt.Time().UnixMilli()
	}
	if _, err := tx.ExecContext(ctx, `UPDATE meta SET populated_at = ? WHERE id = 1`, populatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete wipes the registry record.
func (s *RegistryStore) Delete(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE meta SET populated_at = NULL WHERE id = 1`); err != nil {
		return err
	}
	return tx.Commit()
}
