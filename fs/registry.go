// Package fs provides file-based storage for the documentation cache.
// The cache directory holds one registry record (registry.json) and one
// markdown blob per cached page under pages/.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	samsungdocs "github.com/mallendeo/samsung-docs-mcp"
)

// registryFile is the registry record's name inside the cache directory.
const registryFile = "registry.json"

// Ensure RegistryStore implements samsungdocs.RegistryStore at compile time.
var _ samsungdocs.RegistryStore = (*RegistryStore)(nil)

// RegistryStore persists the registry as a JSON file with atomic replace
// semantics: Save writes to a temporary file and renames it into place, so a
// crash mid-write never leaves a truncated record.
type RegistryStore struct {
	dir string
}

// NewRegistryStore creates a RegistryStore rooted at the cache directory.
func NewRegistryStore(dir string) *RegistryStore {
	return &RegistryStore{dir: dir}
}

func (s *RegistryStore) path() string {
	return filepath.Join(s.dir, registryFile)
}

// Load returns the persisted registry. Missing or corrupt records yield a
// fresh empty registry and a nil error: caching must never block on registry
// corruption.
func (s *RegistryStore) Load(ctx context.Context) (*samsungdocs.Registry, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return samsungdocs.NewRegistry(), nil
	}

	var registry samsungdocs.Registry
	if err := json.Unmarshal(data, &registry); err != nil {
		return samsungdocs.NewRegistry(), nil
	}
	if registry.Pages == nil {
		registry.Pages = make(map[samsungdocs.PageKey]*samsungdocs.PageEntry)
	}
	return &registry, nil
}

// Save durably persists the registry, replacing the prior record.
func (s *RegistryStore) Save(ctx context.Context, registry *samsungdocs.Registry) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(registry, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path())
}

// Delete removes the registry record. Removing an absent record is not an
// error.
func (s *RegistryStore) Delete(ctx context.Context) error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
