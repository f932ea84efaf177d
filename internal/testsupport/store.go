package testsupport

import (
	"context"
	"testing"

	"shortcast/internal/catalog"
	"shortcast/internal/config"
	"shortcast/internal/project"
)

// MustOpenCatalog opens a catalog.Store for tests and registers cleanup.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewProject creates a draft project and registers it in the catalog.
func NewProject(t testing.TB, store *catalog.Store, cfg *config.Config, name, product string) *project.Project {
	t.Helper()

	p := project.New(name, product)
	path := project.DocumentPath(cfg.Paths.OutputDir, p.ID)
	if _, err := p.SaveToFile(path); err != nil {
		t.Fatalf("project.SaveToFile: %v", err)
	}
	if err := store.Upsert(context.Background(), p, path); err != nil {
		t.Fatalf("catalog.Upsert: %v", err)
	}
	return p
}
