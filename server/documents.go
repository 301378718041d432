package server

import (
	"context"
	"log/slog"
	"sync"

	"filedex/models"
)

// Loader fetches the metadata document
type Loader interface {
	Load(ctx context.Context) ([]models.FileMetadata, error)
	Source() string
}

// documentStore caches the loaded document. A failed load is not cached so
// the next request retries it.
type documentStore struct {
	loader Loader

	mu         sync.Mutex
	files      []models.FileMetadata
	generation uint64
	loaded     bool
}

func newDocumentStore(loader Loader) *documentStore {
	return &documentStore{loader: loader}
}

// Get returns the cached files and the generation they belong to
func (d *documentStore) Get(ctx context.Context) ([]models.FileMetadata, uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.loaded {
		return d.files, d.generation, nil
	}

	files, err := d.loader.Load(ctx)
	if err != nil {
		slog.Error("failed to load metadata", "source", d.loader.Source(), "error", err)
		return nil, 0, err
	}

	d.files = files
	d.generation++
	d.loaded = true
	slog.Info("metadata loaded", "source", d.loader.Source(), "files", len(files), "generation", d.generation)

	return d.files, d.generation, nil
}

// Invalidate drops the cached document
func (d *documentStore) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.files = nil
	d.loaded = false
}
