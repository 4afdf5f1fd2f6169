// Package diffcache memoizes compare results by "<base>...<head>" key.
package diffcache

import (
	"context"
	"maps"

	"github.com/wahlandcase/attuned.changelog/internal/models"
)

// Key builds the cache key for a comparison of base (older) to head (newer)
func Key(base, head string) string {
	return base + "..." + head
}

// FetchFunc loads the files of one comparison
type FetchFunc func(ctx context.Context) ([]models.DiffFile, error)

// Cache is a value type: every change returns a new Cache and leaves the
// receiver untouched. Entries are never evicted.
type Cache struct {
	entries map[string][]models.DiffFile
	visible map[string]bool
}

// Get returns the cached files for key
func (c Cache) Get(key string) ([]models.DiffFile, bool) {
	files, ok := c.entries[key]
	return files, ok
}

// Has reports whether key is cached
func (c Cache) Has(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Len returns the number of cached comparisons
func (c Cache) Len() int { return len(c.entries) }

// Put stores files under key and marks the entry visible
func (c Cache) Put(key string, files []models.DiffFile) Cache {
	entries := maps.Clone(c.entries)
	if entries == nil {
		entries = make(map[string][]models.DiffFile)
	}
	entries[key] = files
	c.entries = entries
	return c.SetVisible(key, true)
}

// GetOrFetch returns the cached files for key, calling fetch only on a miss.
// A successful fetch is stored and marked visible; errors are not cached.
func (c Cache) GetOrFetch(ctx context.Context, key string, fetch FetchFunc) (Cache, []models.DiffFile, error) {
	if files, ok := c.entries[key]; ok {
		return c, files, nil
	}
	files, err := fetch(ctx)
	if err != nil {
		return c, nil, err
	}
	return c.Put(key, files), files, nil
}

// Visible reports whether a cached entry is expanded
func (c Cache) Visible(key string) bool {
	return c.visible[key]
}

// SetVisible sets the expanded flag of key
func (c Cache) SetVisible(key string, v bool) Cache {
	visible := maps.Clone(c.visible)
	if visible == nil {
		visible = make(map[string]bool)
	}
	visible[key] = v
	c.visible = visible
	return c
}

// Toggle flips visibility of a cached entry. Uncached keys are ignored.
func (c Cache) Toggle(key string) Cache {
	if !c.Has(key) {
		return c
	}
	return c.SetVisible(key, !c.visible[key])
}
