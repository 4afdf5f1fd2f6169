package diffcache

import (
	"context"

	"github.com/wahlandcase/attuned.changelog/internal/models"

	"golang.org/x/sync/singleflight"
)

// Group collapses concurrent fetches of the same key into one call
type Group struct {
	sf singleflight.Group
}

// Do runs fetch for key unless a call for key is already in flight,
// in which case it waits for and shares that result.
func (g *Group) Do(ctx context.Context, key string, fetch FetchFunc) ([]models.DiffFile, error) {
	v, err, _ := g.sf.Do(key, func() (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.DiffFile), nil
}
