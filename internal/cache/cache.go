// Package cache memoizes provider lookups that are stable between runs:
// search results, episode lists and catalog details. Quality resolution is
// never cached because session tokens expire.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"pahe/internal/media"
	"pahe/internal/provider"
)

// Provider wraps a provider.Provider with an in-memory TTL cache.
type Provider struct {
	next provider.Provider
	c    *gocache.Cache
}

var _ provider.Provider = (*Provider)(nil)

// New returns a caching wrapper around next. Entries expire after ttl.
func New(next provider.Provider, ttl time.Duration) *Provider {
	return &Provider{
		next: next,
		c:    gocache.New(ttl, 2*ttl),
	}
}

// Search returns cached results for query, fetching on a miss.
func (p *Provider) Search(ctx context.Context, query string) ([]media.SearchResult, error) {
	return lookup(p, "search:"+query, func() ([]media.SearchResult, error) {
		return p.next.Search(ctx, query)
	})
}

// GetDetails returns cached details for catalogURL, fetching on a miss.
func (p *Provider) GetDetails(ctx context.Context, catalogURL string) (media.Details, error) {
	return lookup(p, "details:"+catalogURL, func() (media.Details, error) {
		return p.next.GetDetails(ctx, catalogURL)
	})
}

// GetEpisodes returns cached episodes for catalogURL, fetching on a miss.
func (p *Provider) GetEpisodes(ctx context.Context, catalogURL string) ([]media.Episode, error) {
	return lookup(p, "episodes:"+catalogURL, func() ([]media.Episode, error) {
		return p.next.GetEpisodes(ctx, catalogURL)
	})
}

// GetQualities always resolves through the wrapped provider.
func (p *Provider) GetQualities(ctx context.Context, episodeURL string) (*media.QualityMap, error) {
	return p.next.GetQualities(ctx, episodeURL)
}

// Flush drops every cached entry.
func (p *Provider) Flush() {
	p.c.Flush()
}

// lookup returns the cached value for key or stores the result of fetch.
// Errors are not cached.
func lookup[T any](p *Provider, key string, fetch func() (T, error)) (T, error) {
	if v, ok := p.c.Get(key); ok {
		logrus.WithField("key", key).Debug("cache hit")
		return v.(T), nil
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}
	p.c.SetDefault(key, v)
	return v, nil
}
