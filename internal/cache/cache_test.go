package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pahe/internal/media"
)

type countingProvider struct {
	calls map[string]int
	fail  bool
}

func (c *countingProvider) Search(_ context.Context, query string) ([]media.SearchResult, error) {
	c.calls["search"]++
	if c.fail {
		return nil, errors.New("offline")
	}
	return []media.SearchResult{{Title: query}}, nil
}

func (c *countingProvider) GetDetails(_ context.Context, catalogURL string) (media.Details, error) {
	c.calls["details"]++
	return media.Details{Title: catalogURL}, nil
}

func (c *countingProvider) GetEpisodes(_ context.Context, catalogURL string) ([]media.Episode, error) {
	c.calls["episodes"]++
	return []media.Episode{{URL: catalogURL + "/a"}}, nil
}

func (c *countingProvider) GetQualities(_ context.Context, _ string) (*media.QualityMap, error) {
	c.calls["qualities"]++
	return media.NewQualityMap(), nil
}

func TestProviderCaches(t *testing.T) {
	next := &countingProvider{calls: map[string]int{}}
	p := New(next, time.Minute)
	ctx := context.Background()

	for range 3 {
		res, err := p.Search(ctx, "example")
		require.NoError(t, err)
		assert.Equal(t, "example", res[0].Title)

		_, err = p.GetEpisodes(ctx, "https://animepahe.com/anime/x")
		require.NoError(t, err)

		_, err = p.GetDetails(ctx, "https://animepahe.com/anime/x")
		require.NoError(t, err)

		_, err = p.GetQualities(ctx, "https://animepahe.com/anime/x/a")
		require.NoError(t, err)
	}

	assert.Equal(t, 1, next.calls["search"])
	assert.Equal(t, 1, next.calls["episodes"])
	assert.Equal(t, 1, next.calls["details"])
	assert.Equal(t, 3, next.calls["qualities"], "qualities must never be cached")

	_, err := p.Search(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls["search"], "distinct queries use distinct keys")

	p.Flush()
	_, err = p.Search(ctx, "example")
	require.NoError(t, err)
	assert.Equal(t, 3, next.calls["search"])
}

func TestProviderDoesNotCacheErrors(t *testing.T) {
	next := &countingProvider{calls: map[string]int{}, fail: true}
	p := New(next, time.Minute)

	_, err := p.Search(context.Background(), "example")
	require.Error(t, err)

	next.fail = false
	res, err := p.Search(context.Background(), "example")
	require.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, 2, next.calls["search"])
}
