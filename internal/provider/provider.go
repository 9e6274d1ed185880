// Package provider defines the interface for anime catalog providers
// and the animepahe implementation.
package provider

import (
	"context"
	"fmt"

	"pahe/internal/media"
)

// Provider is the interface that catalog providers must implement.
type Provider interface {
	// Search returns matching catalog entries for a query.
	Search(ctx context.Context, query string) ([]media.SearchResult, error)

	// GetDetails returns metadata scraped from a catalog entry page.
	GetDetails(ctx context.Context, catalogURL string) (media.Details, error)

	// GetEpisodes returns every episode of a catalog entry in ascending order.
	GetEpisodes(ctx context.Context, catalogURL string) ([]media.Episode, error)

	// GetQualities returns the playable qualities of an episode.
	GetQualities(ctx context.Context, episodeURL string) (*media.QualityMap, error)
}

// ResolutionError is returned when a page was fetched and parsed but
// cannot be resolved to a usable result.
type ResolutionError struct {
	Reason string
	URL    string
	Err    error // Underlying cause, if any
}

func (e *ResolutionError) Error() string {
	msg := e.Reason
	if e.URL != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.URL)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ResolutionError) Unwrap() error { return e.Err }
