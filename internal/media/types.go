// Package media defines shared types for the pahe application.
package media

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// SearchResult represents a single search hit from the catalog.
type SearchResult struct {
	Title    string `json:"title"`
	URL      string `json:"url"`    // Catalog entry URL
	Poster   string `json:"poster"` // Image URL
	Type     string `json:"type,omitempty"`
	Episodes int    `json:"episodes,omitempty"`
	Year     int    `json:"year,omitempty"`
}

// Episode represents one playable episode of a catalog entry.
type Episode struct {
	Title string `json:"title"` // "<anime title> Episode <n>"
	URL   string `json:"url"`   // Episode detail URL
}

// Details holds the metadata scraped from a catalog entry page.
type Details struct {
	Title     string `json:"title"`
	CatalogID int    `json:"catalog_id"`
	Synopsis  string `json:"synopsis,omitempty"`
	Poster    string `json:"poster,omitempty"`
	Type      string `json:"type,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Stream is a playable stream for a single quality.
type Stream struct {
	Quality   string            `json:"quality"` // e.g. "720p"
	URL       string            `json:"url"`
	Extractor string            `json:"extractor,omitempty"` // Originating provider name
	Referer   string            `json:"referer,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"` // Headers required for playback
}

// QualityMap is an ordered quality -> stream mapping. Order is the order
// reported by the provider; labels are unique.
type QualityMap struct {
	streams []Stream
}

// NewQualityMap returns an empty map.
func NewQualityMap() *QualityMap {
	return &QualityMap{}
}

// Set adds a stream, replacing an existing entry with the same label in place.
func (q *QualityMap) Set(s Stream) {
	for i := range q.streams {
		if q.streams[i].Quality == s.Quality {
			q.streams[i] = s
			return
		}
	}
	q.streams = append(q.streams, s)
}

// Get returns the stream for a quality label.
func (q *QualityMap) Get(label string) (Stream, bool) {
	if q == nil {
		return Stream{}, false
	}
	for _, s := range q.streams {
		if s.Quality == label {
			return s, true
		}
	}
	return Stream{}, false
}

// Len returns the number of qualities.
func (q *QualityMap) Len() int {
	if q == nil {
		return 0
	}
	return len(q.streams)
}

// Labels returns quality labels in insertion order.
func (q *QualityMap) Labels() []string {
	if q == nil {
		return nil
	}
	labels := make([]string, len(q.streams))
	for i, s := range q.streams {
		labels[i] = s.Quality
	}
	return labels
}

// Streams returns a copy of the streams in insertion order.
func (q *QualityMap) Streams() []Stream {
	if q == nil {
		return nil
	}
	out := make([]Stream, len(q.streams))
	copy(out, q.streams)
	return out
}

// MarshalJSON encodes the map as an ordered array of streams.
func (q *QualityMap) MarshalJSON() ([]byte, error) {
	streams := q.Streams()
	if streams == nil {
		streams = []Stream{}
	}
	return json.Marshal(streams)
}

// Best picks the stream matching preferred ("720" or "720p"), falling back
// to the highest numeric quality. "best" always selects the highest.
func (q *QualityMap) Best(preferred string) (Stream, bool) {
	if q.Len() == 0 {
		return Stream{}, false
	}

	if preferred != "" && preferred != "best" {
		label := preferred
		if !strings.HasSuffix(label, "p") {
			label += "p"
		}
		if s, ok := q.Get(label); ok {
			return s, true
		}
	}

	best := q.streams[0]
	bestHeight := Height(best.Quality)
	for _, s := range q.streams[1:] {
		if h := Height(s.Quality); h > bestHeight {
			best, bestHeight = s, h
		}
	}
	return best, true
}

// Height parses the numeric part of a quality label ("1080p" -> 1080).
// Unparseable labels return 0.
func Height(label string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(label, "p"))
	if err != nil {
		return 0
	}
	return n
}

// HistoryEntry represents a single entry in the watch history.
type HistoryEntry struct {
	ID        int64  `json:"id"`
	Anime     string `json:"anime"`      // Anime title
	AnimeURL  string `json:"anime_url"`  // Catalog entry URL
	Episode   string `json:"episode"`    // Episode title
	URL       string `json:"url"`        // Episode URL
	Quality   string `json:"quality"`    // Quality that was played
	WatchedAt int64  `json:"watched_at"` // Unix seconds
}
