package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"pahe/internal/extract"
)

// SearchHit is a raw search result.
type SearchHit struct {
	Title    string
	Slug     string
	Image    string
	Type     string
	Episodes int
	Year     int
}

// ReleaseItem is one episode entry of a release page.
type ReleaseItem struct {
	Number float64 // Episode number as reported, usually integral
	ID     string
}

// EpisodeLabel formats Number the way the catalog displays it ("1", "12.5").
func (r ReleaseItem) EpisodeLabel() string {
	return strconv.FormatFloat(r.Number, 'f', -1, 64)
}

// ReleasePage is one page of an episode listing.
type ReleasePage struct {
	Items       []ReleaseItem
	CurrentPage int
	LastPage    int
}

// EmbedSource is one quality reported by a provider.
type EmbedSource struct {
	Quality string // Bare quality key, e.g. "720"
	URL     string
}

// flexString accepts both JSON strings and numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = flexString(b)
	return nil
}

type searchResponse struct {
	Data []struct {
		Title    string `json:"title"`
		Slug     string `json:"slug"`
		Image    string `json:"image"`
		Poster   string `json:"poster"`
		Type     string `json:"type"`
		Episodes int    `json:"episodes"`
		Year     int    `json:"year"`
	} `json:"data"`
}

func parseSearch(body string) ([]SearchHit, error) {
	var resp searchResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, &extract.ExtractionError{Field: "search response", Err: err}
	}

	hits := make([]SearchHit, 0, len(resp.Data))
	for _, d := range resp.Data {
		image := d.Image
		if image == "" {
			image = d.Poster
		}
		hits = append(hits, SearchHit{
			Title:    d.Title,
			Slug:     d.Slug,
			Image:    image,
			Type:     d.Type,
			Episodes: d.Episodes,
			Year:     d.Year,
		})
	}
	return hits, nil
}

type releaseResponse struct {
	CurrentPage *int `json:"current_page"`
	LastPage    *int `json:"last_page"`
	Data        []struct {
		Episode *float64   `json:"episode"`
		ID      flexString `json:"id"`
	} `json:"data"`
}

func parseReleasePage(body string) (ReleasePage, error) {
	var resp releaseResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return ReleasePage{}, &extract.ExtractionError{Field: "release response", Err: err}
	}

	switch {
	case resp.CurrentPage == nil:
		return ReleasePage{}, shapeError("release.current_page", "missing")
	case resp.LastPage == nil:
		return ReleasePage{}, shapeError("release.last_page", "missing")
	case *resp.CurrentPage < 1 || *resp.LastPage < 1:
		return ReleasePage{}, shapeError("release.current_page",
			fmt.Sprintf("pages must be >= 1, got current %d last %d", *resp.CurrentPage, *resp.LastPage))
	case *resp.CurrentPage > *resp.LastPage:
		return ReleasePage{}, shapeError("release.current_page",
			fmt.Sprintf("current page %d beyond last page %d", *resp.CurrentPage, *resp.LastPage))
	}

	page := ReleasePage{
		Items:       make([]ReleaseItem, 0, len(resp.Data)),
		CurrentPage: *resp.CurrentPage,
		LastPage:    *resp.LastPage,
	}
	for i, d := range resp.Data {
		if d.Episode == nil {
			return ReleasePage{}, shapeError(fmt.Sprintf("release.data[%d].episode", i), "missing")
		}
		if d.ID == "" {
			return ReleasePage{}, shapeError(fmt.Sprintf("release.data[%d].id", i), "missing")
		}
		page.Items = append(page.Items, ReleaseItem{Number: *d.Episode, ID: string(d.ID)})
	}
	return page, nil
}

type embedStream struct {
	URL string `json:"url"`
}

func parseEmbed(body string) ([]EmbedSource, error) {
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, &extract.ExtractionError{Field: "embed response", Err: err}
	}

	values, err := embedValues(resp.Data)
	if err != nil {
		return nil, err
	}

	sources := make([]EmbedSource, 0, len(values))
	for i, raw := range values {
		var entry map[string]embedStream
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, &extract.ExtractionError{Field: fmt.Sprintf("embed.data[%d]", i), Err: err}
		}
		if len(entry) != 1 {
			return nil, shapeError(fmt.Sprintf("embed.data[%d]", i),
				fmt.Sprintf("expected a single quality key, got %d", len(entry)))
		}
		for quality, stream := range entry {
			sources = append(sources, EmbedSource{Quality: quality, URL: stream.URL})
		}
	}
	return sources, nil
}

// embedValues returns the values of data, which the API sends either as an
// array or as an object. Object values are ordered with integer keys first,
// ascending, then the remaining keys lexically.
func embedValues(data json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, shapeError("embed.data", "missing")
	}

	if trimmed[0] == '[' {
		var values []json.RawMessage
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return nil, &extract.ExtractionError{Field: "embed.data", Err: err}
		}
		return values, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, &extract.ExtractionError{Field: "embed.data", Err: err}
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)

	values := make([]json.RawMessage, len(keys))
	for i, k := range keys {
		values[i] = obj[k]
	}
	return values, nil
}

func compareKeys(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return ai - bi
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func shapeError(field, reason string) error {
	return &extract.ExtractionError{Field: field, Err: errors.New(reason)}
}
