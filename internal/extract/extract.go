// Package extract pulls structured fields out of raw catalog pages using
// fixed patterns. Nothing here performs I/O.
package extract

import (
	"fmt"
	"iter"
	"regexp"
	"slices"
	"strconv"
)

// ExtractionError reports that a required pattern did not match, meaning the
// page layout (or a JSON response shape) diverged from the known one.
type ExtractionError struct {
	Field   string
	Pattern string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extracting %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("extracting %s: pattern %q not found", e.Field, e.Pattern)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Patterns holds the compiled expressions used against catalog pages.
type Patterns struct {
	CatalogID *regexp.Regexp // group 1: numeric id
	Title     *regexp.Regexp // group 1: title text
	Provider  *regexp.Regexp // group 1: provider name
	Session   *regexp.Regexp // group 1: episode id, group 2: session token
}

// DefaultPatterns returns the patterns matching the current page layout.
func DefaultPatterns() *Patterns {
	return &Patterns{
		CatalogID: regexp.MustCompile(`&id=(\d+)`),
		Title:     regexp.MustCompile(`<h1>([^<]+)`),
		Provider:  regexp.MustCompile(`data-provider="([^"]+)`),
		Session:   regexp.MustCompile(`getEmbeds\((\d+), "([^"]+)`),
	}
}

// Extractor applies a fixed set of patterns to page text.
type Extractor struct {
	p *Patterns
}

// New creates an Extractor. A nil Patterns uses DefaultPatterns.
func New(p *Patterns) *Extractor {
	if p == nil {
		p = DefaultPatterns()
	}
	return &Extractor{p: p}
}

// Session is the embed invocation found on an episode page.
type Session struct {
	EpisodeID string
	Token     string
}

// CatalogID returns the first numeric catalog id on the page.
func (e *Extractor) CatalogID(page string) (int, error) {
	m := e.p.CatalogID.FindStringSubmatch(page)
	if m == nil {
		return 0, &ExtractionError{Field: "catalog id", Pattern: e.p.CatalogID.String()}
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("parsing catalog id %q: %w", m[1], err)
	}
	return id, nil
}

// Title returns the text of the first heading on the page.
func (e *Extractor) Title(page string) (string, error) {
	m := e.p.Title.FindStringSubmatch(page)
	if m == nil {
		return "", &ExtractionError{Field: "title", Pattern: e.p.Title.String()}
	}
	return m[1], nil
}

// ProviderNames yields every provider attribute in document order,
// duplicates included. The sequence can be ranged over more than once.
func (e *Extractor) ProviderNames(page string) iter.Seq[string] {
	re := e.p.Provider
	return func(yield func(string) bool) {
		off := 0
		for off < len(page) {
			loc := re.FindStringSubmatchIndex(page[off:])
			if loc == nil {
				return
			}
			if !yield(page[off+loc[2] : off+loc[3]]) {
				return
			}
			if loc[1] == 0 {
				off++
				continue
			}
			off += loc[1]
		}
	}
}

// ProviderNameList collects ProviderNames into a slice. An empty page
// yields an empty, non-nil slice.
func (e *Extractor) ProviderNameList(page string) []string {
	names := slices.Collect(e.ProviderNames(page))
	if names == nil {
		names = []string{}
	}
	return names
}

// ProviderSession returns the first embed invocation on the page.
func (e *Extractor) ProviderSession(page string) (Session, error) {
	m := e.p.Session.FindStringSubmatch(page)
	if m == nil {
		return Session{}, &ExtractionError{Field: "provider session", Pattern: e.p.Session.String()}
	}
	return Session{EpisodeID: m[1], Token: m[2]}, nil
}
