// Package quality post-processes resolved quality maps before playback.
package quality

import (
	"maps"

	"pahe/internal/media"
)

// Context describes where a quality map came from.
type Context struct {
	Extractor string // Provider that reported the streams
	Referer   string // Page the streams were resolved from
}

// Formatter post-processes a resolved quality map.
type Formatter interface {
	Format(q *media.QualityMap, c Context) *media.QualityMap
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(q *media.QualityMap, c Context) *media.QualityMap

func (f FormatterFunc) Format(q *media.QualityMap, c Context) *media.QualityMap {
	return f(q, c)
}

// Default attaches the extractor, the referer and the Referer request header
// players need. Order and labels are left untouched.
type Default struct{}

func (Default) Format(q *media.QualityMap, c Context) *media.QualityMap {
	out := media.NewQualityMap()
	for _, s := range q.Streams() {
		s.Extractor = c.Extractor
		s.Referer = c.Referer
		headers := maps.Clone(s.Headers)
		if headers == nil {
			headers = make(map[string]string, 1)
		}
		if c.Referer != "" {
			headers["Referer"] = c.Referer
		}
		s.Headers = headers
		out.Set(s)
	}
	return out
}
