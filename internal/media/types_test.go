package media

import (
	"slices"
	"testing"
)

func TestQualityMapOrder(t *testing.T) {
	q := NewQualityMap()
	q.Set(Stream{Quality: "720p", URL: "a"})
	q.Set(Stream{Quality: "360p", URL: "b"})
	q.Set(Stream{Quality: "1080p", URL: "c"})
	q.Set(Stream{Quality: "360p", URL: "d"})

	if !slices.Equal(q.Labels(), []string{"720p", "360p", "1080p"}) {
		t.Errorf("Labels() = %v", q.Labels())
	}
	if s, _ := q.Get("360p"); s.URL != "d" {
		t.Errorf("duplicate label should replace in place, got %q", s.URL)
	}
	if q.Len() != 3 {
		t.Errorf("Len() = %d, want 3", q.Len())
	}
}

func TestQualityMapBest(t *testing.T) {
	q := NewQualityMap()
	q.Set(Stream{Quality: "720p", URL: "a"})
	q.Set(Stream{Quality: "1080p", URL: "b"})
	q.Set(Stream{Quality: "360p", URL: "c"})

	tests := []struct {
		preferred string
		want      string
	}{
		{"720", "720p"},
		{"720p", "720p"},
		{"480", "1080p"},
		{"best", "1080p"},
		{"", "1080p"},
	}

	for _, tt := range tests {
		t.Run(tt.preferred, func(t *testing.T) {
			s, ok := q.Best(tt.preferred)
			if !ok || s.Quality != tt.want {
				t.Errorf("Best(%q) = %q, want %q", tt.preferred, s.Quality, tt.want)
			}
		})
	}

	if _, ok := NewQualityMap().Best("720"); ok {
		t.Error("Best on empty map should report false")
	}
}

func TestQualityMapJSON(t *testing.T) {
	q := NewQualityMap()
	q.Set(Stream{Quality: "720p", URL: "a"})

	b, err := q.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	if string(b) != `[{"quality":"720p","url":"a"}]` {
		t.Errorf("MarshalJSON() = %s", b)
	}
}

func TestHeight(t *testing.T) {
	if Height("1080p") != 1080 || Height("720") != 720 || Height("auto") != 0 {
		t.Error("Height parsed unexpected values")
	}
}
