package quality

import (
	"slices"
	"testing"

	"pahe/internal/media"
)

func TestDefaultFormat(t *testing.T) {
	in := media.NewQualityMap()
	in.Set(media.Stream{Quality: "720p", URL: "https://kwik.cx/e/a"})
	in.Set(media.Stream{Quality: "1080p", URL: "https://kwik.cx/e/b", Headers: map[string]string{"Origin": "x"}})

	out := Default{}.Format(in, Context{Extractor: "kwik", Referer: "https://animepahe.com/play/a/b"})

	if !slices.Equal(out.Labels(), []string{"720p", "1080p"}) {
		t.Fatalf("labels = %v, want insertion order kept", out.Labels())
	}
	s, _ := out.Get("1080p")
	if s.Extractor != "kwik" {
		t.Errorf("Extractor = %q, want kwik", s.Extractor)
	}
	if s.Referer != "https://animepahe.com/play/a/b" {
		t.Errorf("Referer = %q", s.Referer)
	}
	if s.Headers["Referer"] != "https://animepahe.com/play/a/b" || s.Headers["Origin"] != "x" {
		t.Errorf("Headers = %v", s.Headers)
	}

	// The input map must not be mutated.
	orig, _ := in.Get("1080p")
	if _, ok := orig.Headers["Referer"]; ok {
		t.Error("Format mutated input headers")
	}
	if orig.Extractor != "" {
		t.Error("Format mutated input stream")
	}
}

func TestFormatterFunc(t *testing.T) {
	called := false
	f := FormatterFunc(func(q *media.QualityMap, c Context) *media.QualityMap {
		called = true
		return q
	})
	f.Format(media.NewQualityMap(), Context{})
	if !called {
		t.Error("FormatterFunc did not call the wrapped function")
	}
}
