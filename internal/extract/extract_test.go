package extract

import (
	"errors"
	"os"
	"slices"
	"testing"
)

func loadFixture(t *testing.T, filename string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + filename)
	if err != nil {
		t.Fatalf("reading test fixture %s: %v", filename, err)
	}
	return string(data)
}

func TestCatalogID(t *testing.T) {
	e := New(nil)
	tests := []struct {
		name    string
		page    string
		want    int
		wantErr bool
	}{
		{"fixture", loadFixture(t, "anime.html"), 42, false},
		{"first occurrence wins", `?m=release&id=7&x=1 ... &id=8`, 7, false},
		{"no marker", `<a href="/anime/example">`, 0, true},
		{"id without ampersand", `?id=42`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.CatalogID(tt.page)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CatalogID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("CatalogID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	e := New(nil)

	got, err := e.Title(loadFixture(t, "anime.html"))
	if err != nil {
		t.Fatalf("Title() error: %v", err)
	}
	if got != "Example" {
		t.Errorf("Title() = %q, want 'Example'", got)
	}

	_, err = e.Title(`<h2>Not a title</h2>`)
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("Title() error = %v, want *ExtractionError", err)
	}
	if extErr.Field != "title" {
		t.Errorf("Field = %q, want 'title'", extErr.Field)
	}
}

func TestProviderNames(t *testing.T) {
	e := New(nil)
	tests := []struct {
		name string
		page string
		want []string
	}{
		{"none", `<div>no servers</div>`, []string{}},
		{"one", `<button data-provider="kwik">`, []string{"kwik"}},
		{
			"three in source order",
			loadFixture(t, "episode.html"),
			[]string{"unsupported", "kwik", "mp4upload"},
		},
		{
			"duplicates preserved",
			`data-provider="kwik" data-provider="kwik" data-provider="mp4upload"`,
			[]string{"kwik", "kwik", "mp4upload"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ProviderNameList(tt.page)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ProviderNameList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProviderNamesRestartable(t *testing.T) {
	e := New(nil)
	seq := e.ProviderNames(`data-provider="a" data-provider="b"`)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) || len(first) != 2 {
		t.Errorf("ranging twice gave %v then %v", first, second)
	}

	// Stopping early must not affect the next iteration.
	for name := range seq {
		if name != "a" {
			t.Errorf("first yielded = %q, want 'a'", name)
		}
		break
	}
	if got := slices.Collect(seq); len(got) != 2 {
		t.Errorf("after early break got %v", got)
	}
}

func TestProviderSession(t *testing.T) {
	e := New(nil)

	got, err := e.ProviderSession(loadFixture(t, "episode.html"))
	if err != nil {
		t.Fatalf("ProviderSession() error: %v", err)
	}
	if got.EpisodeID != "7731" || got.Token != "f3a9c0d1e2b4" {
		t.Errorf("ProviderSession() = %+v, want first embed call", got)
	}

	_, err = e.ProviderSession(`getEmbeds(abc, "x")`)
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Errorf("ProviderSession() error = %v, want *ExtractionError", err)
	}
}

func TestDetails(t *testing.T) {
	d, err := Details(loadFixture(t, "anime.html"))
	if err != nil {
		t.Fatalf("Details() error: %v", err)
	}
	if d.Synopsis != "A quiet town, a strange visitor." {
		t.Errorf("Synopsis = %q", d.Synopsis)
	}
	if d.Poster != "https://i.animepahe.com/posters/example.jpg" {
		t.Errorf("Poster = %q", d.Poster)
	}
	if d.Type != "TV" {
		t.Errorf("Type = %q, want 'TV'", d.Type)
	}
	if d.Status != "Finished Airing" {
		t.Errorf("Status = %q, want 'Finished Airing'", d.Status)
	}
}

func TestDetailsPosterFallback(t *testing.T) {
	page := `<html><head><meta property="og:image" content="https://img.example/og.jpg"></head><body></body></html>`
	d, err := Details(page)
	if err != nil {
		t.Fatalf("Details() error: %v", err)
	}
	if d.Poster != "https://img.example/og.jpg" {
		t.Errorf("Poster = %q, want og:image fallback", d.Poster)
	}
	if d.Synopsis != "" || d.Type != "" {
		t.Errorf("missing fields should be empty, got %+v", d)
	}
}
