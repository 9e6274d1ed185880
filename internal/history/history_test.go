package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pahe/internal/media"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func entry(n string, watchedAt int64) media.HistoryEntry {
	return media.HistoryEntry{
		Anime:     "Example",
		AnimeURL:  "https://animepahe.com/anime/example",
		Episode:   "Example Episode " + n,
		URL:       "https://animepahe.com/anime/example/" + n,
		Quality:   "720p",
		WatchedAt: watchedAt,
	}
}

func TestSaveAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i, n := range []string{"1", "2", "3"} {
		if err := s.Save(ctx, entry(n, int64(100+i))); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
	}

	entries, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Episode != "Example Episode 3" {
		t.Errorf("newest entry first, got %q", entries[0].Episode)
	}
	if entries[0].ID == 0 {
		t.Error("entries should carry their row ID")
	}
	if entries[2].AnimeURL != "https://animepahe.com/anime/example" {
		t.Errorf("AnimeURL = %q", entries[2].AnimeURL)
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List(2) error: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("List(2) returned %d entries", len(limited))
	}
}

func TestSaveUpdatesExisting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, entry("1", 100)); err != nil {
		t.Fatal(err)
	}
	updated := entry("1", 200)
	updated.Quality = "1080p"
	if err := s.Save(ctx, updated); err != nil {
		t.Fatal(err)
	}

	entries, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after update, got %d", len(entries))
	}
	if entries[0].Quality != "1080p" || entries[0].WatchedAt != 200 {
		t.Errorf("entry not updated: %+v", entries[0])
	}
}

func TestSaveStampsTime(t *testing.T) {
	s := openTestStore(t)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }

	if err := s.Save(context.Background(), entry("1", 0)); err != nil {
		t.Fatal(err)
	}
	entries, _ := s.List(context.Background(), 0)
	if entries[0].WatchedAt != 1700000000 {
		t.Errorf("WatchedAt = %d, want 1700000000", entries[0].WatchedAt)
	}
}

func TestRemove(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Save(ctx, entry("1", 100))
	s.Save(ctx, entry("2", 200))

	if err := s.Remove(ctx, "https://animepahe.com/anime/example/1"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}

	entries, _ := s.List(ctx, 0)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after remove, got %d", len(entries))
	}
	if entries[0].Episode != "Example Episode 2" {
		t.Errorf("wrong entry removed, remaining %q", entries[0].Episode)
	}
}

func TestListEmpty(t *testing.T) {
	s := openTestStore(t)
	entries, err := s.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Save(context.Background(), entry("1", 100))
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	entries, _ := s.List(context.Background(), 0)
	if len(entries) != 1 {
		t.Errorf("expected entry to persist, got %d", len(entries))
	}
}

func TestFormatForDisplay(t *testing.T) {
	items := FormatForDisplay([]media.HistoryEntry{entry("1", 0)})
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if !strings.HasPrefix(items[0], "Example Episode 1 [720p, ") {
		t.Errorf("item = %q", items[0])
	}
}
