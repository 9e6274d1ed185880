// Package history stores watched episodes in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"pahe/internal/media"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	anime      TEXT NOT NULL,
	anime_url  TEXT NOT NULL,
	episode    TEXT NOT NULL,
	url        TEXT NOT NULL UNIQUE,
	quality    TEXT NOT NULL DEFAULT '',
	watched_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS history_watched_at ON history (watched_at DESC);
`

// Store is a watch history backed by SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save records an episode as watched. Watching the same episode again
// updates its quality and timestamp.
func (s *Store) Save(ctx context.Context, entry media.HistoryEntry) error {
	if entry.WatchedAt == 0 {
		entry.WatchedAt = s.now().Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (anime, anime_url, episode, url, quality, watched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (url) DO UPDATE SET
			anime = excluded.anime,
			anime_url = excluded.anime_url,
			episode = excluded.episode,
			quality = excluded.quality,
			watched_at = excluded.watched_at`,
		entry.Anime, entry.AnimeURL, entry.Episode, entry.URL, entry.Quality, entry.WatchedAt)
	if err != nil {
		return fmt.Errorf("saving history entry %s: %w", entry.URL, err)
	}
	return nil
}

// List returns entries, most recently watched first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]media.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, anime, anime_url, episode, url, quality, watched_at
		FROM history
		ORDER BY watched_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []media.HistoryEntry
	for rows.Next() {
		var e media.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Anime, &e.AnimeURL, &e.Episode, &e.URL, &e.Quality, &e.WatchedAt); err != nil {
			return nil, fmt.Errorf("reading history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return entries, nil
}

// Remove deletes the entry for an episode URL.
func (s *Store) Remove(ctx context.Context, episodeURL string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE url = ?`, episodeURL); err != nil {
		return fmt.Errorf("removing history entry %s: %w", episodeURL, err)
	}
	return nil
}

// FormatForDisplay creates display strings for fzf selection from history entries.
func FormatForDisplay(entries []media.HistoryEntry) []string {
	items := make([]string, len(entries))
	for i, e := range entries {
		watched := time.Unix(e.WatchedAt, 0).Format("2006-01-02 15:04")
		items[i] = fmt.Sprintf("%s [%s]", e.Episode, watched)
		if e.Quality != "" {
			items[i] = fmt.Sprintf("%s [%s, %s]", e.Episode, e.Quality, watched)
		}
	}
	return items
}
