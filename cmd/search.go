package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pahe/internal/config"
	"pahe/internal/download"
	"pahe/internal/history"
	"pahe/internal/media"
	"pahe/internal/player"
	"pahe/internal/provider"
	"pahe/internal/ui"
)

// searchRun is the default command: pahe <query>
func searchRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.Join(args, " ")

	if query == "" {
		if jsonOutput() {
			return fmt.Errorf("no search query provided")
		}
		var err error
		query, err = ui.Input("Search")
		if err != nil {
			return fmt.Errorf("no search query provided")
		}
	}

	logrus.WithField("query", query).Debug("searching")

	p, err := newProvider(cfg)
	if err != nil {
		return err
	}

	results, err := p.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput() {
		return printJSON(results)
	}

	if len(results) == 0 {
		return fmt.Errorf("no results found for %q", query)
	}

	items := make([]string, len(results))
	for i, r := range results {
		items[i] = formatResult(r)
	}
	idx, err := ui.Select("Select", items)
	if err != nil {
		return err
	}

	return selectAndPlay(ctx, p, results[idx])
}

// formatResult renders a search result for the picker.
func formatResult(r media.SearchResult) string {
	var meta []string
	if r.Type != "" {
		meta = append(meta, r.Type)
	}
	if r.Episodes > 0 {
		meta = append(meta, fmt.Sprintf("%d eps", r.Episodes))
	}
	if r.Year > 0 {
		meta = append(meta, fmt.Sprint(r.Year))
	}
	if len(meta) == 0 {
		return r.Title
	}
	return fmt.Sprintf("%s (%s)", r.Title, strings.Join(meta, ", "))
}

// selectAndPlay lists the episodes of selected and plays the chosen one.
func selectAndPlay(ctx context.Context, p provider.Provider, selected media.SearchResult) error {
	episodes, err := p.GetEpisodes(ctx, selected.URL)
	if err != nil {
		return fmt.Errorf("getting episodes: %w", err)
	}
	if len(episodes) == 0 {
		return fmt.Errorf("no episodes found")
	}

	items := make([]string, len(episodes))
	for i, ep := range episodes {
		items[i] = ep.Title
	}
	idx, err := ui.Select("Episode", items)
	if err != nil {
		return err
	}

	return playEpisode(ctx, p, selected.Title, selected.URL, episodes[idx])
}

// playEpisode resolves an episode's qualities, then downloads or plays the
// preferred one and records it in the history.
func playEpisode(ctx context.Context, p provider.Provider, anime, animeURL string, ep media.Episode) error {
	qualities, err := p.GetQualities(ctx, ep.URL)
	if err != nil {
		return fmt.Errorf("resolving qualities: %w", err)
	}

	stream, ok := qualities.Best(cfg.Quality)
	if !ok {
		return fmt.Errorf("no playable streams for %s", ep.Title)
	}
	logrus.WithFields(logrus.Fields{
		"quality":   stream.Quality,
		"extractor": stream.Extractor,
		"url":       stream.URL,
	}).Debug("selected stream")

	if flagDownload != "" {
		dir := flagDownload
		if dir == useConfigDir {
			if dir, err = cfg.ExpandDownloadDir(); err != nil {
				return fmt.Errorf("resolving download dir: %w", err)
			}
		}
		outputPath, err := download.Download(ctx, stream, ep.Title, dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Downloaded: %s\n", outputPath)
	} else {
		pl := player.New(cfg.Player)
		if !pl.Available() {
			return fmt.Errorf("player %q not found in PATH", cfg.Player)
		}
		if err := pl.Play(ctx, stream, ep.Title); err != nil {
			return fmt.Errorf("playback failed: %w", err)
		}
	}

	if cfg.History {
		recordHistory(ctx, media.HistoryEntry{
			Anime:    anime,
			AnimeURL: animeURL,
			Episode:  ep.Title,
			URL:      ep.URL,
			Quality:  stream.Quality,
		})
	}
	return nil
}

// recordHistory saves an entry. Failures are only logged.
func recordHistory(ctx context.Context, entry media.HistoryEntry) {
	path, err := config.HistoryPath()
	if err != nil {
		logrus.WithError(err).Warn("locating history")
		return
	}
	store, err := history.Open(path)
	if err != nil {
		logrus.WithError(err).Warn("opening history")
		return
	}
	defer store.Close()

	if err := store.Save(ctx, entry); err != nil {
		logrus.WithError(err).Warn("saving history")
	}
}
