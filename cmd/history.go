package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pahe/internal/config"
	"pahe/internal/history"
	"pahe/internal/media"
	"pahe/internal/ui"
)

var flagRemove bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Replay or manage watch history",
	RunE:  historyRun,
}

func init() {
	historyCmd.Flags().BoolVar(&flagRemove, "remove", false, "Remove the selected entry instead of playing it")
}

func historyRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	path, err := config.HistoryPath()
	if err != nil {
		return err
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(ctx, 0)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if jsonOutput() {
		if entries == nil {
			entries = []media.HistoryEntry{}
		}
		return printJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No history entries found.")
		return nil
	}

	idx, err := ui.Select("History", history.FormatForDisplay(entries))
	if err != nil {
		return err
	}
	selected := entries[idx]

	if flagRemove {
		ok, err := ui.Confirm(fmt.Sprintf("Remove %s?", selected.Episode))
		if err != nil || !ok {
			return err
		}
		return store.Remove(ctx, selected.URL)
	}

	p, err := newProvider(cfg)
	if err != nil {
		return err
	}
	return playEpisode(ctx, p, selected.Anime, selected.AnimeURL, media.Episode{
		Title: selected.Episode,
		URL:   selected.URL,
	})
}
