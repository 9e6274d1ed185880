package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pahe/internal/httputil"
	"pahe/internal/ui"
)

var episodesCmd = &cobra.Command{
	Use:   "episodes <catalog-url>",
	Short: "List every episode of a catalog entry",
	Args:  cobra.ExactArgs(1),
	RunE:  episodesRun,
}

func episodesRun(cmd *cobra.Command, args []string) error {
	catalogURL := args[0]
	if err := httputil.ValidateURL(catalogURL); err != nil {
		return fmt.Errorf("invalid catalog URL: %w", err)
	}

	p, err := newProvider(cfg)
	if err != nil {
		return err
	}

	episodes, err := p.GetEpisodes(cmd.Context(), catalogURL)
	if err != nil {
		return fmt.Errorf("getting episodes: %w", err)
	}

	if jsonOutput() {
		return printJSON(episodes)
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

	var anime string
	if d, err := p.GetDetails(cmd.Context(), catalogURL); err == nil {
		anime = d.Title
	}
	return playEpisode(cmd.Context(), p, anime, catalogURL, episodes[idx])
}
