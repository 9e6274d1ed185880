package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pahe/internal/httputil"
	"pahe/internal/media"
)

var qualitiesCmd = &cobra.Command{
	Use:   "qualities <episode-url>",
	Short: "Resolve the playable qualities of an episode",
	Args:  cobra.ExactArgs(1),
	RunE:  qualitiesRun,
}

func qualitiesRun(cmd *cobra.Command, args []string) error {
	episodeURL := args[0]
	if err := httputil.ValidateURL(episodeURL); err != nil {
		return fmt.Errorf("invalid episode URL: %w", err)
	}

	p, err := newProvider(cfg)
	if err != nil {
		return err
	}

	q, err := p.GetQualities(cmd.Context(), episodeURL)
	if err != nil {
		return fmt.Errorf("resolving qualities: %w", err)
	}

	if flagJSON {
		return printJSON(q)
	}
	return printQualities(os.Stdout, q)
}

// printQualities writes one line per quality in provider order.
func printQualities(w io.Writer, q *media.QualityMap) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range q.Streams() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Quality, s.Extractor, s.URL)
	}
	return tw.Flush()
}
