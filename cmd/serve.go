package cmd

import (
	"github.com/spf13/cobra"

	"pahe/internal/api"
)

var flagListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve search, episodes and qualities over a JSON API",
	RunE:  serveRun,
}

func init() {
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "Listen address (default from config: 127.0.0.1:8089)")
}

func serveRun(cmd *cobra.Command, args []string) error {
	p, err := newProvider(cfg)
	if err != nil {
		return err
	}

	addr := cfg.Listen
	if flagListen != "" {
		addr = flagListen
	}
	return api.Serve(cmd.Context(), api.New(p), addr)
}
