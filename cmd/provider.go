package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"golang.org/x/term"

	"pahe/internal/cache"
	"pahe/internal/catalog"
	"pahe/internal/config"
	"pahe/internal/httputil"
	"pahe/internal/provider"
)

// newProvider builds the provider stack described by c: transport, the
// animepahe resolver and, when enabled, the cache in front of it.
func newProvider(c *config.Config) (provider.Provider, error) {
	var transport catalog.Transport
	switch c.Transport {
	case config.TransportTLS:
		t, err := httputil.NewTLSTransport(c.Timeout)
		if err != nil {
			return nil, fmt.Errorf("creating TLS transport: %w", err)
		}
		transport = t
	default:
		transport = httputil.NewTransport(httputil.NewClient(c.Timeout))
	}

	var p provider.Provider = provider.NewAnimePahe(transport, provider.Options{
		Base:    c.Base,
		Servers: c.Servers,
	})
	if c.CacheTTL > 0 {
		p = cache.New(p, c.CacheDuration())
	}
	return p, nil
}

// jsonOutput reports whether results should be printed as JSON rather than
// selected interactively.
func jsonOutput() bool {
	return flagJSON || !term.IsTerminal(int(os.Stdout.Fd()))
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
