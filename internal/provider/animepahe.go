package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"pahe/internal/catalog"
	"pahe/internal/extract"
	"pahe/internal/httputil"
	"pahe/internal/media"
	"pahe/internal/quality"
)

// DefaultServers lists the providers whose embed data can be resolved.
var DefaultServers = []string{"kwik", "mp4upload"}

// Options configures an AnimePahe provider. Zero values select defaults.
type Options struct {
	Base      string            // Host name, e.g. "animepahe.com"
	Servers   []string          // Supported providers in preference order
	Extractor *extract.Extractor
	Formatter quality.Formatter
}

// AnimePahe implements Provider for the animepahe catalog.
type AnimePahe struct {
	base      string
	transport catalog.Transport
	client    *catalog.Client
	extractor *extract.Extractor
	formatter quality.Formatter
	servers   []string
	headers   http.Header
}

// NewAnimePahe creates a provider that fetches through transport.
func NewAnimePahe(transport catalog.Transport, opts Options) *AnimePahe {
	base := opts.Base
	if base == "" {
		base = "animepahe.com"
	}
	servers := opts.Servers
	if len(servers) == 0 {
		servers = DefaultServers
	}
	ext := opts.Extractor
	if ext == nil {
		ext = extract.New(nil)
	}
	formatter := opts.Formatter
	if formatter == nil {
		formatter = quality.Default{}
	}

	a := &AnimePahe{
		base:      base,
		transport: transport,
		extractor: ext,
		formatter: formatter,
		servers:   servers,
	}
	a.headers = httputil.Headers(map[string]string{"Referer": a.Referer()})
	a.client = catalog.New(transport, a.APIURL(), a.headers)
	return a
}

func (a *AnimePahe) baseURL() string {
	return "https://" + a.base
}

// APIURL returns the JSON API endpoint.
func (a *AnimePahe) APIURL() string {
	return a.baseURL() + "/api"
}

// CatalogURL returns the catalog entry prefix; entries live at
// CatalogURL()+slug.
func (a *AnimePahe) CatalogURL() string {
	return a.baseURL() + "/anime/"
}

// Referer returns the Referer sent with every request.
func (a *AnimePahe) Referer() string {
	return a.baseURL() + "/"
}

// Search returns matching catalog entries. No hits is not an error.
func (a *AnimePahe) Search(ctx context.Context, query string) ([]media.SearchResult, error) {
	hits, err := a.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	return lo.Map(hits, func(h catalog.SearchHit, _ int) media.SearchResult {
		return media.SearchResult{
			Title:    h.Title,
			URL:      a.CatalogURL() + h.Slug,
			Poster:   h.Image,
			Type:     h.Type,
			Episodes: h.Episodes,
			Year:     h.Year,
		}
	}), nil
}

// GetDetails returns metadata from a catalog entry page.
func (a *AnimePahe) GetDetails(ctx context.Context, catalogURL string) (media.Details, error) {
	page, err := a.fetchPage(ctx, catalogURL)
	if err != nil {
		return media.Details{}, err
	}

	d, err := extract.Details(page)
	if err != nil {
		return media.Details{}, err
	}
	if d.Title, err = a.extractor.Title(page); err != nil {
		return media.Details{}, err
	}
	if d.CatalogID, err = a.extractor.CatalogID(page); err != nil {
		return media.Details{}, err
	}
	return d, nil
}

func (a *AnimePahe) fetchPage(ctx context.Context, pageURL string) (string, error) {
	logrus.WithField("url", pageURL).Debug("fetching page")
	page, err := a.transport.Get(ctx, pageURL, httputil.RequestOptions{Headers: a.headers})
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	return page, nil
}

// supported reports whether server is in the supported list,
// ignoring case.
func (a *AnimePahe) supported(server string) bool {
	return lo.ContainsBy(a.servers, func(s string) bool {
		return strings.EqualFold(s, server)
	})
}
