// Package catalog talks to the catalog's JSON API: search, release pages and
// provider embed data.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"pahe/internal/httputil"
)

// searchLimit is the number of hits requested per search.
const searchLimit = 8

// Transport fetches a URL and returns the raw response body.
type Transport interface {
	Get(ctx context.Context, rawURL string, opts httputil.RequestOptions) (string, error)
}

// APIUsageError is returned when the API answers a well-formed request with
// an empty body, usually because a session token is stale.
type APIUsageError struct {
	Params url.Values
}

func (e *APIUsageError) Error() string {
	return fmt.Sprintf("incorrect API usage with parameters: %s", e.Params.Encode())
}

// Client issues the supported remote API operations.
type Client struct {
	transport Transport
	apiURL    string
	headers   http.Header
}

// New creates a Client for the API endpoint at apiURL. headers are sent with
// every request.
func New(transport Transport, apiURL string, headers http.Header) *Client {
	return &Client{
		transport: transport,
		apiURL:    apiURL,
		headers:   headers,
	}
}

// Search returns the raw hits for query. A response without data means no
// results and is not an error.
func (c *Client) Search(ctx context.Context, query string) ([]SearchHit, error) {
	params := url.Values{
		"l": {strconv.Itoa(searchLimit)},
		"m": {"search"},
		"q": {query},
	}
	logrus.WithField("query", query).Debug("searching catalog")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("searching for %q: %w", query, err)
	}
	return parseSearch(body)
}

// FetchReleasePage returns one page of the episode listing for catalogID.
// Pages start at 1.
func (c *Client) FetchReleasePage(ctx context.Context, catalogID, page int) (ReleasePage, error) {
	params := url.Values{
		"m":    {"release"},
		"id":   {strconv.Itoa(catalogID)},
		"sort": {"episode_asc"},
		"page": {strconv.Itoa(page)},
	}
	logrus.WithFields(logrus.Fields{"id": catalogID, "page": page}).Debug("fetching release page")

	body, err := c.get(ctx, params)
	if err != nil {
		return ReleasePage{}, fmt.Errorf("getting release page %d of %d: %w", page, catalogID, err)
	}
	return parseReleasePage(body)
}

// FetchEmbedData returns the stream sources a provider reports for an
// episode, in the order the API lists them.
func (c *Client) FetchEmbedData(ctx context.Context, provider, episodeID, session string) ([]EmbedSource, error) {
	params := url.Values{
		"id":      {episodeID},
		"m":       {"embed"},
		"p":       {provider},
		"session": {session},
	}
	logrus.WithFields(logrus.Fields{"server": provider, "episode": episodeID}).Debug("fetching embed data")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("getting embed data from %s: %w", provider, err)
	}
	if body == "" {
		return nil, &APIUsageError{Params: params}
	}
	return parseEmbed(body)
}

func (c *Client) get(ctx context.Context, params url.Values) (string, error) {
	return c.transport.Get(ctx, c.apiURL, httputil.RequestOptions{
		Query:   params,
		Headers: c.headers,
	})
}
