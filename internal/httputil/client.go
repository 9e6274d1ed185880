// Package httputil provides the HTTP transports used to reach the catalog,
// the shared header set, and input sanitization utilities.
package httputil

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"time"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 10 * 1024 * 1024

const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/121.0"

// RequestOptions carries per-request query parameters and headers.
type RequestOptions struct {
	Query   url.Values
	Headers http.Header
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.Code, e.URL)
}

// NewClient creates a hardened HTTP client with secure defaults.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			ForceAttemptHTTP2:   true,
			MaxIdleConns:        10,
			IdleConnTimeout:     30 * time.Second,
			DisableCompression:  false,
			MaxIdleConnsPerHost: 5,
		},
	}
}

// Headers returns the browser-like base header set merged with overrides.
func Headers(overrides map[string]string) http.Header {
	h := http.Header{}
	h.Set("User-Agent", userAgent)
	h.Set("Accept", "text/html,application/xhtml+xml,application/json,application/xml;q=0.9,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.5")
	for k, v := range overrides {
		h.Set(k, v)
	}
	return h
}

// Transport fetches response bodies with a standard net/http client.
type Transport struct {
	client *http.Client
}

// NewTransport wraps client. A nil client uses NewClient's defaults.
func NewTransport(client *http.Client) *Transport {
	if client == nil {
		client = NewClient(0)
	}
	return &Transport{client: client}
}

// Get performs a GET request and returns the raw body.
func (t *Transport) Get(ctx context.Context, rawURL string, opts RequestOptions) (string, error) {
	target, err := withQuery(rawURL, opts.Query)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	maps.Copy(req.Header, opts.Headers)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{URL: target, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return string(body), nil
}

// withQuery validates rawURL and merges query into its existing parameters.
func withQuery(rawURL string, query url.Values) (string, error) {
	if err := ValidateURL(rawURL); err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if len(query) == 0 {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	q := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
