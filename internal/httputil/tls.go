package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// TLSTransport fetches response bodies with a browser TLS fingerprint, for
// hosts that reject the Go TLS handshake.
type TLSTransport struct {
	client tls_client.HttpClient
}

// NewTLSTransport creates a Chrome-fingerprinted transport.
func NewTLSTransport(timeout time.Duration) (*TLSTransport, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(timeout / time.Second)),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithCookieJar(tls_client.NewCookieJar()),
	}
	client, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("creating tls client: %w", err)
	}
	return &TLSTransport{client: client}, nil
}

// Get performs a GET request and returns the raw body.
func (t *TLSTransport) Get(ctx context.Context, rawURL string, opts RequestOptions) (string, error) {
	target, err := withQuery(rawURL, opts.Query)
	if err != nil {
		return "", err
	}

	req, err := fhttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range opts.Headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

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
