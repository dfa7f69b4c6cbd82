// Package http provides an HTTP-based implementation of siterag.Fetcher.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tanakrit-d/siterag"
)

// DefaultFetchTimeout bounds a single page fetch.
const DefaultFetchTimeout = 30 * time.Second

// userAgent identifies the crawler to target servers.
const userAgent = "siterag/1.0 (+https://github.com/tanakrit-d/siterag)"

// Ensure Fetcher implements siterag.Fetcher at compile time.
var _ siterag.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page bodies over plain HTTP. It does not execute
// JavaScript; pages are indexed as served.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body of the given URL. Any status other than 200 is
// an error carrying the EUNAVAILABLE code so callers can treat the page as
// skippable rather than as a fault.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", siterag.Errorf(siterag.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", siterag.Errorf(siterag.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", siterag.Errorf(siterag.EUNAVAILABLE, "fetch %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body for %s: %w", url, err)
	}

	return string(body), nil
}

// Close releases resources. A no-op since http.Client requires no explicit
// cleanup.
func (f *Fetcher) Close() error {
	return nil
}
