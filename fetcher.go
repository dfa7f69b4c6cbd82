package siterag

import "context"

// Fetcher retrieves page content from URLs.
type Fetcher interface {
	// Fetch performs a timeout-bounded GET and returns the response body.
	// Any non-200 status, network error, or timeout is returned as an error.
	// The context controls cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
