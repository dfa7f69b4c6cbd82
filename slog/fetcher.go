// Package slog provides logging decorators for siterag interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/tanakrit-d/siterag"
)

// Ensure LoggingFetcher implements siterag.Fetcher.
var _ siterag.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-request logging.
type LoggingFetcher struct {
	next   siterag.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next siterag.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome with timing.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch", "url", url, "duration", time.Since(begin), "err", err)
		return "", err
	}
	f.logger.Info("fetch", "url", url, "duration", time.Since(begin), "bytes", len(html))
	return html, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
