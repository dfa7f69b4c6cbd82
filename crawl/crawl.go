// Package crawl provides same-domain crawl orchestration. It drives the
// fetch, extract, chunk, enrich and store pipeline for every page reachable
// from a seed URL, bounded by a page cap.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/tanakrit-d/siterag"
	"golang.org/x/sync/errgroup"
)

// Frontier sizing for Bloom filter deduplication.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// minContentLength is the minimum extracted text length for a page to be
// indexed. Shorter pages still consume a visited slot and still contribute
// links to the frontier.
const minContentLength = 500

// DefaultMaxPages caps a crawl when the caller does not.
const DefaultMaxPages = 100

// storeConcurrency bounds concurrent chunk writes for one page. Chunk IDs
// are unique within a page, so writes cannot collide.
const storeConcurrency = 4

// Crawler orchestrates crawling a site into the chunk store. It owns the
// frontier; all visited/queued mutation happens on the Crawl goroutine, so a
// URL is visited at most once per run.
type Crawler struct {
	Fetcher   siterag.Fetcher
	Extractor siterag.TextExtractor
	Links     siterag.LinkExtractor
	Enricher  *Enricher
	Store     siterag.ChunkStore
	Limiter   *DomainLimiter
	Logger    *slog.Logger
}

// Result holds the outcome of a crawl operation.
type Result struct {
	// PagesVisited is the number of unique URLs fetched (or attempted).
	PagesVisited int

	// PagesStored is the number of pages whose content was chunked and
	// stored. This is the crawl's primary return value.
	PagesStored int

	// PagesFailed is the number of pages that could not be fetched.
	PagesFailed int

	// ChunksStored is the total number of chunk records written.
	ChunksStored int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressVisited
	ProgressStored
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type    ProgressType
	URL     string
	Visited int
	Stored  int
	Err     error
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawl walks the site from seedURL, visiting at most maxPages unique URLs,
// and stores enriched chunks for every page with enough extracted text. It
// returns the crawl totals; per-page failures are logged and absorbed, so
// the only errors are an invalid seed URL or context cancellation before
// any work could happen.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, maxPages int, progress ProgressFunc) (*Result, error) {
	seed, err := url.Parse(seedURL)
	if err != nil || seed.Host == "" {
		return nil, siterag.Errorf(siterag.EINVALID, "invalid seed URL %q", seedURL)
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	logger := c.Logger.With("run", uuid.New().String(), "seed", seedURL)
	logger.Info("starting crawl", "max_pages", maxPages)

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(seedURL)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, URL: seedURL})
	}

	var result Result
	for result.PagesVisited < maxPages {
		pageURL, ok := frontier.Pop()
		if !ok {
			break
		}
		if ctx.Err() != nil {
			break
		}

		// Politeness: space requests to the host by the fixed interval.
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx, seed.Host); err != nil {
				break
			}
		}

		result.PagesVisited++
		if progress != nil {
			progress(ProgressEvent{Type: ProgressVisited, URL: pageURL, Visited: result.PagesVisited})
		}

		html, err := c.Fetcher.Fetch(ctx, pageURL)
		if err != nil {
			// No retry and no link discovery for failed pages.
			result.PagesFailed++
			logger.Warn("fetch failed, skipping page", "url", pageURL, "error", err)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, URL: pageURL, Err: err})
			}
			continue
		}

		c.enqueueLinks(html, pageURL, frontier, logger)

		text, err := c.Extractor.ExtractText(html)
		if err != nil {
			logger.Warn("text extraction failed, skipping page", "url", pageURL, "error", err)
			continue
		}
		if len(text) <= minContentLength {
			logger.Debug("page below content threshold, not indexed",
				"url", pageURL, "length", len(text))
			continue
		}

		stored := c.processPage(ctx, pageURL, text, logger)
		result.ChunksStored += stored
		result.PagesStored++
		if progress != nil {
			progress(ProgressEvent{Type: ProgressStored, URL: pageURL, Stored: result.PagesStored})
		}
	}

	logger.Info("crawl complete",
		"visited", result.PagesVisited,
		"stored", result.PagesStored,
		"failed", result.PagesFailed,
		"chunks", result.ChunksStored,
	)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Visited: result.PagesVisited, Stored: result.PagesStored})
	}

	return &result, nil
}

// enqueueLinks merges the page's same-domain links into the frontier. The
// frontier rejects anything already seen.
func (c *Crawler) enqueueLinks(html, pageURL string, frontier *Frontier, logger *slog.Logger) {
	links, err := c.Links.ExtractLinks(html, pageURL)
	if err != nil {
		logger.Warn("link extraction failed", "url", pageURL, "error", err)
		return
	}
	for _, link := range links {
		frontier.Push(link)
	}
}

// processPage chunks, enriches and stores one page's text, returning the
// number of chunks written. Store failures drop individual chunks; the page
// may end up partially indexed.
func (c *Crawler) processPage(ctx context.Context, pageURL, text string, logger *slog.Logger) int {
	rawChunks := siterag.SplitText(text, siterag.DefaultChunkSize)
	chunks := c.Enricher.EnrichChunks(ctx, pageURL, rawChunks)

	var stored atomic.Int64
	var g errgroup.Group
	g.SetLimit(storeConcurrency)
	for _, chunk := range chunks {
		g.Go(func() error {
			if err := c.Store.AddChunks(ctx, chunk); err != nil {
				logger.Warn("chunk store write failed, dropping chunk",
					"url", pageURL, "chunk", chunk.Index, "error", err)
				return nil
			}
			stored.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("page indexed", "url", pageURL, "chunks", stored.Load())
	return int(stored.Load())
}
