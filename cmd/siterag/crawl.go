package main

import (
	"fmt"

	"github.com/tanakrit-d/siterag"
	"github.com/tanakrit-d/siterag/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Crawling %s (up to %d pages)\n", event.URL, c.MaxPages)
		case crawl.ProgressVisited:
			fmt.Fprintf(deps.Stdout, "  [%d] %s\n", event.Visited, event.URL)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Err)
		}
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, c.URL, c.MaxPages, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siterag.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Visited %d pages, indexed %d (%d chunks, %d failed)\n",
		result.PagesVisited, result.PagesStored, result.ChunksStored, result.PagesFailed)
	return nil
}
