package main

import (
	"fmt"
	"strings"

	"github.com/tanakrit-d/siterag"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Store.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siterag.ErrorMessage(err))
		return err
	}

	if stats.ChunkCount == 0 {
		fmt.Fprintln(deps.Stdout, "Knowledge base is empty. Use 'siterag crawl' to index a site.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Chunks:  %d\n", stats.ChunkCount)
	fmt.Fprintf(deps.Stdout, "Pages:   %d\n", len(stats.URLs))
	fmt.Fprintf(deps.Stdout, "Domains: %s\n", strings.Join(stats.Domains, ", "))
	if !stats.LastCrawledAt.IsZero() {
		fmt.Fprintf(deps.Stdout, "Updated: %s\n", stats.LastCrawledAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}
