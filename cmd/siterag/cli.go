package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/tanakrit-d/siterag"
	"github.com/tanakrit-d/siterag/crawl"
	"github.com/tanakrit-d/siterag/rag"
	"github.com/tanakrit-d/siterag/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Store     siterag.ChunkStore
	Crawler   *crawl.Crawler
	Assembler *rag.Assembler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Crawl CrawlCmd `cmd:"" help:"Crawl a site into the knowledge base"`
	Ask   AskCmd   `cmd:"" help:"Ask a single question against the knowledge base"`
	Chat  ChatCmd  `cmd:"" help:"Start an interactive chat session"`
	Stats StatsCmd `cmd:"" help:"Show knowledge base statistics"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL      string  `arg:"" help:"Seed URL; the crawl stays on its host"`
	MaxPages int     `short:"n" default:"100" help:"Maximum number of pages to visit"`
	Article  bool    `short:"a" help:"Use article-oriented text extraction"`
	RPS      float64 `default:"1.0" help:"Requests per second per host"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask"`
	TopK     int    `short:"k" default:"3" help:"Number of chunks to retrieve"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	TopK int `short:"k" default:"3" help:"Number of chunks to retrieve per question"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}
