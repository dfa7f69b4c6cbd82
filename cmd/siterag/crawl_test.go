package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanakrit-d/siterag"
	main "github.com/tanakrit-d/siterag/cmd/siterag"
	"github.com/tanakrit-d/siterag/crawl"
	"github.com/tanakrit-d/siterag/mock"
)

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints per-page progress and a summary", func(t *testing.T) {
		t.Parallel()

		seed := "https://example.com/forum"
		page := seed + " " + strings.Repeat("Forum thread content answered by a doctor. ", 15)
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		crawler := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return page, nil
				},
			},
			Extractor: &mock.TextExtractor{
				ExtractTextFn: func(html string) (string, error) { return html, nil },
			},
			Links: &mock.LinkExtractor{
				ExtractLinksFn: func(html, baseURL string) ([]string, error) { return nil, nil },
			},
			Enricher: &crawl.Enricher{
				Generator: &mock.Generator{
					InvokeFn: func(ctx context.Context, prompt string) (string, error) {
						return `{"title": "Forum thread"}`, nil
					},
				},
				Embedder: &mock.Embedder{
					EmbedQueryFn: func(ctx context.Context, text string) ([]float32, error) {
						return []float32{1}, nil
					},
					DimensionFn: func() int { return 1 },
				},
				Logger: logger,
			},
			Store: &mock.ChunkStore{
				AddChunksFn: func(ctx context.Context, chunks ...*siterag.ProcessedChunk) error {
					return nil
				},
			},
			Logger: logger,
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Crawler: crawler,
		}

		cmd := &main.CrawlCmd{URL: seed, MaxPages: 5}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Crawling "+seed)
		assert.Contains(t, stdout.String(), "[1] "+seed)
		assert.Contains(t, stdout.String(), "Visited 1 pages, indexed 1")
	})

	t.Run("returns an error for an invalid seed", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		crawler := &crawl.Crawler{Logger: logger}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Crawler: crawler,
		}

		cmd := &main.CrawlCmd{URL: "::not-a-url", MaxPages: 5}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, siterag.EINVALID, siterag.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
