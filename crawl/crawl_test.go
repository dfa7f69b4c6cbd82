package crawl_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanakrit-d/siterag"
	"github.com/tanakrit-d/siterag/crawl"
	"github.com/tanakrit-d/siterag/mock"
)

// crawlFixture wires a Crawler over mocks. pages maps URL to HTML body;
// links maps URL to discovered links; missing URLs fail to fetch.
type crawlFixture struct {
	pages map[string]string
	links map[string][]string

	mu     sync.Mutex
	stored []*siterag.ProcessedChunk
}

func (f *crawlFixture) crawler() *crawl.Crawler {
	return &crawl.Crawler{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				body, ok := f.pages[url]
				if !ok {
					return "", siterag.Errorf(siterag.EUNAVAILABLE, "fetch %s: HTTP 404", url)
				}
				return body, nil
			},
		},
		Extractor: &mock.TextExtractor{
			ExtractTextFn: func(html string) (string, error) {
				return html, nil
			},
		},
		Links: &mock.LinkExtractor{
			ExtractLinksFn: func(html, baseURL string) ([]string, error) {
				return f.links[baseURL], nil
			},
		},
		Enricher: &crawl.Enricher{
			Generator: &mock.Generator{
				InvokeFn: func(ctx context.Context, prompt string) (string, error) {
					return `{"title": "A title"}`, nil
				},
			},
			Embedder: &mock.Embedder{
				EmbedQueryFn: func(ctx context.Context, text string) ([]float32, error) {
					return []float32{1, 0}, nil
				},
				DimensionFn: func() int { return 2 },
			},
			Logger: discardLogger(),
		},
		Store: &mock.ChunkStore{
			AddChunksFn: func(ctx context.Context, chunks ...*siterag.ProcessedChunk) error {
				f.mu.Lock()
				defer f.mu.Unlock()
				f.stored = append(f.stored, chunks...)
				return nil
			},
		},
		Logger: discardLogger(),
	}
}

// longText returns page text comfortably above the indexing threshold.
func longText(marker string) string {
	return marker + " " + strings.Repeat("Relevant forum content about symptoms and care. ", 15)
}

func TestCrawler_Crawl(t *testing.T) {
	t.Parallel()

	seed := "https://example.com/forum"

	t.Run("stores chunks with strictly increasing indices per URL", func(t *testing.T) {
		t.Parallel()

		f := &crawlFixture{
			pages: map[string]string{seed: longText("seed")},
			links: map[string][]string{},
		}

		result, err := f.crawler().Crawl(context.Background(), seed, 5, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.PagesStored)
		require.NotEmpty(t, f.stored)
		for i, chunk := range f.stored {
			assert.Equal(t, seed, chunk.URL)
			assert.Equal(t, i, chunk.Index)
			assert.Equal(t, siterag.ChunkID(seed, i), chunk.ID())
		}
	})

	t.Run("terminates on cyclic link graphs within the page cap", func(t *testing.T) {
		t.Parallel()

		a := "https://example.com/a"
		b := "https://example.com/b"
		f := &crawlFixture{
			pages: map[string]string{
				seed: longText("seed"),
				a:    longText("a"),
				b:    longText("b"),
			},
			links: map[string][]string{
				seed: {a, b},
				a:    {b, seed},
				b:    {a, seed},
			},
		}

		result, err := f.crawler().Crawl(context.Background(), seed, 10, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, result.PagesVisited, "each URL is visited at most once")
		assert.Equal(t, 3, result.PagesStored)
	})

	t.Run("respects the page cap", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{seed: longText("seed")}
		links := map[string][]string{}
		var all []string
		for i := 0; i < 20; i++ {
			url := seed + "/topic-" + strings.Repeat("x", i+1)
			pages[url] = longText(url)
			all = append(all, url)
		}
		links[seed] = all

		f := &crawlFixture{pages: pages, links: links}

		result, err := f.crawler().Crawl(context.Background(), seed, 5, nil)

		require.NoError(t, err)
		assert.Equal(t, 5, result.PagesVisited)
		assert.LessOrEqual(t, result.PagesStored, 5)
	})

	t.Run("fetch failures are skipped without aborting the crawl", func(t *testing.T) {
		t.Parallel()

		good := "https://example.com/good"
		bad := "https://example.com/bad"
		f := &crawlFixture{
			pages: map[string]string{
				seed: longText("seed"),
				good: longText("good"),
				// bad is missing and will 404
			},
			links: map[string][]string{
				seed: {bad, good},
			},
		}

		result, err := f.crawler().Crawl(context.Background(), seed, 10, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, result.PagesVisited)
		assert.Equal(t, 2, result.PagesStored)
		assert.Equal(t, 1, result.PagesFailed)
	})

	t.Run("short pages consume a visited slot without being indexed", func(t *testing.T) {
		t.Parallel()

		stub := "https://example.com/stub"
		follow := "https://example.com/follow"
		f := &crawlFixture{
			pages: map[string]string{
				seed:   "tiny",
				stub:   "also tiny",
				follow: longText("follow"),
			},
			links: map[string][]string{
				seed: {stub},
				stub: {follow},
			},
		}

		result, err := f.crawler().Crawl(context.Background(), seed, 10, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, result.PagesVisited)
		assert.Equal(t, 1, result.PagesStored, "only the long page is indexed")

		for _, chunk := range f.stored {
			assert.Equal(t, follow, chunk.URL)
		}
	})

	t.Run("links from short pages still feed the frontier", func(t *testing.T) {
		t.Parallel()

		next := "https://example.com/next"
		f := &crawlFixture{
			pages: map[string]string{
				seed: "tiny",
				next: longText("next"),
			},
			links: map[string][]string{
				seed: {next},
			},
		}

		result, err := f.crawler().Crawl(context.Background(), seed, 10, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.PagesVisited)
		assert.Equal(t, 1, result.PagesStored)
	})

	t.Run("store failures drop chunks but the page still counts", func(t *testing.T) {
		t.Parallel()

		f := &crawlFixture{
			pages: map[string]string{seed: longText("seed")},
			links: map[string][]string{},
		}
		c := f.crawler()
		c.Store = &mock.ChunkStore{
			AddChunksFn: func(ctx context.Context, chunks ...*siterag.ProcessedChunk) error {
				return siterag.Errorf(siterag.EINTERNAL, "disk full")
			},
		}

		result, err := c.Crawl(context.Background(), seed, 5, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.PagesStored)
		assert.Equal(t, 0, result.ChunksStored)
	})

	t.Run("rejects an invalid seed URL", func(t *testing.T) {
		t.Parallel()

		f := &crawlFixture{pages: map[string]string{}, links: map[string][]string{}}

		_, err := f.crawler().Crawl(context.Background(), "not a url", 5, nil)

		require.Error(t, err)
		assert.Equal(t, siterag.EINVALID, siterag.ErrorCode(err))
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		f := &crawlFixture{
			pages: map[string]string{seed: longText("seed")},
			links: map[string][]string{},
		}

		var types []crawl.ProgressType
		_, err := f.crawler().Crawl(context.Background(), seed, 5, func(ev crawl.ProgressEvent) {
			types = append(types, ev.Type)
		})

		require.NoError(t, err)
		assert.Equal(t, []crawl.ProgressType{
			crawl.ProgressStarted,
			crawl.ProgressVisited,
			crawl.ProgressStored,
			crawl.ProgressFinished,
		}, types)
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f := &crawlFixture{
			pages: map[string]string{seed: longText("seed")},
			links: map[string][]string{},
		}

		result, err := f.crawler().Crawl(ctx, seed, 5, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, result.PagesStored)
	})
}
