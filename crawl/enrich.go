package crawl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/tanakrit-d/siterag"
	"golang.org/x/sync/errgroup"
)

// titlePrompt is the fixed instruction template for title synthesis. The
// chunk text is appended after it.
const titlePrompt = `Analyze the following content and produce a concise title of at most 10-15 words.
The title should capture the key point of the content.
Respond with JSON only, containing a single 'title' key.
Example: {"title": "How to care for patients with diabetes"}
Do not include any explanation or other text outside the JSON.`

// titleSampleSize limits how much of a chunk is sent for title synthesis.
const titleSampleSize = 1500

// Enricher turns raw text chunks into ProcessedChunks by synthesizing a
// title and computing an embedding for each. Both calls are best-effort: a
// failed title falls back to a default derived from the source domain, and a
// failed embedding falls back to a zero vector of the collection dimension.
// Neither failure aborts sibling chunks.
type Enricher struct {
	Generator siterag.Generator
	Embedder  siterag.Embedder
	Logger    *slog.Logger
}

// EnrichChunks enriches every raw chunk of pageURL concurrently and returns
// the processed chunks in their original order with strictly increasing
// indices from 0.
func (e *Enricher) EnrichChunks(ctx context.Context, pageURL string, rawChunks []string) []*siterag.ProcessedChunk {
	crawledAt := time.Now().UTC()
	host, path := splitURL(pageURL)

	chunks := make([]*siterag.ProcessedChunk, len(rawChunks))
	var g errgroup.Group
	for i, raw := range rawChunks {
		g.Go(func() error {
			chunks[i] = e.enrichChunk(ctx, pageURL, host, path, crawledAt, i, raw)
			return nil
		})
	}
	_ = g.Wait()

	return chunks
}

// enrichChunk runs title synthesis and embedding for one chunk concurrently
// and joins both before returning.
func (e *Enricher) enrichChunk(ctx context.Context, pageURL, host, path string, crawledAt time.Time, index int, raw string) *siterag.ProcessedChunk {
	var title string
	var embedding []float32

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		title = e.synthesizeTitle(ctx, pageURL, host, raw)
	}()
	go func() {
		defer wg.Done()
		embedding = e.embed(ctx, pageURL, index, raw)
	}()
	wg.Wait()

	return &siterag.ProcessedChunk{
		URL:     pageURL,
		Index:   index,
		Title:   title,
		Summary: raw,
		Content: raw,
		Metadata: siterag.ChunkMetadata{
			Source:    host,
			ChunkSize: len(raw),
			CrawledAt: crawledAt,
			URLPath:   path,
		},
		Embedding: embedding,
	}
}

// synthesizeTitle asks the generator for a JSON-wrapped title over the first
// titleSampleSize bytes of the chunk. Any failure yields the default title.
func (e *Enricher) synthesizeTitle(ctx context.Context, pageURL, host, chunk string) string {
	fallback := DefaultTitle(host)

	sample := chunk
	if len(sample) > titleSampleSize {
		sample = sample[:titleSampleSize]
	}

	response, err := e.Generator.Invoke(ctx, fmt.Sprintf("%s\n\nContent:\n%s", titlePrompt, sample))
	if err != nil {
		e.Logger.Warn("title synthesis failed, using default title",
			"url", pageURL, "error", err)
		return fallback
	}

	title, ok := ParseTitle(response)
	if !ok {
		e.Logger.Warn("malformed title response, using default title",
			"url", pageURL, "response", truncate(response, 200))
		return fallback
	}
	return title
}

// embed computes the chunk embedding, substituting a zero vector of the
// collection dimension on failure so the chunk is stored in degraded form
// rather than dropped.
func (e *Enricher) embed(ctx context.Context, pageURL string, index int, chunk string) []float32 {
	embedding, err := e.Embedder.EmbedQuery(ctx, chunk)
	if err != nil {
		e.Logger.Warn("embedding failed, using zero vector",
			"url", pageURL, "chunk", index, "error", err)
		return make([]float32, e.Embedder.Dimension())
	}
	return embedding
}

// titleResponse is the expected shape of a title synthesis response.
type titleResponse struct {
	Title string `json:"title"`
}

// ParseTitle extracts the synthesized title from a generation response. It
// parses the first well-formed {...} substring and validates that it carries
// a non-empty "title" key. The bool result is false when no such substring
// exists; ParseTitle never panics on arbitrary model output.
func ParseTitle(response string) (string, bool) {
	start := strings.Index(response, "{")
	if start == -1 {
		return "", false
	}

	rest := response[start:]
	for end := strings.Index(rest, "}"); end != -1; end = nextBrace(rest, end) {
		var parsed titleResponse
		if err := json.Unmarshal([]byte(rest[:end+1]), &parsed); err == nil {
			title := strings.TrimSpace(parsed.Title)
			if title == "" {
				return "", false
			}
			return title, true
		}
	}
	return "", false
}

// nextBrace returns the index of the next '}' after pos, or -1.
func nextBrace(s string, pos int) int {
	idx := strings.Index(s[pos+1:], "}")
	if idx == -1 {
		return -1
	}
	return pos + 1 + idx
}

// DefaultTitle is the fallback title for chunks whose synthesis failed.
func DefaultTitle(host string) string {
	return fmt.Sprintf("content from %s", host)
}

// splitURL returns the host and path of rawURL, degrading to the raw string
// as host when it cannot be parsed.
func splitURL(rawURL string) (host, path string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL, ""
	}
	return u.Host, u.Path
}

// truncate shortens s for log output.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
