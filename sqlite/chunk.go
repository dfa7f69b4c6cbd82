package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/tanakrit-d/siterag"
)

// Compile-time interface verification.
var _ siterag.ChunkStore = (*ChunkService)(nil)

// ChunkService implements siterag.ChunkStore using SQLite. Embeddings are
// stored as little-endian float32 blobs; nearest-neighbor queries score every
// stored vector by cosine similarity. The collection is expected to hold a
// single site's chunks, so a linear scan is the storage engine here.
type ChunkService struct {
	db        *DB
	dimension int
}

// NewChunkService creates a new ChunkService for vectors of the given
// fixed dimension.
func NewChunkService(db *DB, dimension int) *ChunkService {
	return &ChunkService{db: db, dimension: dimension}
}

// Dimension returns the collection's embedding dimension.
func (s *ChunkService) Dimension() int {
	return s.dimension
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, h)
	return hex.EncodeToString(b)
}

// AddChunks upserts chunks keyed by their composite ID. A chunk whose
// embedding dimension differs from the collection's is rejected to keep the
// embedding space consistent.
func (s *ChunkService) AddChunks(ctx context.Context, chunks ...*siterag.ProcessedChunk) error {
	for _, chunk := range chunks {
		if err := chunk.Validate(); err != nil {
			return err
		}
		if len(chunk.Embedding) != s.dimension {
			return siterag.Errorf(siterag.EINVALID,
				"embedding dimension mismatch for %s: got %d, want %d",
				chunk.ID(), len(chunk.Embedding), s.dimension)
		}

		_, err := s.db.ExecContext(ctx, `
			INSERT INTO chunks (id, url, chunk_index, title, summary, content, content_hash,
				source, chunk_size, crawled_at, url_path, embedding)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				summary = excluded.summary,
				content = excluded.content,
				content_hash = excluded.content_hash,
				source = excluded.source,
				chunk_size = excluded.chunk_size,
				crawled_at = excluded.crawled_at,
				url_path = excluded.url_path,
				embedding = excluded.embedding
		`, chunk.ID(), chunk.URL, chunk.Index, chunk.Title, chunk.Summary, chunk.Content,
			hashContent(chunk.Content), chunk.Metadata.Source, chunk.Metadata.ChunkSize,
			chunk.Metadata.CrawledAt.UTC().Format(time.RFC3339), chunk.Metadata.URLPath,
			encodeEmbedding(chunk.Embedding))
		if err != nil {
			return fmt.Errorf("upsert chunk %s: %w", chunk.ID(), err)
		}
	}
	return nil
}

// ListChunks returns all stored chunks ordered by URL and index, without
// embeddings.
func (s *ChunkService) ListChunks(ctx context.Context) ([]*siterag.ProcessedChunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, chunk_index, title, summary, content, source, chunk_size, crawled_at, url_path
		FROM chunks
		ORDER BY url ASC, chunk_index ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*siterag.ProcessedChunk
	for rows.Next() {
		chunk, err := scanChunk(rows.Scan)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

// QueryChunks returns the k chunks nearest to embedding by cosine
// similarity, most similar first.
func (s *ChunkService) QueryChunks(ctx context.Context, embedding []float32, k int) ([]*siterag.ProcessedChunk, error) {
	if len(embedding) != s.dimension {
		return nil, siterag.Errorf(siterag.EINVALID,
			"query dimension mismatch: got %d, want %d", len(embedding), s.dimension)
	}
	if k <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT url, chunk_index, title, summary, content, source, chunk_size, crawled_at, url_path, embedding
		FROM chunks
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type scored struct {
		chunk *siterag.ProcessedChunk
		score float64
	}
	var candidates []scored

	for rows.Next() {
		var blob []byte
		chunk, err := scanChunk(func(dest ...any) error {
			return rows.Scan(append(dest, &blob)...)
		})
		if err != nil {
			return nil, err
		}
		chunk.Embedding = decodeEmbedding(blob)
		candidates = append(candidates, scored{
			chunk: chunk,
			score: cosineSimilarity(embedding, chunk.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}

	chunks := make([]*siterag.ProcessedChunk, len(candidates))
	for i, c := range candidates {
		chunks[i] = c.chunk
	}
	return chunks, nil
}

// Stats summarizes the stored collection.
func (s *ChunkService) Stats(ctx context.Context) (*siterag.StoreStats, error) {
	stats := &siterag.StoreStats{}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&stats.ChunkCount); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT url FROM chunks ORDER BY url ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		stats.URLs = append(stats.URLs, url)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	domainRows, err := s.db.QueryContext(ctx, `SELECT DISTINCT source FROM chunks ORDER BY source ASC`)
	if err != nil {
		return nil, err
	}
	defer domainRows.Close()
	for domainRows.Next() {
		var domain string
		if err := domainRows.Scan(&domain); err != nil {
			return nil, err
		}
		stats.Domains = append(stats.Domains, domain)
	}
	if err := domainRows.Err(); err != nil {
		return nil, err
	}

	var last *string
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(crawled_at) FROM chunks`).Scan(&last); err != nil {
		return nil, err
	}
	if last != nil {
		t, err := time.Parse(time.RFC3339, *last)
		if err != nil {
			return nil, fmt.Errorf("failed to parse crawled_at: %w", err)
		}
		stats.LastCrawledAt = t
	}

	return stats, nil
}

// scanChunk builds a chunk from a row scan over the standard column order
// (url, chunk_index, title, summary, content, source, chunk_size, crawled_at,
// url_path). The scan callback may append extra destinations.
func scanChunk(scan func(dest ...any) error) (*siterag.ProcessedChunk, error) {
	var chunk siterag.ProcessedChunk
	var crawledAt string

	err := scan(&chunk.URL, &chunk.Index, &chunk.Title, &chunk.Summary, &chunk.Content,
		&chunk.Metadata.Source, &chunk.Metadata.ChunkSize, &crawledAt, &chunk.Metadata.URLPath)
	if err != nil {
		return nil, err
	}

	chunk.Metadata.CrawledAt, err = time.Parse(time.RFC3339, crawledAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse crawled_at: %w", err)
	}

	return &chunk, nil
}

// encodeEmbedding serializes a vector as little-endian float32 bytes.
func encodeEmbedding(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// decodeEmbedding deserializes a little-endian float32 byte blob.
func decodeEmbedding(buf []byte) []float32 {
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec
}

// cosineSimilarity computes the cosine similarity of two equal-length
// vectors. Zero vectors score zero against everything.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
