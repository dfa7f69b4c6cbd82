package siterag

import (
	"context"
	"time"
)

// ChunkStore persists enriched chunks in a single fixed-dimension cosine
// embedding space keyed by the chunk's composite ID.
type ChunkStore interface {
	// AddChunks upserts chunks by ID. Writing a chunk with an existing
	// (URL, index) pair overwrites the prior record.
	AddChunks(ctx context.Context, chunks ...*ProcessedChunk) error

	// ListChunks returns all stored chunks without embeddings.
	ListChunks(ctx context.Context) ([]*ProcessedChunk, error)

	// QueryChunks returns the k stored chunks nearest to embedding by cosine
	// similarity, most similar first. Fewer than k chunks are returned when
	// the store holds fewer records.
	QueryChunks(ctx context.Context, embedding []float32, k int) ([]*ProcessedChunk, error)

	// Stats summarizes the stored collection.
	Stats(ctx context.Context) (*StoreStats, error)
}

// StoreStats summarizes the contents of a chunk store.
type StoreStats struct {
	// ChunkCount is the total number of stored chunks.
	ChunkCount int `json:"chunkCount"`

	// URLs are the distinct page URLs with at least one stored chunk.
	URLs []string `json:"urls"`

	// Domains are the distinct source hosts.
	Domains []string `json:"domains"`

	// LastCrawledAt is the most recent crawl timestamp across all chunks.
	// Zero when the store is empty.
	LastCrawledAt time.Time `json:"lastCrawledAt"`
}
