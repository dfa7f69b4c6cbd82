package siterag

import (
	"fmt"
	"time"
)

// ProcessedChunk represents one fully enriched text segment of a crawled page.
// It is the unit of storage and retrieval.
type ProcessedChunk struct {
	// URL is the page the chunk was extracted from.
	URL string `json:"url"`

	// Index is the 0-based position of the chunk within its page.
	// Indices are strictly increasing per URL.
	Index int `json:"index"`

	// Title is a short synthesized heading for the chunk.
	Title string `json:"title"`

	// Summary is the chunk's own text. The pipeline does not produce a
	// distinct summarization; it is stored alongside Content so retrieval
	// results can surface it without a second lookup.
	Summary string `json:"summary"`

	// Content is the chunk text.
	Content string `json:"content"`

	// Metadata carries provenance details.
	Metadata ChunkMetadata `json:"metadata"`

	// Embedding is the chunk's vector in the collection's fixed-dimension
	// cosine embedding space.
	Embedding []float32 `json:"embedding,omitempty"`
}

// ChunkMetadata contains provenance information about a chunk.
type ChunkMetadata struct {
	// Source is the host of the page the chunk came from.
	Source string `json:"source"`

	// ChunkSize is the length of the chunk content in bytes.
	ChunkSize int `json:"chunkSize"`

	// CrawledAt is the UTC time the page was crawled.
	CrawledAt time.Time `json:"crawledAt"`

	// URLPath is the path component of the source URL.
	URLPath string `json:"urlPath"`
}

// ID returns the chunk's deterministic composite identifier. Re-ingesting the
// same (URL, Index) pair produces the same ID and overwrites the prior record.
func (c *ProcessedChunk) ID() string {
	return ChunkID(c.URL, c.Index)
}

// ChunkID builds the composite identifier for a chunk of url at index.
func ChunkID(url string, index int) string {
	return fmt.Sprintf("%s_%d", url, index)
}

// Validate returns an error if the chunk contains invalid fields.
func (c *ProcessedChunk) Validate() error {
	if c.URL == "" {
		return Errorf(EINVALID, "chunk URL required")
	}
	if c.Index < 0 {
		return Errorf(EINVALID, "chunk index must not be negative")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	return nil
}
