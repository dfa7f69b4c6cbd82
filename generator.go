package siterag

import "context"

// Generator produces text completions from a prompt. Calls are synchronous;
// no streaming is required by the pipeline.
type Generator interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Embedder converts text into a fixed-dimension embedding vector.
type Embedder interface {
	// EmbedQuery returns the embedding for text. The dimension is constant
	// for a given embedder and must match the store's collection dimension.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the length of the vectors produced by EmbedQuery.
	Dimension() int
}
