package gemini

import (
	"context"

	"github.com/tanakrit-d/siterag"
	"google.golang.org/genai"
)

// DefaultEmbeddingModel is the embedding model for chunk and query vectors.
const DefaultEmbeddingModel = "gemini-embedding-001"

// DefaultEmbeddingDimension is the vector length produced by
// DefaultEmbeddingModel without output truncation.
const DefaultEmbeddingDimension = 3072

// Ensure Embedder implements siterag.Embedder at compile time.
var _ siterag.Embedder = (*Embedder)(nil)

// Embedder implements siterag.Embedder using Google Gemini embeddings.
// All vectors it produces share a single fixed dimension.
type Embedder struct {
	client    *genai.Client
	model     string
	dimension int
}

// NewEmbedder creates a new Embedder. An empty model selects
// DefaultEmbeddingModel; a non-positive dimension selects
// DefaultEmbeddingDimension.
func NewEmbedder(client *genai.Client, model string, dimension int) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	if dimension <= 0 {
		dimension = DefaultEmbeddingDimension
	}
	return &Embedder{client: client, model: model, dimension: dimension}
}

// EmbedQuery returns the embedding vector for text.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, siterag.Errorf(siterag.EINVALID, "text required")
	}

	dim := int32(e.dimension)
	result, err := e.client.Models.EmbedContent(ctx, e.model,
		[]*genai.Content{
			genai.NewContentFromText(text, genai.RoleUser),
		},
		&genai.EmbedContentConfig{OutputDimensionality: &dim},
	)
	if err != nil {
		return nil, siterag.Errorf(siterag.EUNAVAILABLE, "gemini embedding failed: %v", err)
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, siterag.Errorf(siterag.EINTERNAL, "gemini returned no embeddings")
	}

	values := result.Embeddings[0].Values
	if len(values) != e.dimension {
		return nil, siterag.Errorf(siterag.EINTERNAL,
			"embedding dimension mismatch: got %d, want %d", len(values), e.dimension)
	}

	return values, nil
}

// Dimension returns the fixed vector length produced by EmbedQuery.
func (e *Embedder) Dimension() int {
	return e.dimension
}
