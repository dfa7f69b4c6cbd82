// Package mock provides function-field mock implementations of the siterag
// domain interfaces for testing.
package mock

import (
	"context"

	"github.com/tanakrit-d/siterag"
)

var _ siterag.Generator = (*Generator)(nil)

// Generator is a mock implementation of siterag.Generator.
type Generator struct {
	InvokeFn func(ctx context.Context, prompt string) (string, error)
}

func (g *Generator) Invoke(ctx context.Context, prompt string) (string, error) {
	return g.InvokeFn(ctx, prompt)
}

var _ siterag.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of siterag.Embedder.
type Embedder struct {
	EmbedQueryFn func(ctx context.Context, text string) ([]float32, error)
	DimensionFn  func() int
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedQueryFn(ctx, text)
}

func (e *Embedder) Dimension() int {
	return e.DimensionFn()
}
