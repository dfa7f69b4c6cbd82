package mock

import (
	"context"

	"github.com/tanakrit-d/siterag"
)

var _ siterag.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is a mock implementation of siterag.ChunkStore.
type ChunkStore struct {
	AddChunksFn   func(ctx context.Context, chunks ...*siterag.ProcessedChunk) error
	ListChunksFn  func(ctx context.Context) ([]*siterag.ProcessedChunk, error)
	QueryChunksFn func(ctx context.Context, embedding []float32, k int) ([]*siterag.ProcessedChunk, error)
	StatsFn       func(ctx context.Context) (*siterag.StoreStats, error)
}

func (s *ChunkStore) AddChunks(ctx context.Context, chunks ...*siterag.ProcessedChunk) error {
	return s.AddChunksFn(ctx, chunks...)
}

func (s *ChunkStore) ListChunks(ctx context.Context) ([]*siterag.ProcessedChunk, error) {
	return s.ListChunksFn(ctx)
}

func (s *ChunkStore) QueryChunks(ctx context.Context, embedding []float32, k int) ([]*siterag.ProcessedChunk, error) {
	return s.QueryChunksFn(ctx, embedding, k)
}

func (s *ChunkStore) Stats(ctx context.Context) (*siterag.StoreStats, error) {
	return s.StatsFn(ctx)
}
