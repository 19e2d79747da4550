// Package retrieval implements the semantic half of question answering:
// similarity search over embedded crop entries, prompt composition for
// the completion model, and source attribution on the final answer.
package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/furrowhq/furrow/internal/crop"
)

// Embedder converts query text to a vector. Satisfied by *embed.Adapter.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorStore runs nearest-neighbor search. Satisfied by *crop.Store.
type VectorStore interface {
	SearchByEmbedding(ctx context.Context, queryVec []float32, limit int) ([]crop.Retrieved, error)
}

// Searcher embeds a query and retrieves the nearest crop entries.
type Searcher struct {
	embedder Embedder
	store    VectorStore
	topK     int
	logger   *slog.Logger
}

// NewSearcher creates a Searcher returning at most topK results per
// query. logger may be nil.
func NewSearcher(embedder Embedder, store VectorStore, topK int, logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Searcher{embedder: embedder, store: store, topK: topK, logger: logger}
}

// Search returns the topK entries nearest to the query, similarity
// descending. An embedding failure degrades to an empty result set with
// a warning rather than an error, so the agent falls through to its
// "no relevant data" answer. Store failures are real errors.
func (s *Searcher) Search(ctx context.Context, query string) ([]crop.Retrieved, error) {
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		s.logger.Warn("query embedding failed, returning no results", "error", err)
		return nil, nil
	}

	results, err := s.store.SearchByEmbedding(ctx, vec, s.topK)
	if err != nil {
		return nil, fmt.Errorf("searching crop entries: %w", err)
	}
	return results, nil
}
