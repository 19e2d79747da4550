// Package embed wraps a Genkit ai.Embedder behind a small adapter that
// validates input and normalizes provider failures into wrapped errors.
package embed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/firebase/genkit/go/ai"
)

// ErrEmptyInput indicates the text to embed was empty or whitespace.
var ErrEmptyInput = errors.New("embed: empty input text")

// Adapter converts text into embedding vectors using the configured
// provider embedder. One Adapter instance serves both query-time and
// ingest-time embedding so both paths produce vectors from the same
// model.
type Adapter struct {
	embedder ai.Embedder
	logger   *slog.Logger
}

// NewAdapter creates an Adapter. logger may be nil.
func NewAdapter(embedder ai.Embedder, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{embedder: embedder, logger: logger}
}

// Embed returns the embedding vector for text. The input is trimmed
// first; an empty result rejects with ErrEmptyInput before any provider
// call is made.
func (a *Adapter) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	req := &ai.EmbedRequest{
		Input: []*ai.Document{
			ai.DocumentFromText(text, nil),
		},
	}

	resp, err := a.embedder.Embed(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("embedding text: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Embedding) == 0 {
		return nil, errors.New("embedding provider returned no vector")
	}

	vec := resp.Embeddings[0].Embedding
	a.logger.Debug("embedded text", "chars", len(text), "dimensions", len(vec))
	return vec, nil
}
