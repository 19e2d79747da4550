package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// GenkitCompleter runs plain completions (no tools) against the
// configured model. It backs the retrieval pipeline's grounded answer
// step, where the system prompt already carries the retrieved context.
type GenkitCompleter struct {
	g         *genkit.Genkit
	modelName string
}

// NewGenkitCompleter creates a completer bound to modelName
// (provider-qualified, e.g. "openai/gpt-4o-mini").
func NewGenkitCompleter(g *genkit.Genkit, modelName string) *GenkitCompleter {
	return &GenkitCompleter{g: g, modelName: modelName}
}

// Complete generates a response to question under the given system
// prompt.
func (c *GenkitCompleter) Complete(ctx context.Context, system, question string) (string, error) {
	resp, err := genkit.Generate(ctx, c.g,
		ai.WithModelName(c.modelName),
		ai.WithSystem(system),
		ai.WithPrompt("%s", question),
	)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("completion returned empty response")
	}
	return text, nil
}
