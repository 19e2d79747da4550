package retrieval

import (
	"context"
	"log/slog"
	"strings"
)

// Completer produces a grounded completion from a system prompt and a
// user question. Implemented by agent.GenkitCompleter in production and
// by fakes in tests.
type Completer interface {
	Complete(ctx context.Context, system, question string) (string, error)
}

// Pipeline is the full retrieval answering path: search, compose,
// complete, attribute sources.
type Pipeline struct {
	searcher  *Searcher
	completer Completer
	logger    *slog.Logger
}

// NewPipeline creates a Pipeline. logger may be nil.
func NewPipeline(searcher *Searcher, completer Completer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{searcher: searcher, completer: completer, logger: logger}
}

// Answer runs the retrieval pipeline for question. Empty questions and
// empty retrievals resolve to fixed in-band messages, not errors; only
// store and completion failures surface as errors.
func (p *Pipeline) Answer(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "Please enter a question about your farm data.", nil
	}

	sources, err := p.searcher.Search(ctx, question)
	if err != nil {
		return "", err
	}
	if len(sources) == 0 {
		return "No relevant crop data found.", nil
	}

	prompt := ComposePrompt(sources)
	answer, err := p.completer.Complete(ctx, prompt, question)
	if err != nil {
		return "", err
	}

	p.logger.Debug("retrieval pipeline answered", "sources", len(sources))
	return AssembleAnswer(answer, sources), nil
}
