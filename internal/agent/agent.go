// Package agent routes farm questions to aggregate SQL tools or
// semantic retrieval through model function calling, and guarantees a
// text answer for every question.
package agent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// routerSystemPrompt instructs the model on tool selection. Selection
// itself is the model's structured function-call output; this prompt
// only frames the domain and the grounding rules.
const routerSystemPrompt = "You are a farm management assistant answering questions about the user's crop data. " +
	"You have tools for specific aggregate questions (most cost-efficient crop, most profitable crop, " +
	"largest harvest, listing all crops) and a rag_query tool for any other question about the data. " +
	"Call at most one tool per question and base your answer on its result. " +
	"If a tool returns a Sources section, keep it intact in your answer. " +
	"If no tool is relevant, answer directly. Never invent crop data."

// Config carries everything the agent needs; constructed once at
// startup and passed in, never read from process globals.
type Config struct {
	ModelName   string // provider-qualified, e.g. "openai/gpt-4o-mini"
	Temperature float64
	MaxTurns    int
}

// Agent is the stateless per-question dispatcher. One instance serves
// all requests; it holds no conversation state.
type Agent struct {
	g        *genkit.Genkit
	toolRefs []ai.ToolRef
	cfg      Config
	logger   *slog.Logger
}

// New creates an Agent over the registered tool refs. logger may be nil.
func New(g *genkit.Genkit, toolRefs []ai.ToolRef, cfg Config, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 3
	}
	return &Agent{g: g, toolRefs: toolRefs, cfg: cfg, logger: logger}
}

// Answer resolves question to a text answer. It never returns an error:
// model and tool failures come back as an "Error: " prefixed sentence,
// so the HTTP layer above always responds 200 with text.
func (a *Agent) Answer(ctx context.Context, question string) string {
	if strings.TrimSpace(question) == "" {
		return "Please enter a question about your farm data."
	}

	resp, err := genkit.Generate(ctx, a.g,
		ai.WithModelName(a.cfg.ModelName),
		ai.WithSystem(routerSystemPrompt),
		ai.WithPrompt("%s", question),
		ai.WithTools(a.toolRefs...),
		ai.WithMaxTurns(a.cfg.MaxTurns),
		ai.WithConfig(&ai.GenerationCommonConfig{Temperature: a.cfg.Temperature}),
	)
	if err != nil {
		a.logger.Error("agent generation failed", "error", err)
		return "Error: " + err.Error()
	}

	text := resp.Text()
	if text == "" {
		a.logger.Warn("agent produced empty response")
		return "Error: the model returned an empty response."
	}

	a.logger.Debug("agent answered",
		"intent", a.routedIntent(resp).String(),
		"question_chars", len(question),
		"answer_chars", len(text))
	return text
}

// routedIntent resolves the Intent behind the tool calls the model made
// while generating resp. Tool names are taken from the structured
// function-call parts, never from answer text; a name outside the
// registered vocabulary is logged and skipped, and a question answered
// with no tool call resolves to IntentNone. With several tool calls the
// last one wins.
func (a *Agent) routedIntent(resp *ai.ModelResponse) Intent {
	intent := IntentNone
	if resp == nil {
		return intent
	}

	messages := make([]*ai.Message, 0, 8)
	if resp.Request != nil {
		messages = append(messages, resp.Request.Messages...)
	}
	if resp.Message != nil {
		messages = append(messages, resp.Message)
	}

	for _, msg := range messages {
		for _, part := range msg.Content {
			if part.Kind != ai.PartToolRequest || part.ToolRequest == nil {
				continue
			}
			resolved := IntentForTool(part.ToolRequest.Name)
			if resolved == IntentNone {
				a.logger.Warn("model requested tool outside the registered vocabulary",
					"tool", part.ToolRequest.Name)
				continue
			}
			intent = resolved
		}
	}
	return intent
}
