package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/furrowhq/furrow/internal/crop"
)

// AggregateStore is the subset of crop.Store the aggregate tools use.
type AggregateStore interface {
	MostCostEfficient(ctx context.Context) (*crop.Efficiency, error)
	MostProfitable(ctx context.Context) (*crop.Profit, error)
	LargestHarvest(ctx context.Context) (*crop.Harvest, error)
	ListNames(ctx context.Context) ([]string, error)
}

// QueryPipeline is the retrieval path behind the rag_query tool.
// Satisfied by *retrieval.Pipeline.
type QueryPipeline interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Tools groups the agent's tool handlers and their dependencies.
// Handlers convert every failure into an in-band sentence so the model
// always receives text to fold into its final answer; the error return
// of each handler is always nil.
type Tools struct {
	store    AggregateStore
	pipeline QueryPipeline
	logger   *slog.Logger
}

// NewTools creates the tool set. logger may be nil.
func NewTools(store AggregateStore, pipeline QueryPipeline, logger *slog.Logger) *Tools {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tools{store: store, pipeline: pipeline, logger: logger}
}

// RAGQueryInput is the single argument of the rag_query tool.
type RAGQueryInput struct {
	Question string `json:"question" jsonschema_description:"The user's question about their farm crop data"`
}

// Register defines all five tools on g and returns their refs for
// ai.WithTools. Each tool name maps to exactly one Intent; the
// descriptions are the model's only routing signal, so each names the
// one question shape it serves.
func (t *Tools) Register(g *genkit.Genkit) []ai.ToolRef {
	costEfficient := genkit.DefineTool(g, ToolMostCostEfficient,
		"Finds the crop that has the highest profit to seed cost ratio.",
		t.MostCostEfficient)

	profitable := genkit.DefineTool(g, ToolMostProfitable,
		"Finds the crop with the highest total profit.",
		t.MostProfitable)

	harvest := genkit.DefineTool(g, ToolLargestHarvest,
		"Finds the crop with the largest total harvest in pounds.",
		t.LargestHarvest)

	list := genkit.DefineTool(g, ToolListCrops,
		"Returns a list of all the crops from the provided data.",
		t.ListCrops)

	rag := genkit.DefineTool(g, ToolRAGQuery,
		"Answers open-ended questions about crop data by searching stored entries. "+
			"Use this when no other tool matches the question.",
		t.RAGQuery)

	t.logger.Info("agent tools registered", "count", 5)
	return []ai.ToolRef{costEfficient, profitable, harvest, list, rag}
}

// MostCostEfficient handles the cost-efficiency intent.
func (t *Tools) MostCostEfficient(ctx *ai.ToolContext, _ struct{}) (string, error) {
	result, err := t.store.MostCostEfficient(ctx)
	if err != nil {
		return queryError(err), nil
	}
	if result == nil {
		return "No valid crop data found in the database.", nil
	}
	return fmt.Sprintf("%s is the most cost-efficient crop with a profit-to-seed-cost ratio of %.2f.",
		result.DetailedName, result.Ratio), nil
}

// MostProfitable handles the profitability intent.
func (t *Tools) MostProfitable(ctx *ai.ToolContext, _ struct{}) (string, error) {
	result, err := t.store.MostProfitable(ctx)
	if err != nil {
		return queryError(err), nil
	}
	if result == nil {
		return "No valid profit data found.", nil
	}
	return fmt.Sprintf("%s had the largest profit: $%.2f.", result.DetailedName, result.Profit), nil
}

// LargestHarvest handles the harvest intent.
func (t *Tools) LargestHarvest(ctx *ai.ToolContext, _ struct{}) (string, error) {
	result, err := t.store.LargestHarvest(ctx)
	if err != nil {
		return queryError(err), nil
	}
	if result == nil {
		return "No harvest data found.", nil
	}
	return fmt.Sprintf("%s had the largest harvest with %.2f pounds.", result.DetailedName, result.Pounds), nil
}

// ListCrops handles the list-crops intent.
func (t *Tools) ListCrops(ctx *ai.ToolContext, _ struct{}) (string, error) {
	names, err := t.store.ListNames(ctx)
	if err != nil {
		return queryError(err), nil
	}

	var crops []string
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			crops = append(crops, trimmed)
		}
	}
	if len(crops) == 0 {
		return "No crops were found in your data.", nil
	}
	return fmt.Sprintf("The crops listed in your data are: %s.", strings.Join(crops, ", ")), nil
}

// RAGQuery handles the retrieval intent.
func (t *Tools) RAGQuery(ctx *ai.ToolContext, input RAGQueryInput) (string, error) {
	answer, err := t.pipeline.Answer(ctx, input.Question)
	if err != nil {
		return queryError(err), nil
	}
	return answer, nil
}

func queryError(err error) string {
	return "Error during query: " + err.Error()
}
