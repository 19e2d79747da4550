package ingest

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// ParsedCrop is one crop record extracted from book text by the model.
type ParsedCrop struct {
	Name            string  `json:"name" jsonschema_description:"Name of crop, for ex: radish, carrot, corn"`
	TotalSeedCost   float64 `json:"total_seed_cost" jsonschema_description:"Total cost of the crop's seeds in dollars"`
	PoundsHarvested int32   `json:"pounds_harvested" jsonschema_description:"Amount harvested in pounds"`
	TotalRevenue    float64 `json:"total_revenue" jsonschema_description:"Total revenue from selling the crop in dollars"`
	TotalProfit     float64 `json:"total_profit" jsonschema_description:"Total profit made from the crop after subtracting seed cost in dollars"`
}

// cropExtraction is the structured output root for the extraction call.
type cropExtraction struct {
	Crops []ParsedCrop `json:"crops" jsonschema_description:"All crop records found in the text"`
}

const parseSystemPrompt = "You are a helpful assistant that extracts structured crop data from text."

// Parser extracts crop records from free text using the model's
// structured output mode.
type Parser struct {
	g         *genkit.Genkit
	modelName string
}

// NewParser creates a Parser bound to a provider-qualified model name.
func NewParser(g *genkit.Genkit, modelName string) *Parser {
	return &Parser{g: g, modelName: modelName}
}

// ParseCrops extracts all crop records from text. An empty slice with a
// nil error means the text contained no recognizable records.
func (p *Parser) ParseCrops(ctx context.Context, text string) ([]ParsedCrop, error) {
	resp, err := genkit.Generate(ctx, p.g,
		ai.WithModelName(p.modelName),
		ai.WithSystem(parseSystemPrompt),
		ai.WithPrompt("Extract crop data from the following text and return every crop record found: %s", text),
		ai.WithOutputType(cropExtraction{}),
	)
	if err != nil {
		return nil, fmt.Errorf("extracting crop data: %w", err)
	}

	var extraction cropExtraction
	if err := resp.Output(&extraction); err != nil {
		return nil, fmt.Errorf("decoding extraction output: %w", err)
	}
	return extraction.Crops, nil
}
