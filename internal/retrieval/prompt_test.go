package retrieval

import (
	"strings"
	"testing"

	"github.com/furrowhq/furrow/internal/crop"
)

func TestComposePrompt(t *testing.T) {
	entries := []crop.Retrieved{
		{CropName: "Kale", Description: "Seed cost: $10, Harvested: 150 lbs, Revenue: $210, Profit: $200", Similarity: 0.91},
		{CropName: "Radish", Description: "Seed cost: $4, Harvested: 60 lbs, Revenue: $84, Profit: $80", Similarity: 0.72},
	}

	prompt := ComposePrompt(entries)

	if !strings.HasPrefix(prompt, "You are an expert farm management assistant") {
		t.Errorf("prompt missing persona preamble, got prefix %q", prompt[:40])
	}
	if !strings.Contains(prompt, "Relevant crop data:\n") {
		t.Error("prompt missing data header")
	}

	kaleBlock := "Crop: Kale\nDescription: Seed cost: $10, Harvested: 150 lbs, Revenue: $210, Profit: $200\n\n"
	radishBlock := "Crop: Radish\nDescription: Seed cost: $4, Harvested: 60 lbs, Revenue: $84, Profit: $80\n\n"
	if !strings.Contains(prompt, kaleBlock) {
		t.Errorf("prompt missing kale block:\n%s", prompt)
	}
	if !strings.Contains(prompt, radishBlock) {
		t.Errorf("prompt missing radish block:\n%s", prompt)
	}
	if strings.Index(prompt, kaleBlock) > strings.Index(prompt, radishBlock) {
		t.Error("entries out of retrieval order in prompt")
	}
}

func TestComposePrompt_Empty(t *testing.T) {
	prompt := ComposePrompt(nil)
	if !strings.HasSuffix(prompt, "Relevant crop data:\n") {
		t.Errorf("empty prompt should end at the data header, got %q", prompt)
	}
}
