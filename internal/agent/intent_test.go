package agent

import "testing"

func TestIntentForTool(t *testing.T) {
	tests := []struct {
		tool string
		want Intent
	}{
		{ToolMostCostEfficient, IntentCostEfficiency},
		{ToolMostProfitable, IntentProfitability},
		{ToolLargestHarvest, IntentHarvest},
		{ToolListCrops, IntentListCrops},
		{ToolRAGQuery, IntentRetrieval},
		{"made_up_tool", IntentNone},
		{"", IntentNone},
	}

	for _, tt := range tests {
		if got := IntentForTool(tt.tool); got != tt.want {
			t.Errorf("IntentForTool(%q) = %v, want %v", tt.tool, got, tt.want)
		}
	}
}

func TestIntentString(t *testing.T) {
	tests := map[Intent]string{
		IntentNone:           "none",
		IntentCostEfficiency: "cost_efficiency",
		IntentProfitability:  "profitability",
		IntentHarvest:        "harvest",
		IntentListCrops:      "list_crops",
		IntentRetrieval:      "retrieval",
	}
	for intent, want := range tests {
		if got := intent.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", intent, got, want)
		}
	}
}
