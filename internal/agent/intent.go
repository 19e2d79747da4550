package agent

// Intent is the closed set of question categories the agent can route
// to. Routing decisions come from the model's structured function-call
// output: each registered tool name maps to exactly one Intent, and an
// unknown tool name maps to IntentNone, so free-text model output is
// never parsed for routing.
type Intent int

const (
	// IntentNone means no tool matched; the model answers directly.
	IntentNone Intent = iota
	// IntentCostEfficiency asks for the best profit-to-seed-cost ratio.
	IntentCostEfficiency
	// IntentProfitability asks for the highest total profit.
	IntentProfitability
	// IntentHarvest asks for the largest harvest by weight.
	IntentHarvest
	// IntentListCrops asks for the set of known crops.
	IntentListCrops
	// IntentRetrieval is the semantic fallback over embedded entries.
	IntentRetrieval
)

// Tool names as exposed to the model. These are the function-calling
// vocabulary; changing one changes routing behavior.
const (
	ToolMostCostEfficient = "most_cost_efficient_crop"
	ToolMostProfitable    = "most_profitable_crop"
	ToolLargestHarvest    = "largest_harvest_crop"
	ToolListCrops         = "list_all_crops"
	ToolRAGQuery          = "rag_query"
)

var intentByTool = map[string]Intent{
	ToolMostCostEfficient: IntentCostEfficiency,
	ToolMostProfitable:    IntentProfitability,
	ToolLargestHarvest:    IntentHarvest,
	ToolListCrops:         IntentListCrops,
	ToolRAGQuery:          IntentRetrieval,
}

// IntentForTool resolves a tool name from a model function call to its
// Intent. Names outside the registered vocabulary resolve to IntentNone.
func IntentForTool(name string) Intent {
	if intent, ok := intentByTool[name]; ok {
		return intent
	}
	return IntentNone
}

func (i Intent) String() string {
	switch i {
	case IntentCostEfficiency:
		return "cost_efficiency"
	case IntentProfitability:
		return "profitability"
	case IntentHarvest:
		return "harvest"
	case IntentListCrops:
		return "list_crops"
	case IntentRetrieval:
		return "retrieval"
	default:
		return "none"
	}
}
