package llm

import "strings"

// ModelCost holds per-million-token pricing for a model, in USD.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// modelCosts covers the models llm.model can select. Providers report
// dated snapshots (gpt-4o-mini-2024-07-18) or routing suffixes
// (google/gemini-2.0-flash-exp:free), which LookupCost maps back here.
var modelCosts = map[string]ModelCost{
	"claude-sonnet-4-20250514":    {3, 15},
	"claude-haiku-4-5-20251001":   {1, 5},
	"gpt-4o":                      {2.5, 10},
	"gpt-4o-mini":                 {0.15, 0.6},
	"gemini-2.0-flash":            {0.1, 0.4},
	"google/gemini-2.0-flash-exp": {0, 0},
}

// LookupCost returns the pricing for a model, or nil if unknown. It
// accepts friendly names (claude-haiku) as well as the IDs providers
// echo back in responses.
func LookupCost(model string) *ModelCost {
	for _, models := range []map[string]string{anthropicModels, openaiModels, geminiModels} {
		model = resolveModel(model, models)
	}
	if c, ok := modelCosts[model]; ok {
		return &c
	}

	// Longest known prefix wins so gpt-4o-mini-* never prices as gpt-4o.
	best := ""
	for id := range modelCosts {
		if len(id) > len(best) && strings.HasPrefix(model, id) && isSnapshotSuffix(model[len(id):]) {
			best = id
		}
	}
	if best == "" {
		return nil
	}
	c := modelCosts[best]
	return &c
}

func isSnapshotSuffix(s string) bool {
	return s == "" || s[0] == '-' || s[0] == ':'
}
