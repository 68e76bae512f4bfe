package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model     string
		wantInput float64
		known     bool
	}{
		{"gpt-4o-mini", 0.15, true},
		{"gpt-4o-mini-2024-07-18", 0.15, true},
		{"gpt-4o-2024-08-06", 2.5, true},
		{"claude-haiku", 1, true},
		{"claude-haiku-4-5-20251001", 1, true},
		{"claude-sonnet", 3, true},
		{"gemini-flash", 0.1, true},
		{"google/gemini-2.0-flash-exp:free", 0, true},
		{"gpt-4omni", 0, false},
		{"gemini-pro", 0, false},
		{"mock", 0, false},
	}
	for _, tt := range tests {
		c := LookupCost(tt.model)
		if (c != nil) != tt.known {
			t.Errorf("LookupCost(%q) known = %v, want %v", tt.model, c != nil, tt.known)
			continue
		}
		if c != nil && c.InputPerMTok != tt.wantInput {
			t.Errorf("LookupCost(%q).InputPerMTok = %v, want %v", tt.model, c.InputPerMTok, tt.wantInput)
		}
	}
}

func TestModelCostsCoverDefaults(t *testing.T) {
	cfg := DefaultConfig()
	for _, model := range []string{cfg.Anthropic.Model, cfg.OpenAI.Model, cfg.Gemini.Model, cfg.OpenRouter.Model} {
		if LookupCost(model) == nil {
			t.Errorf("no pricing for default model %q", model)
		}
	}
}

func TestModelCost_Cost(t *testing.T) {
	// One generated question set: ~300 prompt tokens, ~1500 reply tokens.
	c := ModelCost{InputPerMTok: 0.15, OutputPerMTok: 0.6}
	got := c.Cost(300, 1500)
	if math.Abs(got-0.000945) > 1e-12 {
		t.Errorf("Cost = %v, want 0.000945", got)
	}
}
