package llm

import (
	"testing"

	"github.com/studyscope/pdf-summarizer/constants"
)

func TestProfileFor_KnownModels(t *testing.T) {
	p := ProfileFor(constants.ModelGeminiFlash)
	if p.ModelID != constants.ModelGeminiFlash {
		t.Errorf("ModelID = %q", p.ModelID)
	}
	if p.MaxTokens != 1000 {
		t.Errorf("MaxTokens = %d, want 1000", p.MaxTokens)
	}
}

func TestProfileFor_UnknownModelGetsDefault(t *testing.T) {
	p := ProfileFor("mistral/unreleased-model")
	if p.ModelID != "mistral/unreleased-model" {
		t.Errorf("ModelID = %q, want the requested id carried through", p.ModelID)
	}
	if p.MaxTokens != defaultProfile.MaxTokens || p.Temperature != defaultProfile.Temperature {
		t.Errorf("unknown model should receive the default budget, got %+v", p)
	}
}

func TestTuned_ScheduleRunsCooler(t *testing.T) {
	p := ProfileFor(constants.ModelClaudeSonnet).Tuned(ShapeSchedule)
	if p.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", p.Temperature)
	}
	if p.MaxTokens != 1000 {
		t.Errorf("MaxTokens = %d, want 1000", p.MaxTokens)
	}
}

func TestTuned_NeverExceedsModelBudget(t *testing.T) {
	p := ProfileFor(constants.ModelGeminiFlash).Tuned(ShapeSummary)
	if p.MaxTokens > 1000 {
		t.Errorf("MaxTokens = %d exceeds the model budget", p.MaxTokens)
	}
}
