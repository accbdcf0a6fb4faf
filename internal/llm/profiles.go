package llm

import "github.com/studyscope/pdf-summarizer/constants"

// Profile is the per-model request configuration: how many tokens the reply
// may spend and how hot the sampling runs.
type Profile struct {
	ModelID     string
	MaxTokens   int
	Temperature float64
}

// defaultProfile is handed out for unknown model identifiers. A generative
// call must always proceed with some configuration, so lookup never fails.
// Moderate temperature, largest token budget of the table.
var defaultProfile = Profile{ModelID: "default", MaxTokens: 2000, Temperature: 0.5}

var profiles = map[string]Profile{
	constants.ModelGeminiPro:    {ModelID: constants.ModelGeminiPro, MaxTokens: 1500, Temperature: 0.7},
	constants.ModelClaudeSonnet: {ModelID: constants.ModelClaudeSonnet, MaxTokens: 2000, Temperature: 0.5},
	constants.ModelGeminiFlash:  {ModelID: constants.ModelGeminiFlash, MaxTokens: 1000, Temperature: 0.7},
}

// ProfileFor resolves a model identifier to its request profile by exact
// match, falling back to the default profile for unknown identifiers.
func ProfileFor(modelID string) Profile {
	if p, ok := profiles[modelID]; ok {
		return p
	}
	p := defaultProfile
	if modelID != "" {
		p.ModelID = modelID
	}
	return p
}

// Tuned applies the per-analysis overrides on top of a model profile.
// Schedule extraction wants determinism; summaries want some flair. The
// token override never exceeds the model's own budget.
func (p Profile) Tuned(shape Shape) Profile {
	tuned := p
	switch shape {
	case ShapeSummary:
		tuned.Temperature = 0.7
		tuned.MaxTokens = min(p.MaxTokens, 1500)
	case ShapeSchedule:
		tuned.Temperature = 0.3
		tuned.MaxTokens = min(p.MaxTokens, 1000)
	case ShapeStructure:
		tuned.Temperature = 0.4
		tuned.MaxTokens = min(p.MaxTokens, 1200)
	case ShapeKeywords:
		tuned.Temperature = 0.4
		tuned.MaxTokens = min(p.MaxTokens, 800)
	}
	return tuned
}
