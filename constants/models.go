package constants

// Supported OpenRouter model identifiers. Unknown ids fall back to the
// default request profile rather than failing.
const (
	ModelGeminiPro    = "google/gemini-pro"
	ModelClaudeSonnet = "anthropic/claude-3.5-sonnet:beta"
	ModelGeminiFlash  = "google/gemini-flash-1.5"
)

// DefaultModel is used when no model is selected by the caller.
const DefaultModel = ModelGeminiPro
