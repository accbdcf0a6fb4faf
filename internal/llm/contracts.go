package llm

import "context"

// Completer is the outbound model boundary the pipeline depends on: one
// prompt in, one free-form textual reply out. Implementations make exactly
// one attempt; a failed call surfaces as a typed error, never a retry.
type Completer interface {
	Complete(ctx context.Context, profile Profile, prompt string) (string, error)
}
