package domain

import "context"

// CompletionRequest is what the dispatcher sends to a completion backend:
// a role-tagged message sequence plus sampling bounds. The backend owns the
// wire schema.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float32
}

// LLMClient defines how the core application talks to a remote completion
// service. Implementations return the single reply text or an error; they
// never retry.
type LLMClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
