package planner

import "context"

// LLMClient executes one chat completion against one concrete model. The
// model travels per call so the fallback loop can walk its candidate list
// over a single client.
type LLMClient interface {
	Complete(ctx context.Context, model string, prompt Prompt) (string, error)
}

// LLMSettings carries the connection configuration for a concrete client.
type LLMSettings struct {
	Provider  string
	APIKey    string
	BaseURL   string
	MaxTokens int64
}
