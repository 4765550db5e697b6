// Package llm abstracts the chat completion backends used for analysis,
// answer generation and history summarization.
package llm

import "context"

// Provider is a chat completion backend.
type Provider interface {
	// Complete sends one completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name identifies the backend for logging.
	Name() string
}
