package chat

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nonthaphat/sportsdesk/internal/llm"
)

// Generator is the fail-closed wrapper over the LLM provider used for answer
// generation. It never returns an error: transport, timeout and model
// failures all become a localized apology reply, which the engine treats as
// a normal conversational turn.
type Generator struct {
	provider    llm.Provider
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
}

// NewGenerator creates a Generator with the given limits.
func NewGenerator(provider llm.Provider, model string, maxTokens int, temperature float64, timeout time.Duration) *Generator {
	if maxTokens <= 0 {
		maxTokens = 3000
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Generator{
		provider:    provider,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		timeout:     timeout,
	}
}

// Generate runs one completion over the given messages and returns the reply
// text, or the apology string on any failure.
func (g *Generator) Generate(ctx context.Context, messages []llm.Message) string {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.provider.Complete(ctx, llm.CompletionRequest{
		Model:       g.model,
		Messages:    messages,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		log.Printf("chat: generation failed: %v", err)
		return fmt.Sprintf("%s: %v", apologyPrefix, err)
	}
	return resp.Content
}

// generateOrError exposes the raw completion for callers that need the error
// (memory compaction restores history on failure instead of apologizing).
func (g *Generator) generateOrError(ctx context.Context, messages []llm.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.provider.Complete(ctx, llm.CompletionRequest{
		Model:       g.model,
		Messages:    messages,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
