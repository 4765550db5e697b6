package chat

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/nonthaphat/sportsdesk/internal/catalog"
	"github.com/nonthaphat/sportsdesk/internal/llm"
)

// Analysis is the structured result of the combined rewrite + detection
// call. Sport and Intent may carry the "None" sentinel the model emits when
// nothing was detected; state application normalizes it away.
type Analysis struct {
	RewrittenQuery string `json:"rewritten_query"`
	Sport          string `json:"sport"`
	Intent         string `json:"intent"`
	IsFollowup     bool   `json:"is_followup"`
}

// Analyzer turns a possibly elliptical user utterance into a standalone
// query plus detected sport/topic labels, in one generation call.
type Analyzer struct {
	provider llm.Provider
	model    string
	timeout  time.Duration
}

// NewAnalyzer creates an Analyzer on the given provider.
func NewAnalyzer(provider llm.Provider, model string, timeout time.Duration) *Analyzer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Analyzer{provider: provider, model: model, timeout: timeout}
}

// Analyze issues the combined analysis request. Any call or parse failure
// degrades to a safe fallback (the original query with the current locks
// unchanged) and is never surfaced to the caller as an error.
func (a *Analyzer) Analyze(ctx context.Context, query string, history []Turn, sport catalog.Sport, intent string) Analysis {
	fallback := Analysis{
		RewrittenQuery: query,
		Sport:          string(sport),
		Intent:         intent,
	}

	prompt := buildAnalysisPrompt(sport, intent, lastUserMessage(history), query)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Model:       a.model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   500,
		Temperature: 0.1,
		JSONMode:    true,
	})
	if err != nil {
		log.Printf("chat: analysis call failed, using fallback: %v", err)
		return fallback
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Content)), &analysis); err != nil {
		log.Printf("chat: analysis parse failed, using fallback: %v", err)
		return fallback
	}
	if strings.TrimSpace(analysis.RewrittenQuery) == "" {
		analysis.RewrittenQuery = query
	}
	return analysis
}

// lastUserMessage finds the most recent user turn, empty if none.
func lastUserMessage(history []Turn) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == llm.RoleUser {
			return history[i].Content
		}
	}
	return ""
}

// stripCodeFence unwraps a ```json ... ``` (or plain ```) fenced block.
// Models sometimes fence JSON despite being told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
