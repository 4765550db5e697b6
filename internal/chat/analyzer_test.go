package chat

import (
	"context"
	"strings"
	"testing"

	"github.com/nonthaphat/sportsdesk/internal/llm"
)

func TestAnalyzeParsesResponse(t *testing.T) {
	provider := &scriptedProvider{script: []*llm.CompletionResponse{
		reply(`{"rewritten_query": "ราคาแพ็กเกจ NBA", "sport": "NBA", "intent": "pricing", "is_followup": true}`),
	}}
	a := NewAnalyzer(provider, "test-model", 0)

	got := a.Analyze(context.Background(), "แล้วราคาล่ะ", nil, "", "")
	if got.RewrittenQuery != "ราคาแพ็กเกจ NBA" {
		t.Errorf("rewritten query: %q", got.RewrittenQuery)
	}
	if got.Sport != "NBA" || got.Intent != "pricing" || !got.IsFollowup {
		t.Errorf("unexpected analysis: %+v", got)
	}
}

func TestAnalyzeStripsCodeFence(t *testing.T) {
	provider := &scriptedProvider{script: []*llm.CompletionResponse{
		reply("```json\n{\"rewritten_query\": \"EPL package price\", \"sport\": \"EPL\"}\n```"),
	}}
	a := NewAnalyzer(provider, "test-model", 0)

	got := a.Analyze(context.Background(), "price?", nil, "", "")
	if got.Sport != "EPL" {
		t.Errorf("fenced JSON not parsed: %+v", got)
	}
}

func TestAnalyzeFallbackOnCallFailure(t *testing.T) {
	provider := &scriptedProvider{script: []*llm.CompletionResponse{nil}}
	a := NewAnalyzer(provider, "test-model", 0)

	got := a.Analyze(context.Background(), "แพ็กเกจเทนนิส", nil, "TENNIS", "pricing")
	if got.RewrittenQuery != "แพ็กเกจเทนนิส" {
		t.Errorf("fallback should keep the original query: %q", got.RewrittenQuery)
	}
	if got.Sport != "TENNIS" || got.Intent != "pricing" {
		t.Errorf("fallback should keep current locks: %+v", got)
	}
	if got.IsFollowup {
		t.Error("fallback should not claim a followup")
	}
}

func TestAnalyzeFallbackOnBadJSON(t *testing.T) {
	provider := &scriptedProvider{script: []*llm.CompletionResponse{
		reply("sorry, I cannot answer that"),
	}}
	a := NewAnalyzer(provider, "test-model", 0)

	got := a.Analyze(context.Background(), "hello", nil, "EPL", "")
	if got.RewrittenQuery != "hello" || got.Sport != "EPL" {
		t.Errorf("expected fallback analysis, got %+v", got)
	}
}

func TestAnalyzeEmptyRewrittenFallsBackToQuery(t *testing.T) {
	provider := &scriptedProvider{script: []*llm.CompletionResponse{
		reply(`{"rewritten_query": "  ", "sport": "NBA"}`),
	}}
	a := NewAnalyzer(provider, "test-model", 0)

	got := a.Analyze(context.Background(), "ราคาเท่าไหร่", nil, "", "")
	if got.RewrittenQuery != "ราคาเท่าไหร่" {
		t.Errorf("blank rewrite should fall back to the query: %q", got.RewrittenQuery)
	}
	if got.Sport != "NBA" {
		t.Errorf("detected sport lost: %+v", got)
	}
}

func TestAnalyzePromptCarriesContext(t *testing.T) {
	provider := &scriptedProvider{script: []*llm.CompletionResponse{
		reply(`{"rewritten_query": "x"}`),
	}}
	a := NewAnalyzer(provider, "test-model", 0)

	history := []Turn{
		{Role: llm.RoleUser, Content: "แพ็กเกจ NBA มีอะไรบ้าง"},
		{Role: llm.RoleAssistant, Content: "มี PLAY NBA ค่ะ"},
	}
	a.Analyze(context.Background(), "ราคาล่ะ", history, "NBA", "pricing")

	if len(provider.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(provider.requests))
	}
	req := provider.requests[0]
	if !req.JSONMode {
		t.Error("analysis request should use JSON mode")
	}
	prompt := req.Messages[0].Content
	for _, want := range []string{"Sport Lock: NBA", "Topic Lock: pricing", "แพ็กเกจ NBA มีอะไรบ้าง", "ราคาล่ะ"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"  ```json\n{}\n```  ", "{}"},
	}
	for _, tt := range tests {
		if got := stripCodeFence(tt.in); got != tt.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLastUserMessage(t *testing.T) {
	history := []Turn{
		{Role: llm.RoleUser, Content: "first"},
		{Role: llm.RoleAssistant, Content: "reply"},
		{Role: llm.RoleUser, Content: "second"},
		{Role: llm.RoleAssistant, Content: "reply2"},
	}
	if got := lastUserMessage(history); got != "second" {
		t.Errorf("lastUserMessage = %q, want second", got)
	}
	if got := lastUserMessage(nil); got != "" {
		t.Errorf("lastUserMessage(nil) = %q, want empty", got)
	}
}
