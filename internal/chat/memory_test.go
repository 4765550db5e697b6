package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nonthaphat/sportsdesk/internal/llm"
)

func TestMemoryAddsPairsInOrder(t *testing.T) {
	mem := NewMemory(1000)
	mem.AddInteraction("hello", "hi there")
	mem.AddInteraction("price?", "199 baht")

	turns := mem.Turns()
	if len(turns) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(turns))
	}
	wantRoles := []llm.Role{llm.RoleUser, llm.RoleAssistant, llm.RoleUser, llm.RoleAssistant}
	for i, r := range wantRoles {
		if turns[i].Role != r {
			t.Errorf("turn %d role: got %s, want %s", i, turns[i].Role, r)
		}
	}
	if turns[2].Content != "price?" {
		t.Errorf("chronological order broken: %q", turns[2].Content)
	}
}

func TestMessagesIncludesSystemFirst(t *testing.T) {
	mem := NewMemory(1000)
	mem.AddInteraction("q", "a")

	msgs := mem.Messages("system prompt")
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Role != llm.RoleSystem || msgs[0].Content != "system prompt" {
		t.Errorf("system entry wrong: %+v", msgs[0])
	}
}

func TestMessagesWindowExcludesBoundaryTurn(t *testing.T) {
	// Budget: 20 tokens * 4 = 80 chars, minus 6 chars of system content.
	mem := NewMemory(20)
	long := strings.Repeat("x", 60)
	mem.AddInteraction(long, long) // old pair, cannot fit
	mem.AddInteraction("recent question", "recent answer")

	msgs := mem.Messages("system")
	// system + the two recent turns; the 60-char turns overflow and are
	// excluded whole, not truncated.
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d: %+v", len(msgs), msgs)
	}
	for _, m := range msgs[1:] {
		if len(m.Content) == 60 {
			t.Error("boundary turn should have been excluded")
		}
		if len(m.Content) < 60 && strings.HasPrefix(m.Content, "x") {
			t.Error("turn was truncated instead of excluded")
		}
	}
	if msgs[1].Content != "recent question" || msgs[2].Content != "recent answer" {
		t.Errorf("chronological order broken: %+v", msgs[1:])
	}
}

func TestMessagesBoundedness(t *testing.T) {
	const maxTokens = 50
	mem := NewMemory(maxTokens)
	for i := 0; i < 200; i++ {
		mem.AddInteraction(fmt.Sprintf("question number %d", i), fmt.Sprintf("answer number %d", i))
	}

	msgs := mem.Messages("sys")
	total := 0
	for _, m := range msgs {
		if m.Role == llm.RoleSystem {
			continue
		}
		total += len(m.Content)
	}
	if total > maxTokens*charsPerToken {
		t.Errorf("window budget exceeded: %d chars > %d", total, maxTokens*charsPerToken)
	}
	if len(msgs) > 401 {
		t.Errorf("message list grew unboundedly: %d", len(msgs))
	}
}

func TestSummarizeNoOpUnderThreeTurns(t *testing.T) {
	mem := NewMemory(1000)
	mem.AddInteraction("only", "pair")

	called := false
	err := mem.Summarize(context.Background(), func(ctx context.Context, _ []llm.Message) (string, error) {
		called = true
		return "summary", nil
	})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if called {
		t.Error("generation should not run with fewer than 3 turns")
	}
	if mem.Len() != 2 {
		t.Errorf("turn count changed: %d", mem.Len())
	}
}

func TestSummarizeKeepsRecentTwoTurns(t *testing.T) {
	mem := NewMemory(1000)
	mem.AddInteraction("first q", "first a")
	mem.AddInteraction("second q", "second a")

	err := mem.Summarize(context.Background(), func(ctx context.Context, msgs []llm.Message) (string, error) {
		if len(msgs) != 1 {
			t.Errorf("expected single prompt message, got %d", len(msgs))
		}
		if !strings.Contains(msgs[0].Content, "first q") {
			t.Error("older turns missing from summary prompt")
		}
		return "they discussed first things", nil
	})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	turns := mem.Turns()
	if len(turns) != 2 {
		t.Fatalf("expected 2 retained turns, got %d", len(turns))
	}
	if turns[0].Content != "second q" || turns[1].Content != "second a" {
		t.Errorf("wrong turns retained: %+v", turns)
	}
	if mem.Summary() != "they discussed first things" {
		t.Errorf("summary not stored: %q", mem.Summary())
	}

	// Summary surfaces in the system entry.
	msgs := mem.Messages("base prompt")
	if !strings.Contains(msgs[0].Content, "PREVIOUS CONVERSATION SUMMARY") {
		t.Error("summary block missing from system entry")
	}
}

func TestSummarizeFailureLosesNothing(t *testing.T) {
	mem := NewMemory(1000)
	mem.AddInteraction("first q", "first a")
	mem.AddInteraction("second q", "second a")
	before := mem.Turns()

	err := mem.Summarize(context.Background(), func(ctx context.Context, _ []llm.Message) (string, error) {
		return "", errors.New("model unavailable")
	})
	if err == nil {
		t.Fatal("expected error from failed compaction")
	}

	after := mem.Turns()
	if len(after) != len(before) {
		t.Fatalf("turn count changed after failure: %d != %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("turn %d changed: %+v != %+v", i, after[i], before[i])
		}
	}
	if mem.Summary() != "" {
		t.Errorf("summary should stay empty on failure: %q", mem.Summary())
	}
}

func TestClear(t *testing.T) {
	mem := NewMemory(1000)
	mem.AddInteraction("q", "a")
	mem.AddInteraction("q2", "a2")
	_ = mem.Summarize(context.Background(), func(ctx context.Context, _ []llm.Message) (string, error) {
		return "s", nil
	})

	mem.Clear()
	if mem.Len() != 0 {
		t.Errorf("turns not cleared: %d", mem.Len())
	}
	if mem.Summary() != "" {
		t.Errorf("summary not cleared: %q", mem.Summary())
	}
}

func TestRecentTurns(t *testing.T) {
	mem := NewMemory(1000)
	mem.AddInteraction("q1", "a1")
	mem.AddInteraction("q2", "a2")

	recent := mem.RecentTurns(2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(recent))
	}
	if recent[0].Content != "q2" || recent[1].Content != "a2" {
		t.Errorf("wrong recent turns: %+v", recent)
	}

	all := mem.RecentTurns(10)
	if len(all) != 4 {
		t.Errorf("expected all 4 turns, got %d", len(all))
	}
}
