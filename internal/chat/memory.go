package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nonthaphat/sportsdesk/internal/llm"
)

// charsPerToken is the character-count approximation of one token used for
// windowing. Exact tokenization is deliberately out of scope.
const charsPerToken = 4

// retainedTurns is how many recent turns compaction keeps verbatim.
const retainedTurns = 2

// Memory keeps a size-bounded slice of the conversation plus an optional
// textual summary of everything older. All methods are safe for concurrent
// use, though a session processes one turn at a time.
type Memory struct {
	mu        sync.Mutex
	turns     []Turn
	summary   string
	maxTokens int
}

// NewMemory creates a Memory with the given token budget for the recency
// window. A non-positive budget falls back to 1000.
func NewMemory(maxTokens int) *Memory {
	if maxTokens <= 0 {
		maxTokens = 1000
	}
	return &Memory{maxTokens: maxTokens}
}

// AddInteraction appends a (user, assistant) pair. It never trims; windowing
// happens on read and compaction is explicit.
func (m *Memory) AddInteraction(userText, assistantText string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns,
		Turn{Role: llm.RoleUser, Content: userText},
		Turn{Role: llm.RoleAssistant, Content: assistantText},
	)
}

// Messages builds the role-tagged message list for a generation call:
// the system prompt (augmented with the running summary when one exists)
// followed by as many recent turns as fit the token budget. The budget
// counts the system content too; a turn that would overflow is excluded
// whole, never truncated. Chronological order is preserved.
func (m *Memory) Messages(systemPrompt string) []llm.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	var messages []llm.Message
	system := m.withSummaryLocked(systemPrompt)
	if system != "" {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system})
	}

	budget := m.maxTokens * charsPerToken
	used := len(system)

	var recent []llm.Message
	for i := len(m.turns) - 1; i >= 0; i-- {
		turn := m.turns[i]
		if used+len(turn.Content) > budget {
			break
		}
		recent = append(recent, llm.Message{Role: turn.Role, Content: turn.Content})
		used += len(turn.Content)
	}

	// recent was collected newest-first; restore chronological order.
	for i := len(recent) - 1; i >= 0; i-- {
		messages = append(messages, recent[i])
	}
	return messages
}

// WithSummary returns the system prompt augmented with the running summary
// block, or the prompt unchanged when no summary exists.
func (m *Memory) WithSummary(systemPrompt string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.withSummaryLocked(systemPrompt)
}

func (m *Memory) withSummaryLocked(systemPrompt string) string {
	if m.summary == "" {
		return systemPrompt
	}
	return systemPrompt + "\n\nPREVIOUS CONVERSATION SUMMARY:\n" + m.summary
}

// Turns returns a copy of the stored turns in chronological order.
func (m *Memory) Turns() []Turn {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// RecentTurns returns the last n turns as messages, oldest first.
func (m *Memory) RecentTurns(n int) []llm.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	start := len(m.turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]llm.Message, 0, len(m.turns)-start)
	for _, t := range m.turns[start:] {
		out = append(out, llm.Message{Role: t.Role, Content: t.Content})
	}
	return out
}

// Len returns the number of stored turns.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.turns)
}

// Summary returns the running summary text, empty if none.
func (m *Memory) Summary() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.summary
}

// Clear resets both history and summary, starting a fresh conversation.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = nil
	m.summary = ""
}

// Summarize compacts everything except the most recent turns into the
// running summary using one generation call. With fewer than 3 stored turns
// there is nothing worth compacting and the call is a no-op. Compaction is
// best-effort: on generation failure the older turns stay in place and the
// error is returned for logging only, history is never lost.
func (m *Memory) Summarize(ctx context.Context, generate GenerateFunc) error {
	m.mu.Lock()
	if len(m.turns) < 3 {
		m.mu.Unlock()
		return nil
	}

	cut := len(m.turns) - retainedTurns
	older := m.turns[:cut]
	existing := m.summary

	var transcript strings.Builder
	for _, t := range older {
		fmt.Fprintf(&transcript, "%s: %s\n", t.Role, t.Content)
	}
	m.mu.Unlock()

	prompt := buildSummaryPrompt(existing, transcript.String())
	updated, err := generate(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}})
	if err != nil {
		return fmt.Errorf("summarizing history: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// History may have grown while the call was in flight; only the turns
	// that were summarized are dropped.
	if len(m.turns) >= cut {
		m.turns = append([]Turn(nil), m.turns[cut:]...)
	}
	m.summary = strings.TrimSpace(updated)
	return nil
}
