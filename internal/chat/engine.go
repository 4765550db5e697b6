package chat

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/nonthaphat/sportsdesk/internal/catalog"
	"github.com/nonthaphat/sportsdesk/internal/llm"
	"github.com/nonthaphat/sportsdesk/internal/parents"
	"github.com/nonthaphat/sportsdesk/internal/vectordb"
)

// engineHistoryWindow is the fixed number of raw history turns included in
// the generation prompt for conversational flow. This is distinct from
// Memory's own token-bounded window.
const engineHistoryWindow = 2

// compactionThreshold is the turn count past which the engine compacts older
// history into the running summary after a turn completes.
const compactionThreshold = 12

// Options configures a conversation engine.
type Options struct {
	Provider         llm.Provider
	Model            string
	Store            vectordb.PassageStore
	Parents          map[string]parents.Document
	TopK             int
	MaxHistoryTokens int
	MaxAnswerTokens  int
	Temperature      float64
	Timeout          time.Duration
}

// Engine composes analysis, sticky state, hierarchical retrieval, grounding
// assembly and generation into end-to-end conversational turns. One Engine
// owns one conversation; turns are serialized behind a mutex so concurrent
// callers cannot interleave state updates.
type Engine struct {
	mu        sync.Mutex
	analyzer  *Analyzer
	retriever *Retriever
	generator *Generator
	memory    *Memory
	state     SessionState
}

// NewEngine creates an engine for a single conversation.
func NewEngine(opts Options) *Engine {
	return &Engine{
		analyzer:  NewAnalyzer(opts.Provider, opts.Model, opts.Timeout),
		retriever: NewRetriever(opts.Store, opts.Parents, opts.TopK),
		generator: NewGenerator(opts.Provider, opts.Model, opts.MaxAnswerTokens, opts.Temperature, opts.Timeout),
		memory:    NewMemory(opts.MaxHistoryTokens),
	}
}

// Chat runs one conversational turn and returns the reply. Failures in any
// stage degrade per that stage's fallback; the reply is always a normal
// string, never an error.
func (e *Engine) Chat(ctx context.Context, query string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	// 1. Combined analysis against the pre-turn locks and history.
	analysis := e.analyzer.Analyze(ctx, query, e.memory.Turns(), e.state.Sport, e.state.Intent)

	// 2. Sticky state update; retrieval below sees the post-update lock.
	e.state.ApplyAnalysis(analysis)

	// 3. Hierarchical retrieval with the updated lock.
	items := e.retriever.Retrieve(ctx, analysis.RewrittenQuery, e.state.Sport)

	// 4-5. Grounding block and system instruction, summary-augmented.
	grounding := buildGroundingBlock(items)
	system := e.memory.WithSummary(buildSystemPrompt(e.state.Sport, e.state.Intent, grounding))

	// 6. System + a fixed small window of raw history + the rewritten query.
	messages := make([]llm.Message, 0, engineHistoryWindow+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system})
	messages = append(messages, e.memory.RecentTurns(engineHistoryWindow)...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: analysis.RewrittenQuery})

	// 7. Fail-closed generation: an apology reply is still a reply.
	reply := e.generator.Generate(ctx, messages)

	// 8. Record the ORIGINAL query, not the rewritten one.
	e.memory.AddInteraction(query, reply)

	e.maybeCompact(ctx)

	return reply
}

// maybeCompact folds older history into the running summary once the
// conversation gets long. Failure leaves history untouched.
func (e *Engine) maybeCompact(ctx context.Context) {
	if e.memory.Len() < compactionThreshold {
		return
	}
	if err := e.memory.Summarize(ctx, e.generator.generateOrError); err != nil {
		log.Printf("chat: history compaction skipped: %v", err)
	}
}

// SetSport manually overrides the sport lock, bypassing sticky analysis.
// An empty sport resets to the unconstrained all-sports state.
func (e *Engine) SetSport(sport catalog.Sport) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.SetSport(sport)
}

// Sport returns the current sport lock, empty when unconstrained.
func (e *Engine) Sport() catalog.Sport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Sport
}

// Intent returns the current sub-topic lock, empty when none.
func (e *Engine) Intent() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Intent
}

// History returns a copy of the conversation so far.
func (e *Engine) History() []Turn {
	return e.memory.Turns()
}

// Reset clears conversation history, the running summary and both locks.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.memory.Clear()
	e.state = SessionState{}
}
