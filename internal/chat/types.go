package chat

import (
	"context"

	"github.com/nonthaphat/sportsdesk/internal/catalog"
	"github.com/nonthaphat/sportsdesk/internal/llm"
)

// Turn is a single conversation entry. Turns are always recorded in
// (user, assistant) pairs; ordering is insertion order and defines recency.
type Turn struct {
	Role    llm.Role
	Content string
}

// ItemKind distinguishes grounding items built from a single indexed chunk
// from items resolved to a full parent document.
type ItemKind string

const (
	KindChunk  ItemKind = "chunk"
	KindParent ItemKind = "parent"
)

// RetrievedItem is one grounding item for the current turn. Items live only
// long enough to render the grounding block.
type RetrievedItem struct {
	Content    string
	Kind       ItemKind
	Sports     []catalog.Sport
	Package    string
	Similarity float32
}

// GenerateFunc abstracts a single text generation call, used by memory
// compaction so it stays decoupled from the provider plumbing.
type GenerateFunc func(ctx context.Context, messages []llm.Message) (string, error)
