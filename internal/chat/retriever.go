package chat

import (
	"context"
	"log"

	"github.com/nonthaphat/sportsdesk/internal/catalog"
	"github.com/nonthaphat/sportsdesk/internal/parents"
	"github.com/nonthaphat/sportsdesk/internal/vectordb"
)

// overFetchFactor absorbs post-filtering losses without a second index
// round trip.
const overFetchFactor = 3

// parentBoost is added to a resolved parent's similarity so complete
// multi-sport context outranks the fragment that surfaced it.
const parentBoost = 0.1

// Retriever resolves a rewritten query plus the current sport lock into at
// most topK grounding items, favoring whole-parent context over fragments
// for multi-sport material.
type Retriever struct {
	store   vectordb.PassageStore
	parents map[string]parents.Document
	topK    int
}

// NewRetriever creates a Retriever. parentDocs may be nil or empty, in which
// case hierarchy resolution is unavailable and multi-sport fragments are
// returned as plain chunks instead of being dropped.
func NewRetriever(store vectordb.PassageStore, parentDocs map[string]parents.Document, topK int) *Retriever {
	if topK <= 0 {
		topK = 5
	}
	if len(parentDocs) == 0 {
		log.Printf("chat: no parent documents loaded, hierarchy retrieval unavailable")
	}
	return &Retriever{store: store, parents: parentDocs, topK: topK}
}

// Retrieve runs the hierarchical retrieval algorithm. Any error from the
// index degrades to an empty result: retrieval failure must never abort the
// conversational turn. Fewer than topK items, including none, is a valid
// outcome when candidates are exhausted or filtered out.
func (r *Retriever) Retrieve(ctx context.Context, query string, lock catalog.Sport) []RetrievedItem {
	candidates, err := r.store.Search(ctx, query, r.topK*overFetchFactor)
	if err != nil {
		log.Printf("chat: retrieval failed, returning no grounding: %v", err)
		return nil
	}

	var items []RetrievedItem
	seenParents := make(map[string]bool)

	for _, c := range candidates {
		md := c.Passage.Metadata

		// Hard filter: under a lock, only passages tagged with the locked
		// sport (or multi-sport / golf-alias content) are eligible.
		if !lock.Matches(md.Sports) {
			continue
		}

		if md.MultiSport && md.ParentID != "" {
			if seenParents[md.ParentID] {
				// One grounding item per parent per turn, no matter how
				// many of its fragments rank highly.
				continue
			}
			if parent, ok := r.parents[md.ParentID]; ok {
				items = append(items, RetrievedItem{
					Content:    parent.FullContent,
					Kind:       KindParent,
					Sports:     md.Sports,
					Package:    parent.Package,
					Similarity: c.Similarity + parentBoost,
				})
				seenParents[md.ParentID] = true
			} else {
				// Parent cache missing or incomplete: fall back to the
				// fragment itself rather than dropping the hit.
				items = append(items, RetrievedItem{
					Content:    c.Passage.Content,
					Kind:       KindChunk,
					Sports:     md.Sports,
					Package:    md.Package,
					Similarity: c.Similarity,
				})
			}
		} else {
			items = append(items, RetrievedItem{
				Content:    c.Passage.Content,
				Kind:       KindChunk,
				Sports:     md.Sports,
				Package:    md.Package,
				Similarity: c.Similarity,
			})
		}

		if len(items) >= r.topK {
			break
		}
	}

	return items
}
