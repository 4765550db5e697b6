package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/nonthaphat/sportsdesk/internal/catalog"
	"github.com/nonthaphat/sportsdesk/internal/parents"
	"github.com/nonthaphat/sportsdesk/internal/vectordb"
)

func chunkResult(id, content string, sim float32, sports ...catalog.Sport) vectordb.SearchResult {
	return vectordb.SearchResult{
		Passage: vectordb.Passage{
			ID:      id,
			Content: content,
			Metadata: vectordb.PassageMetadata{
				Sports:  sports,
				Package: "PLAY " + string(sports[0]),
			},
		},
		Similarity: sim,
	}
}

func multiResult(id, content, parentID string, sim float32) vectordb.SearchResult {
	return vectordb.SearchResult{
		Passage: vectordb.Passage{
			ID:      id,
			Content: content,
			Metadata: vectordb.PassageMetadata{
				Sports:     []catalog.Sport{catalog.SportMulti},
				MultiSport: true,
				ParentID:   parentID,
				Package:    "PLAY ULTIMATE",
			},
		},
		Similarity: sim,
	}
}

func ultimateParents() map[string]parents.Document {
	return map[string]parents.Document{
		"ULTIMATE_parent": {
			ID:          "ULTIMATE_parent",
			Package:     "PLAY ULTIMATE",
			FullContent: "PLAY ULTIMATE: ครบทั้ง 5 กีฬา พร้อม Netflix และ Disney+",
		},
	}
}

func TestRetrieveSportFilter(t *testing.T) {
	store := &fakeStore{results: []vectordb.SearchResult{
		chunkResult("epl-1", "EPL fixture info", 0.9, catalog.SportEPL),
		chunkResult("nba-1", "NBA package info", 0.8, catalog.SportNBA),
		chunkResult("epl-2", "EPL pricing", 0.7, catalog.SportEPL),
	}}
	r := NewRetriever(store, nil, 5)

	items := r.Retrieve(context.Background(), "ราคา", catalog.SportEPL)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for _, it := range items {
		for _, s := range it.Sports {
			if s == catalog.SportNBA {
				t.Errorf("NBA passage leaked through EPL lock: %+v", it)
			}
		}
	}
}

func TestRetrieveNoLockPassesEverything(t *testing.T) {
	store := &fakeStore{results: []vectordb.SearchResult{
		chunkResult("epl-1", "EPL info", 0.9, catalog.SportEPL),
		chunkResult("nba-1", "NBA info", 0.8, catalog.SportNBA),
		chunkResult("golf-1", "Golf info", 0.7, catalog.SportGolf1),
	}}
	r := NewRetriever(store, nil, 5)

	items := r.Retrieve(context.Background(), "แพ็กเกจ", "")
	if len(items) != 3 {
		t.Errorf("unconstrained retrieval should pass all sports, got %d", len(items))
	}
}

func TestRetrieveGolfAliasMatchesUnderLock(t *testing.T) {
	store := &fakeStore{results: []vectordb.SearchResult{
		chunkResult("golf1", "Golf 1 package", 0.9, catalog.SportGolf1),
		chunkResult("golf2", "Golf 2 package", 0.8, catalog.SportGolf2),
		chunkResult("nba", "NBA package", 0.7, catalog.SportNBA),
	}}
	r := NewRetriever(store, nil, 5)

	items := r.Retrieve(context.Background(), "กอล์ฟ", catalog.SportGolf)
	if len(items) != 2 {
		t.Fatalf("GOLF lock should match GOLF1 and GOLF2, got %d items", len(items))
	}
}

func TestRetrieveMultiSportPassesSingleSportLock(t *testing.T) {
	store := &fakeStore{results: []vectordb.SearchResult{
		multiResult("ult-1", "fragment about ultimate", "ULTIMATE_parent", 0.8),
		chunkResult("nba", "NBA only", 0.7, catalog.SportNBA),
	}}
	r := NewRetriever(store, ultimateParents(), 5)

	items := r.Retrieve(context.Background(), "แพ็กเกจรวม", catalog.SportEPL)
	if len(items) != 1 {
		t.Fatalf("expected only the multi-sport item, got %d", len(items))
	}
	if items[0].Kind != KindParent {
		t.Errorf("multi-sport hit should resolve to the parent, got %s", items[0].Kind)
	}
}

func TestRetrieveParentDedupAndBoost(t *testing.T) {
	store := &fakeStore{results: []vectordb.SearchResult{
		multiResult("ult-1", "fragment one", "ULTIMATE_parent", 0.9),
		multiResult("ult-2", "fragment two", "ULTIMATE_parent", 0.85),
		multiResult("ult-3", "fragment three", "ULTIMATE_parent", 0.8),
		chunkResult("epl", "EPL info", 0.6, catalog.SportEPL),
	}}
	r := NewRetriever(store, ultimateParents(), 5)

	items := r.Retrieve(context.Background(), "ultimate", "")
	if len(items) != 2 {
		t.Fatalf("expected parent once plus the EPL chunk, got %d", len(items))
	}

	parent := items[0]
	if parent.Kind != KindParent {
		t.Fatalf("first item should be the resolved parent, got %s", parent.Kind)
	}
	if parent.Content != ultimateParents()["ULTIMATE_parent"].FullContent {
		t.Errorf("parent content not substituted: %q", parent.Content)
	}
	if parent.Similarity != 0.9+parentBoost {
		t.Errorf("parent boost missing: got %v, want %v", parent.Similarity, 0.9+parentBoost)
	}
	if items[1].Kind != KindChunk {
		t.Errorf("second item should be the plain chunk, got %s", items[1].Kind)
	}
}

func TestRetrieveMissingParentFallsBackToChunk(t *testing.T) {
	store := &fakeStore{results: []vectordb.SearchResult{
		multiResult("ult-1", "orphan fragment", "GONE_parent", 0.9),
	}}
	r := NewRetriever(store, ultimateParents(), 5)

	items := r.Retrieve(context.Background(), "bundle", "")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Kind != KindChunk {
		t.Errorf("missing parent should fall back to the fragment, got %s", items[0].Kind)
	}
	if items[0].Content != "orphan fragment" {
		t.Errorf("fragment content lost: %q", items[0].Content)
	}
	if items[0].Similarity != 0.9 {
		t.Errorf("fallback chunk must not be boosted: %v", items[0].Similarity)
	}
}

func TestRetrieveStopsAtTopK(t *testing.T) {
	var results []vectordb.SearchResult
	for i := 0; i < 12; i++ {
		results = append(results, chunkResult(
			string(rune('a'+i)), "EPL chunk", float32(1.0)-float32(i)*0.05, catalog.SportEPL))
	}
	store := &fakeStore{results: results}
	r := NewRetriever(store, nil, 3)

	items := r.Retrieve(context.Background(), "epl", catalog.SportEPL)
	if len(items) != 3 {
		t.Errorf("expected exactly topK=3 items, got %d", len(items))
	}
}

func TestRetrieveFewerThanTopKOnExhaustion(t *testing.T) {
	store := &fakeStore{results: []vectordb.SearchResult{
		chunkResult("nba-1", "NBA info", 0.9, catalog.SportNBA),
		chunkResult("epl-1", "EPL info", 0.8, catalog.SportEPL),
	}}
	r := NewRetriever(store, nil, 5)

	items := r.Retrieve(context.Background(), "epl", catalog.SportEPL)
	if len(items) != 1 {
		t.Errorf("exhausted candidates should yield fewer than topK, got %d", len(items))
	}
}

func TestRetrieveErrorReturnsEmpty(t *testing.T) {
	store := &fakeStore{err: errors.New("index unavailable")}
	r := NewRetriever(store, nil, 5)

	items := r.Retrieve(context.Background(), "anything", "")
	if items != nil {
		t.Errorf("store failure must degrade to no grounding, got %d items", len(items))
	}
}
