package vectordb

import (
	"context"
	"math"
	"os"
	"testing"

	"github.com/nonthaphat/sportsdesk/internal/catalog"
)

// mockEmbedder returns deterministic embeddings based on text content.
// It produces a simple hash-based vector for reproducible tests.
type mockEmbedder struct {
	dims int
}

func newMockEmbedder(dims int) *mockEmbedder {
	return &mockEmbedder{dims: dims}
}

func (m *mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	for i, text := range texts {
		results[i] = m.deterministicVector(text)
	}
	return results, nil
}

func (m *mockEmbedder) Dimensions() int { return m.dims }
func (m *mockEmbedder) Name() string    { return "mock" }

// deterministicVector produces a normalized vector from text. Similar texts
// produce similar vectors because shared characters contribute to the same
// positions.
func (m *mockEmbedder) deterministicVector(text string) []float32 {
	vec := make([]float32, m.dims)
	for i, ch := range text {
		idx := (int(ch) + i) % m.dims
		vec[idx] += 1.0
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec
}

func samplePassages() []Passage {
	return []Passage{
		{
			ID:      "nba_0",
			Content: "NBA package pricing: monthly subscription with all regular season games",
			Metadata: PassageMetadata{
				Sports:     []catalog.Sport{catalog.SportNBA},
				SourceFile: "final_NBA_clean.md",
				Package:    "NBA",
			},
		},
		{
			ID:      "epl_0",
			Content: "Premier League football package with every EPL match live",
			Metadata: PassageMetadata{
				Sports:     []catalog.Sport{catalog.SportEPL},
				SourceFile: "final_EPL_clean.md",
				Package:    "MONOMAX",
			},
		},
		{
			ID:      "ultimate_nba",
			Content: "PLAY ULTIMATE bundle: NBA plus four other sports and streaming services",
			Metadata: PassageMetadata{
				Sports:     []catalog.Sport{catalog.SportEPL, catalog.SportGolf, catalog.SportNBA, catalog.SportNFL, catalog.SportTennis},
				MultiSport: true,
				ParentID:   "PLAY_ULTIMATE_parent",
				SourceFile: "final_PLAY_ULTIMATE_clean.md",
				Package:    "PLAY ULTIMATE",
			},
		},
	}
}

func TestChromemStore_AddAndSearch(t *testing.T) {
	ctx := context.Background()
	store, err := NewChromemStore(newMockEmbedder(64))
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}

	if err := store.AddPassages(ctx, samplePassages()); err != nil {
		t.Fatalf("AddPassages: %v", err)
	}

	if count := store.Count(); count != 3 {
		t.Errorf("Count: got %d, want 3", count)
	}

	results, err := store.Search(ctx, "NBA basketball subscription price", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("Search returned no results")
	}
	if len(results) > 2 {
		t.Errorf("Search returned %d results, expected at most 2", len(results))
	}
	for _, r := range results {
		if r.Similarity == 0 {
			t.Error("result has zero similarity")
		}
	}
}

func TestChromemStore_SearchEmptyStore(t *testing.T) {
	store, err := NewChromemStore(newMockEmbedder(64))
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}

	results, err := store.Search(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Search on empty store: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestChromemStore_MetadataRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewChromemStore(newMockEmbedder(64))
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}

	if err := store.AddPassages(ctx, samplePassages()); err != nil {
		t.Fatalf("AddPassages: %v", err)
	}

	results, err := store.Search(ctx, "PLAY ULTIMATE bundle sports streaming", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	var found bool
	for _, r := range results {
		if r.Passage.ID != "ultimate_nba" {
			continue
		}
		found = true
		md := r.Passage.Metadata
		if !md.MultiSport {
			t.Error("multi_sport flag lost in round trip")
		}
		if md.ParentID != "PLAY_ULTIMATE_parent" {
			t.Errorf("parent_id lost: %q", md.ParentID)
		}
		if md.Package != "PLAY ULTIMATE" {
			t.Errorf("package lost: %q", md.Package)
		}
		if len(md.Sports) != 5 {
			t.Errorf("expected 5 sport tags, got %v", md.Sports)
		}
	}
	if !found {
		t.Fatal("ultimate_nba passage not in top 3 results")
	}
}

func TestChromemStore_DeleteBySourceFile(t *testing.T) {
	ctx := context.Background()
	store, err := NewChromemStore(newMockEmbedder(64))
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}

	if err := store.AddPassages(ctx, samplePassages()); err != nil {
		t.Fatalf("AddPassages: %v", err)
	}

	if err := store.DeleteBySourceFile(ctx, "final_NBA_clean.md"); err != nil {
		t.Fatalf("DeleteBySourceFile: %v", err)
	}

	if count := store.Count(); count != 2 {
		t.Errorf("Count after delete: got %d, want 2", count)
	}
}

func TestChromemStore_PersistAndLoad(t *testing.T) {
	ctx := context.Background()
	embedder := newMockEmbedder(64)

	store, err := NewChromemStore(embedder)
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}

	if err := store.AddPassages(ctx, samplePassages()); err != nil {
		t.Fatalf("AddPassages: %v", err)
	}

	tmpDir, err := os.MkdirTemp("", "chromem-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := store.Persist(ctx, tmpDir); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	store2, err := NewChromemStore(embedder)
	if err != nil {
		t.Fatalf("NewChromemStore for load: %v", err)
	}
	if err := store2.Load(ctx, tmpDir); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if count := store2.Count(); count != 3 {
		t.Errorf("Count after load: got %d, want 3", count)
	}
}
