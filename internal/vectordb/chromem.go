package vectordb

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"

	"github.com/nonthaphat/sportsdesk/internal/catalog"
	"github.com/nonthaphat/sportsdesk/internal/embeddings"
)

const collectionName = "packages"

// ChromemStore implements PassageStore using chromem-go.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedder   embeddings.Embedder
	embedFunc  chromem.EmbeddingFunc
}

// NewChromemStore creates a new in-memory ChromemStore.
func NewChromemStore(embedder embeddings.Embedder) (*ChromemStore, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &ChromemStore{
		db:         db,
		collection: col,
		embedder:   embedder,
		embedFunc:  ef,
	}, nil
}

func (s *ChromemStore) AddPassages(ctx context.Context, passages []Passage) error {
	if len(passages) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(passages))
	for i, p := range passages {
		docs[i] = chromem.Document{
			ID:       p.ID,
			Content:  p.Content,
			Metadata: metadataToMap(p.Metadata),
		}
	}

	return s.collection.AddDocuments(ctx, docs, 1)
}

// Search embeds the query and returns the most similar passages. chromem-go
// reports cosine similarity directly, so no distance conversion is needed
// here; callers get scores in the same 1-minus-distance sense the retriever
// expects.
func (s *ChromemStore) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	// chromem-go requires nResults <= collection size.
	if count := s.collection.Count(); limit > count && count > 0 {
		limit = count
	} else if count == 0 {
		return nil, nil
	}

	results, err := s.collection.Query(ctx, query, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	searchResults := make([]SearchResult, len(results))
	for i, r := range results {
		searchResults[i] = SearchResult{
			Passage: Passage{
				ID:       r.ID,
				Content:  r.Content,
				Metadata: mapToMetadata(r.Metadata),
			},
			Similarity: r.Similarity,
		}
	}

	return searchResults, nil
}

func (s *ChromemStore) DeleteBySourceFile(ctx context.Context, sourceFile string) error {
	where := map[string]string{"source_file": sourceFile}
	return s.collection.Delete(ctx, where, nil)
}

func (s *ChromemStore) Persist(ctx context.Context, dir string) error {
	return s.db.ExportToFile(dir+"/chromem.gob.gz", true, "")
}

func (s *ChromemStore) Load(ctx context.Context, dir string) error {
	err := s.db.ImportFromFile(dir+"/chromem.gob.gz", "")
	if err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection reference after import.
	col := s.db.GetCollection(collectionName, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	s.collection = col
	return nil
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}

// metadataToMap converts PassageMetadata to a flat map[string]string for chromem.
func metadataToMap(m PassageMetadata) map[string]string {
	md := map[string]string{
		"sports":      catalog.JoinTags(m.Sports),
		"source_file": m.SourceFile,
		"package":     m.Package,
	}
	if m.MultiSport {
		md["is_multi_sport"] = "true"
	}
	if m.ParentID != "" {
		md["parent_id"] = m.ParentID
	}
	return md
}

// mapToMetadata converts a flat map[string]string back to PassageMetadata.
func mapToMetadata(m map[string]string) PassageMetadata {
	return PassageMetadata{
		Sports:     catalog.ParseTags(m["sports"]),
		MultiSport: m["is_multi_sport"] == "true",
		ParentID:   m["parent_id"],
		SourceFile: m["source_file"],
		Package:    m["package"],
	}
}
