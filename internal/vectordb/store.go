package vectordb

import "context"

// PassageStore defines the interface for indexing and searching passages by
// semantic similarity. Implementations are read-only from the chat core's
// perspective once loaded; only ingestion writes.
type PassageStore interface {
	// AddPassages adds or updates passages in the store.
	AddPassages(ctx context.Context, passages []Passage) error

	// Search returns the passages most similar to the query text, ranked by
	// descending similarity.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)

	// DeleteBySourceFile removes all passages from the given source file.
	DeleteBySourceFile(ctx context.Context, sourceFile string) error

	// Persist saves the store's data to the given directory.
	Persist(ctx context.Context, dir string) error

	// Load restores the store's data from the given directory.
	Load(ctx context.Context, dir string) error

	// Count returns the total number of passages in the store.
	Count() int
}
