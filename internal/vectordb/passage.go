package vectordb

import "github.com/nonthaphat/sportsdesk/internal/catalog"

// Passage is the unit indexed by the similarity store: a chunk of a package
// document plus the metadata retrieval needs. Passages are created during
// ingestion and never mutated afterwards.
type Passage struct {
	ID       string
	Content  string
	Metadata PassageMetadata
}

// PassageMetadata holds the retrieval-relevant facts about a passage.
type PassageMetadata struct {
	// Sports tags the passage with the sport codes it covers.
	Sports []catalog.Sport
	// MultiSport marks fragments of a bundle document. Together with
	// ParentID it triggers whole-parent resolution during retrieval.
	MultiSport bool
	// ParentID references the parent document this fragment belongs to.
	// Empty for single-sport chunks.
	ParentID string
	// SourceFile is the ingested file this passage came from.
	SourceFile string
	// Package is the subscription package label shown in grounding output.
	Package string
}

// SearchResult pairs a passage with its similarity score.
type SearchResult struct {
	Passage    Passage
	Similarity float32
}
