// Package parents stores the full-content parent documents that hierarchical
// retrieval resolves multi-sport fragments into.
package parents

import (
	"context"
	"fmt"

	"github.com/nonthaphat/sportsdesk/internal/catalog"
	"github.com/nonthaphat/sportsdesk/internal/db"
)

// Document is a parent document: the complete content of a multi-sport
// package file. One parent owns many indexed child fragments.
type Document struct {
	ID          string
	Package     string
	FullContent string
	Sports      []catalog.Sport
	SourceFile  string
}

// Store persists parent documents in SQLite. Ingestion writes; the chat
// engine loads everything once at startup and treats the result as
// read-only.
type Store struct {
	db *db.DB
}

// NewStore creates a parent document store on the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Upsert inserts or replaces a parent document.
func (s *Store) Upsert(ctx context.Context, doc Document) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO parent_documents (id, package, full_content, sports, source_file, updated_at)
		VALUES (?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET
			package = excluded.package,
			full_content = excluded.full_content,
			sports = excluded.sports,
			source_file = excluded.source_file,
			updated_at = datetime('now')`,
		doc.ID, doc.Package, doc.FullContent, catalog.JoinTags(doc.Sports), doc.SourceFile)
	if err != nil {
		return fmt.Errorf("upserting parent %s: %w", doc.ID, err)
	}
	return nil
}

// LoadAll reads every parent document into a map keyed by id. An empty map
// is a valid result: the engine then treats hierarchy retrieval as
// unavailable and multi-sport fragments surface as plain chunks.
func (s *Store) LoadAll(ctx context.Context) (map[string]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, package, full_content, sports, source_file FROM parent_documents`)
	if err != nil {
		return nil, fmt.Errorf("loading parent documents: %w", err)
	}
	defer rows.Close()

	docs := make(map[string]Document)
	for rows.Next() {
		var doc Document
		var sports string
		if err := rows.Scan(&doc.ID, &doc.Package, &doc.FullContent, &sports, &doc.SourceFile); err != nil {
			return nil, fmt.Errorf("scanning parent document: %w", err)
		}
		doc.Sports = catalog.ParseTags(sports)
		docs[doc.ID] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating parent documents: %w", err)
	}
	return docs, nil
}

// Count returns the number of stored parent documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM parent_documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting parent documents: %w", err)
	}
	return n, nil
}
