package ingest

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/nonthaphat/sportsdesk/internal/catalog"
	"github.com/nonthaphat/sportsdesk/internal/config"
	"github.com/nonthaphat/sportsdesk/internal/parents"
	"github.com/nonthaphat/sportsdesk/internal/vectordb"
)

// Pipeline orchestrates ingestion: discover -> clean -> chunk/hierarchy ->
// index -> persist. Single-sport files become overlapping chunks; multi-sport
// bundle files become a stored parent plus per-sport child passages.
type Pipeline struct {
	store    vectordb.PassageStore
	parents  *parents.Store
	chunker  *Chunker
	cfg      *config.Config
	progress bool
}

// Result summarizes one ingestion run.
type Result struct {
	FilesProcessed  int
	FilesSkipped    int
	PassagesIndexed int
	ParentsStored   int
	Errors          []error
	Duration        time.Duration
}

// NewPipeline creates an ingestion pipeline. Progress output is optional so
// the pipeline stays quiet under tests and server-triggered reindexing.
func NewPipeline(store vectordb.PassageStore, parentStore *parents.Store, cfg *config.Config, progress bool) *Pipeline {
	return &Pipeline{
		store:    store,
		parents:  parentStore,
		chunker:  NewChunker(cfg.ChunkSize, cfg.ChunkOverlap),
		cfg:      cfg,
		progress: progress,
	}
}

// Run ingests every mapped file under the data directory. Files without a
// sport mapping are skipped, not failed: the mapping is the catalog's source
// of truth and unmapped files are simply not catalog content.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{}

	entries, err := os.ReadDir(p.cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("reading data dir %s: %w", p.cfg.DataDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !MatchesInclude(name, p.cfg.Include) || MatchesExclude(name, p.cfg.Exclude) {
			continue
		}
		files = append(files, name)
	}

	var bar *progressbar.ProgressBar
	if p.progress {
		bar = progressbar.Default(int64(len(files)), "ingesting")
	}

	for _, name := range files {
		if bar != nil {
			bar.Describe(name)
		}
		if err := p.ingestFile(ctx, name, result); err != nil {
			result.Errors = append(result.Errors, err)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if p.cfg.StoreDir != "" {
		if err := p.store.Persist(ctx, p.cfg.StoreDir); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("persisting index: %w", err))
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

func (p *Pipeline) ingestFile(ctx context.Context, name string, result *Result) error {
	mapping, ok := p.cfg.Files[name]
	if !ok {
		log.Printf("ingest: skipping %s: no sport mapping", name)
		result.FilesSkipped++
		return nil
	}

	raw, err := os.ReadFile(filepath.Join(p.cfg.DataDir, name))
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	content := CleanText(string(raw))
	if content == "" {
		log.Printf("ingest: skipping %s: empty after cleaning", name)
		result.FilesSkipped++
		return nil
	}

	// Replace, never accumulate: stale passages from a previous version of
	// the file would otherwise keep surfacing.
	if err := p.store.DeleteBySourceFile(ctx, name); err != nil {
		return fmt.Errorf("deleting stale passages for %s: %w", name, err)
	}

	var passages []vectordb.Passage
	if mapping.MultiSport {
		parent, children := BuildHierarchy(name, content, mapping)
		if err := p.parents.Upsert(ctx, parent); err != nil {
			return err
		}
		result.ParentsStored++
		passages = children
	} else {
		passages = p.chunkFile(name, content, mapping)
	}

	if err := p.store.AddPassages(ctx, passages); err != nil {
		return fmt.Errorf("indexing %s: %w", name, err)
	}

	result.FilesProcessed++
	result.PassagesIndexed += len(passages)
	return nil
}

// chunkFile splits a single-sport file into passages.
func (p *Pipeline) chunkFile(name, content string, mapping config.FileMapping) []vectordb.Passage {
	base := FileBase(name)
	label := PackageLabel(name, mapping)
	sports := make([]catalog.Sport, 0, len(mapping.Sports))
	for _, s := range mapping.Sports {
		if sport, ok := catalog.Parse(s); ok {
			sports = append(sports, sport)
		}
	}

	chunks := p.chunker.Split(content)
	passages := make([]vectordb.Passage, 0, len(chunks))
	for i, chunk := range chunks {
		passages = append(passages, vectordb.Passage{
			ID:      fmt.Sprintf("%s_chunk_%d", base, i),
			Content: chunk,
			Metadata: vectordb.PassageMetadata{
				Sports:     sports,
				SourceFile: name,
				Package:    label,
			},
		})
	}
	return passages
}
