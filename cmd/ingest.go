package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nonthaphat/sportsdesk/internal/db"
	"github.com/nonthaphat/sportsdesk/internal/ingest"
	"github.com/nonthaphat/sportsdesk/internal/parents"
	"github.com/nonthaphat/sportsdesk/internal/vectordb"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Index the package documents into the search index",
	Long: `Reads the package documents from the data directory, cleans and chunks
them, builds parent/child hierarchy for multi-sport bundles, and writes the
semantic index and parent database to the store directory.`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return fmt.Errorf("creating vector store: %w", err)
	}

	// Reingest on top of the existing index when one exists, so unchanged
	// files keep their passages.
	if err := store.Load(ctx, cfg.StoreDir); err == nil && verbose {
		fmt.Printf("Loaded existing index with %d passages\n", store.Count())
	}

	if err := os.MkdirAll(cfg.StoreDir, 0o755); err != nil {
		return fmt.Errorf("creating store dir: %w", err)
	}
	database, err := db.Open(dbPath(cfg))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	pipeline := ingest.NewPipeline(store, parents.NewStore(database), cfg, true)
	result, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\nIngestion finished in %s\n", result.Duration.Round(1e7))
	fmt.Printf("  files processed:  %d\n", result.FilesProcessed)
	fmt.Printf("  files skipped:    %d\n", result.FilesSkipped)
	fmt.Printf("  passages indexed: %d\n", result.PassagesIndexed)
	fmt.Printf("  parents stored:   %d\n", result.ParentsStored)

	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stderr, "\n%d error(s):\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "  - %v\n", e)
		}
		return fmt.Errorf("ingestion completed with %d error(s)", len(result.Errors))
	}
	return nil
}
