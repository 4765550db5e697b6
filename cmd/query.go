package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nonthaphat/sportsdesk/internal/catalog"
	"github.com/nonthaphat/sportsdesk/internal/vectordb"
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Semantically search the package index",
	Long:  `Searches the semantic index with a natural language query and prints the matching passages, without any conversational processing.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().Int("limit", 5, "maximum number of results")
	queryCmd.Flags().String("sport", "", "filter by sport: EPL, NBA, NFL, TENNIS, GOLF")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	queryText := args[0]

	limit, _ := cmd.Flags().GetInt("limit")
	sportFilter, _ := cmd.Flags().GetString("sport")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var lock catalog.Sport
	if sportFilter != "" {
		parsed, ok := catalog.Parse(sportFilter)
		if !ok {
			return fmt.Errorf("unknown sport %q", sportFilter)
		}
		lock = parsed
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return fmt.Errorf("creating vector store: %w", err)
	}
	if err := store.Load(ctx, cfg.StoreDir); err != nil {
		return fmt.Errorf("loading index from %s: %w\nRun `sportsdesk ingest` first to build the index", cfg.StoreDir, err)
	}

	if store.Count() == 0 {
		fmt.Println("Index is empty. Run `sportsdesk ingest` first.")
		return nil
	}

	results, err := store.Search(ctx, queryText, limit*3)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	var filtered []vectordb.SearchResult
	for _, r := range results {
		if !lock.Matches(r.Passage.Metadata.Sports) {
			continue
		}
		filtered = append(filtered, r)
		if len(filtered) >= limit {
			break
		}
	}

	if len(filtered) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	if jsonOutput {
		return printQueryResultsJSON(filtered)
	}
	printQueryResultsTable(filtered)
	return nil
}

type queryResultJSON struct {
	Rank       int     `json:"rank"`
	Similarity float64 `json:"similarity"`
	Package    string  `json:"package"`
	Sports     string  `json:"sports"`
	SourceFile string  `json:"source_file"`
	Content    string  `json:"content"`
}

func printQueryResultsJSON(results []vectordb.SearchResult) error {
	var out []queryResultJSON
	for i, r := range results {
		out = append(out, queryResultJSON{
			Rank:       i + 1,
			Similarity: float64(r.Similarity),
			Package:    r.Passage.Metadata.Package,
			Sports:     catalog.JoinTags(r.Passage.Metadata.Sports),
			SourceFile: r.Passage.Metadata.SourceFile,
			Content:    truncate(r.Passage.Content, 200),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printQueryResultsTable(results []vectordb.SearchResult) {
	fmt.Printf("Found %d results:\n\n", len(results))
	for i, r := range results {
		md := r.Passage.Metadata
		fmt.Printf("  %d. [%.1f%%] %s (%s)\n", i+1, r.Similarity*100, md.Package, catalog.JoinTags(md.Sports))
		fmt.Printf("     Source: %s\n", md.SourceFile)
		fmt.Printf("     %s\n\n", truncate(r.Passage.Content, 120))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
