package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nonthaphat/sportsdesk/internal/chat"
	"github.com/nonthaphat/sportsdesk/internal/config"
	"github.com/nonthaphat/sportsdesk/internal/db"
	"github.com/nonthaphat/sportsdesk/internal/embeddings"
	"github.com/nonthaphat/sportsdesk/internal/llm"
	"github.com/nonthaphat/sportsdesk/internal/parents"
	"github.com/nonthaphat/sportsdesk/internal/vectordb"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `sportsdesk init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}
	model := cfg.EmbeddingModel

	switch provider {
	case config.ProviderOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(model)), nil
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(model, 768, ""), nil
	default:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required (used for embeddings when provider is %s)", provider)
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(model)), nil
	}
}

// createLLMProviderFromConfig creates an LLM provider based on config settings.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	return llm.NewProvider(string(cfg.Provider), cfg.Model, cfg.BaseURL)
}

// dbPath returns the SQLite database location under the store directory.
func dbPath(cfg *config.Config) string {
	return filepath.Join(cfg.StoreDir, "sportsdesk.db")
}

// openStores creates the passage store (loading the persisted index if one
// exists) and opens the SQLite database. The caller owns closing the DB.
func openStores(ctx context.Context, cfg *config.Config) (vectordb.PassageStore, *db.DB, error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating embedder: %w", err)
	}

	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return nil, nil, fmt.Errorf("creating vector store: %w", err)
	}

	if err := store.Load(ctx, cfg.StoreDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load index from %s: %v\n", cfg.StoreDir, err)
		fmt.Fprintf(os.Stderr, "Answers will have no grounding. Run `sportsdesk ingest` first.\n")
	}

	if err := os.MkdirAll(cfg.StoreDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating store dir: %w", err)
	}
	database, err := db.Open(dbPath(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	return store, database, nil
}

// loadParents reads all parent documents, degrading to an empty map with a
// warning so the assistant still answers without hierarchy.
func loadParents(ctx context.Context, database *db.DB) map[string]parents.Document {
	docs, err := parents.NewStore(database).LoadAll(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load parent documents: %v\n", err)
		return map[string]parents.Document{}
	}
	return docs
}

// engineOptions assembles chat engine options from config and dependencies.
func engineOptions(cfg *config.Config, provider llm.Provider, store vectordb.PassageStore, parentDocs map[string]parents.Document) chat.Options {
	return chat.Options{
		Provider:         provider,
		Model:            cfg.Model,
		Store:            store,
		Parents:          parentDocs,
		TopK:             cfg.TopK,
		MaxHistoryTokens: cfg.MaxHistoryTokens,
		MaxAnswerTokens:  cfg.MaxAnswerTokens,
		Temperature:      cfg.Temperature,
		Timeout:          time.Duration(cfg.GenerateTimeout) * time.Second,
	}
}
