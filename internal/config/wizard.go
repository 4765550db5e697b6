package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .sportsdesk.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to sportsdesk! Let's configure your assistant.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"openai", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)
	cfg.EmbeddingProvider = cfg.Provider

	// 2. Chat model.
	modelPrompt := promptui.Prompt{
		Label:   "Chat model",
		Default: defaultModelFor(cfg.Provider),
	}
	model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	cfg.Model = model

	// 3. Optional OpenAI-compatible gateway.
	if cfg.Provider == ProviderOpenAI {
		baseURLPrompt := promptui.Prompt{
			Label:   "API base URL (leave blank for api.openai.com)",
			Default: "",
		}
		baseURL, err := baseURLPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("base url: %w", err)
		}
		cfg.BaseURL = strings.TrimSpace(baseURL)
	}

	// 4. Data directory with the package documents.
	dataPrompt := promptui.Prompt{
		Label:   "Directory with package documents",
		Default: cfg.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	// 5. Store directory for the index and databases.
	storePrompt := promptui.Prompt{
		Label:   "Directory for the search index",
		Default: cfg.StoreDir,
	}
	storeDir, err := storePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("store dir: %w", err)
	}
	cfg.StoreDir = storeDir

	// Check for API key.
	if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" {
		if os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment before running sportsdesk ingest.\n", envVar)
		}
	}

	configPath := ".sportsdesk.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}

// defaultModelFor suggests a chat model per provider.
func defaultModelFor(p ProviderType) string {
	if p == ProviderOllama {
		return "llama3.1"
	}
	return "gpt-4o"
}
