package config

// DefaultExcludes are glob patterns skipped during ingestion by default.
var DefaultExcludes = []string{
	".git/**",
	"*.tmp",
	"*.bak",
	"~$*",
}

// DefaultFiles is the stock file-to-sport mapping for the package catalog.
// Single-sport package documents carry their own sport; the bundle packages
// (PLAY SPORTS, PLAY ULTIMATE) span all five and are flagged multi-sport so
// ingestion builds parent/child hierarchy for them.
var DefaultFiles = map[string]FileMapping{
	"final_EPL_clean.md":    {Sports: []string{"EPL"}, Package: "MONOMAX"},
	"final_GOLF1_clean.md":  {Sports: []string{"GOLF"}, Package: "GOLF1"},
	"final_GOLF2_clean.md":  {Sports: []string{"GOLF"}, Package: "GOLF2"},
	"final_NBA_clean.md":    {Sports: []string{"NBA"}, Package: "NBA"},
	"final_NFL_clean.md":    {Sports: []string{"NFL"}, Package: "NFL"},
	"final_TENNIS_clean.md": {Sports: []string{"TENNIS"}, Package: "TENNIS"},
	"final_PLAY_SPORTS_clean.md": {
		Sports:     []string{"EPL", "GOLF", "NBA", "NFL", "TENNIS"},
		MultiSport: true,
		Package:    "PLAY SPORTS",
	},
	"final_PLAY_ULTIMATE_clean.md": {
		Sports:     []string{"EPL", "GOLF", "NBA", "NFL", "TENNIS"},
		MultiSport: true,
		Package:    "PLAY ULTIMATE",
	},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenAI,
		Model:             "gpt-4o",
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		DataDir:           "data/processed",
		StoreDir:          "data/store",
		TopK:              5,
		MaxHistoryTokens:  1000,
		MaxAnswerTokens:   3000,
		Temperature:       0.3,
		GenerateTimeout:   60,
		ChunkSize:         3000,
		ChunkOverlap:      800,
		Include:           []string{"*.md"},
		Exclude:           DefaultExcludes,
		Server: ServerConfig{
			Port: 8460,
		},
		Files: DefaultFiles,
	}
}
