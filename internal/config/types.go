package config

// ProviderType identifies an LLM or embedding provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level sportsdesk configuration, corresponding to .sportsdesk.yml.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	BaseURL           string       `yaml:"base_url" koanf:"base_url"`
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`

	DataDir  string `yaml:"data_dir" koanf:"data_dir"`
	StoreDir string `yaml:"store_dir" koanf:"store_dir"`

	TopK             int     `yaml:"top_k" koanf:"top_k"`
	MaxHistoryTokens int     `yaml:"max_history_tokens" koanf:"max_history_tokens"`
	MaxAnswerTokens  int     `yaml:"max_answer_tokens" koanf:"max_answer_tokens"`
	Temperature      float64 `yaml:"temperature" koanf:"temperature"`
	GenerateTimeout  int     `yaml:"generate_timeout_seconds" koanf:"generate_timeout_seconds"`

	ChunkSize    int      `yaml:"chunk_size" koanf:"chunk_size"`
	ChunkOverlap int      `yaml:"chunk_overlap" koanf:"chunk_overlap"`
	Include      []string `yaml:"include" koanf:"include"`
	Exclude      []string `yaml:"exclude" koanf:"exclude"`

	Server ServerConfig `yaml:"server" koanf:"server"`

	// Files maps ingested source files to the sports they cover. Files
	// marked multi-sport get parent/child hierarchy treatment.
	Files map[string]FileMapping `yaml:"files" koanf:"files"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// FileMapping declares the sports a source document covers.
type FileMapping struct {
	Sports     []string `yaml:"sports" koanf:"sports"`
	MultiSport bool     `yaml:"multi_sport" koanf:"multi_sport"`
	Package    string   `yaml:"package" koanf:"package"`
}
