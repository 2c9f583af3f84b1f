package config

// DefaultConfigFile is the conventional config file name.
const DefaultConfigFile = ".sentinel.yml"

// DefaultExcludes are glob patterns excluded from document loading by
// default.
var DefaultExcludes = []string{
	".git/**",
	"archive/**",
	"*.tmp",
	"*~",
}

// DefaultConfig returns a Config with sensible defaults: local
// embeddings, no LLM, no email.
func DefaultConfig() *Config {
	return &Config{
		ContractsDir:       "contracts",
		Include:            []string{"**"},
		Exclude:            DefaultExcludes,
		ReportsDir:         "reports",
		DatabasePath:       "sentinel.db",
		AlertWindowDays:    30,
		DuplicateThreshold: 0.9,
		LLM: LLMConfig{
			Provider:  ProviderNone,
			Model:     "gpt-4o-mini",
			OllamaURL: "http://localhost:11434",
		},
		Embedding: EmbeddingConfig{
			Provider:   EmbeddingLocal,
			Model:      "text-embedding-3-small",
			Dimensions: 768,
			OllamaURL:  "http://localhost:11434",
		},
		Email: EmailConfig{
			SMTPPort: 587,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8600,
		},
	}
}
