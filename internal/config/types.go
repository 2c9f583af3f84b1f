package config

// ProviderType identifies a text-generation provider.
type ProviderType string

const (
	ProviderNone   ProviderType = "none"
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// EmbeddingProviderType identifies the embedding backend for the
// semantic search store.
type EmbeddingProviderType string

const (
	EmbeddingLocal  EmbeddingProviderType = "local"
	EmbeddingOpenAI EmbeddingProviderType = "openai"
	EmbeddingOllama EmbeddingProviderType = "ollama"
)

// Config is the top-level sentinel configuration, corresponding to
// .sentinel.yml.
type Config struct {
	ContractsDir       string   `yaml:"contracts_dir" koanf:"contracts_dir"`
	Include            []string `yaml:"include" koanf:"include"`
	Exclude            []string `yaml:"exclude" koanf:"exclude"`
	ReportsDir         string   `yaml:"reports_dir" koanf:"reports_dir"`
	DatabasePath       string   `yaml:"database_path" koanf:"database_path"`
	AlertWindowDays    int      `yaml:"alert_window_days" koanf:"alert_window_days"`
	DuplicateThreshold float64  `yaml:"duplicate_threshold" koanf:"duplicate_threshold"`

	LLM       LLMConfig       `yaml:"llm" koanf:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding" koanf:"embedding"`
	Email     EmailConfig     `yaml:"email" koanf:"email"`
	Server    ServerConfig    `yaml:"server" koanf:"server"`
}

// LLMConfig selects the question-answering backend. Provider "none"
// uses the local heuristic answerer.
type LLMConfig struct {
	Provider  ProviderType `yaml:"provider" koanf:"provider"`
	Model     string       `yaml:"model" koanf:"model"`
	OllamaURL string       `yaml:"ollama_url" koanf:"ollama_url"`
}

// EmbeddingConfig selects the embedding backend for semantic search.
type EmbeddingConfig struct {
	Provider   EmbeddingProviderType `yaml:"provider" koanf:"provider"`
	Model      string                `yaml:"model" koanf:"model"`
	Dimensions int                   `yaml:"dimensions" koanf:"dimensions"`
	OllamaURL  string                `yaml:"ollama_url" koanf:"ollama_url"`
}

// EmailConfig holds SMTP settings for daily report delivery. An empty
// host or recipient disables email.
type EmailConfig struct {
	SMTPHost  string `yaml:"smtp_host" koanf:"smtp_host"`
	SMTPPort  int    `yaml:"smtp_port" koanf:"smtp_port"`
	Username  string `yaml:"username" koanf:"username"`
	Password  string `yaml:"password" koanf:"password"`
	From      string `yaml:"from" koanf:"from"`
	Recipient string `yaml:"recipient" koanf:"recipient"`
}

// ServerConfig holds the HTTP API listener settings.
type ServerConfig struct {
	Host string `yaml:"host" koanf:"host"`
	Port int    `yaml:"port" koanf:"port"`
}
