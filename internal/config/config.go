// Package config loads, validates, and persists the sentinel
// configuration: a YAML file overlaid with SENTINEL_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SENTINEL_*). Nested keys use
// underscore pairs: SENTINEL_EMAIL_SMTP__HOST -> email.smtp_host.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: SENTINEL_CONTRACTS__DIR ->
	// contracts_dir, SENTINEL_SERVER_PORT -> server.port.
	if err := k.Load(env.Provider("SENTINEL_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "SENTINEL_"))
		key = strings.ReplaceAll(key, "__", "-")
		key = strings.ReplaceAll(key, "_", ".")
		return strings.ReplaceAll(key, "-", "_")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validProviders = map[ProviderType]bool{
	ProviderNone:   true,
	ProviderOpenAI: true,
	ProviderOllama: true,
}

var validEmbeddingProviders = map[EmbeddingProviderType]bool{
	EmbeddingLocal:  true,
	EmbeddingOpenAI: true,
	EmbeddingOllama: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.ContractsDir == "" {
		return fmt.Errorf("contracts_dir is required")
	}
	if c.AlertWindowDays <= 0 {
		return fmt.Errorf("alert_window_days must be positive")
	}
	if c.DuplicateThreshold <= 0 || c.DuplicateThreshold > 1 {
		return fmt.Errorf("duplicate_threshold must be in (0, 1]")
	}
	if c.LLM.Provider != "" && !validProviders[c.LLM.Provider] {
		return fmt.Errorf("invalid llm provider %q: must be one of none, openai, ollama", c.LLM.Provider)
	}
	if c.LLM.Provider == ProviderOpenAI && os.Getenv("OPENAI_API_KEY") == "" {
		return fmt.Errorf("llm provider openai requires OPENAI_API_KEY")
	}
	if c.Embedding.Provider != "" && !validEmbeddingProviders[c.Embedding.Provider] {
		return fmt.Errorf("invalid embedding provider %q: must be one of local, openai, ollama", c.Embedding.Provider)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	return nil
}

// OpenAIKey returns the OpenAI API key from the environment.
func OpenAIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}
