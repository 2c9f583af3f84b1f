// Package llm abstracts the text-generation backends used for
// natural-language answers over the contract corpus. The engine itself
// never depends on a provider being configured.
package llm

import (
	"context"
	"fmt"
)

// Request is a single-turn generation request: a system instruction and
// a user prompt carrying the question plus retrieved context.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Response is the generated answer with token accounting.
type Response struct {
	Content      string
	Model        string
	InputTokens  int
	OutputTokens int
}

// Provider generates text from a request.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	Name() string
}

// New selects a provider by type. Supported: "openai", "ollama".
func New(providerType, model, apiKey, baseURL string) (Provider, error) {
	switch providerType {
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return NewOpenAI(apiKey, model), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return NewOllama(baseURL, model), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", providerType)
	}
}
