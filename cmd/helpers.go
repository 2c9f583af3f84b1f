package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/zeyadtarek/clm-sentinel/internal/config"
	"github.com/zeyadtarek/clm-sentinel/internal/corpus"
	"github.com/zeyadtarek/clm-sentinel/internal/embeddings"
	"github.com/zeyadtarek/clm-sentinel/internal/ingest"
	"github.com/zeyadtarek/clm-sentinel/internal/llm"
	"github.com/zeyadtarek/clm-sentinel/internal/notify"
	"github.com/zeyadtarek/clm-sentinel/internal/progress"
	"github.com/zeyadtarek/clm-sentinel/internal/similarity"
	"github.com/zeyadtarek/clm-sentinel/internal/vectordb"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `sentinel init` to create a config file", err)
	}
	return cfg, nil
}

func loaderConfig(cfg *config.Config) corpus.LoaderConfig {
	return corpus.LoaderConfig{
		Dir:     cfg.ContractsDir,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	}
}

// vectorDir is where the chromem store persists, next to the sqlite
// database.
func vectorDir(cfg *config.Config) string {
	return filepath.Join(filepath.Dir(cfg.DatabasePath), "vectordb")
}

// newEmbedder selects the embedding backend configured under
// `embedding.provider`. The local backend reuses the engine's fitted
// term weights and needs no network.
func newEmbedder(cfg *config.Config, engine *similarity.Engine) (embeddings.Embedder, error) {
	switch cfg.Embedding.Provider {
	case config.EmbeddingOpenAI:
		key := config.OpenAIKey()
		if key == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(key, cfg.Embedding.Model), nil
	case config.EmbeddingOllama:
		return embeddings.NewOllamaEmbedder(cfg.Embedding.OllamaURL, cfg.Embedding.Model, cfg.Embedding.Dimensions), nil
	default:
		return embeddings.NewTermWeightFromSource(engine), nil
	}
}

// newStore builds the semantic search store. Local embeddings get the
// in-memory store, since their vectors are tied to the current index
// fit; remote embedders get the persistent chromem store.
func newStore(cfg *config.Config, engine *similarity.Engine) (vectordb.Store, error) {
	embedder, err := newEmbedder(cfg, engine)
	if err != nil {
		return nil, err
	}
	if cfg.Embedding.Provider == config.EmbeddingOpenAI || cfg.Embedding.Provider == config.EmbeddingOllama {
		return vectordb.NewChromemStore(embedder)
	}
	return vectordb.NewMemoryStore(embedder), nil
}

// newLLM returns the configured generation provider, or nil for
// provider "none" so the QA pipeline answers from extracted fields alone.
func newLLM(cfg *config.Config) (llm.Provider, error) {
	switch cfg.LLM.Provider {
	case config.ProviderNone, "":
		return nil, nil
	default:
		return llm.New(string(cfg.LLM.Provider), cfg.LLM.Model, config.OpenAIKey(), cfg.LLM.OllamaURL)
	}
}

func newMailer(cfg *config.Config) *notify.Mailer {
	return notify.NewMailer(notify.Config{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.Username,
		Password:  cfg.Email.Password,
		From:      cfg.Email.From,
		Recipient: cfg.Email.Recipient,
	})
}

// buildIndex loads the contract corpus and fits the similarity index,
// exporting into store when one is given.
func buildIndex(ctx context.Context, cfg *config.Config, engine *similarity.Engine, store vectordb.Store, quiet bool) (ingest.Result, error) {
	return ingest.Run(ctx, engine, ingest.Options{
		Loader:   loaderConfig(cfg),
		Store:    store,
		Reporter: progress.NewReporter(quiet),
	})
}

// loadEngine indexes the corpus without a search store, for commands
// that only need similarity analysis. Progress is shown only with
// --verbose so command output stays clean.
func loadEngine(ctx context.Context, cfg *config.Config) (*similarity.Engine, error) {
	engine := similarity.NewEngine()
	if _, err := buildIndex(ctx, cfg, engine, nil, !verbose); err != nil {
		return nil, err
	}
	return engine, nil
}

// newIndexedStore wires engine and store together and runs a full
// indexing pass, so both reflect the current corpus.
func newIndexedStore(ctx context.Context, cfg *config.Config, quiet bool) (*similarity.Engine, vectordb.Store, error) {
	engine := similarity.NewEngine()
	store, err := newStore(cfg, engine)
	if err != nil {
		return nil, nil, fmt.Errorf("creating vector store: %w", err)
	}
	if _, err := buildIndex(ctx, cfg, engine, store, quiet); err != nil {
		return nil, nil, err
	}
	return engine, store, nil
}
