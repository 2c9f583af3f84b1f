// Package ingest runs the end-to-end indexing pipeline: load documents
// from disk, build the similarity index, and optionally export the
// corpus into the semantic search store.
package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/zeyadtarek/clm-sentinel/internal/corpus"
	"github.com/zeyadtarek/clm-sentinel/internal/extract"
	"github.com/zeyadtarek/clm-sentinel/internal/progress"
	"github.com/zeyadtarek/clm-sentinel/internal/similarity"
	"github.com/zeyadtarek/clm-sentinel/internal/vectordb"
)

// Options configures one pipeline run.
type Options struct {
	Loader   corpus.LoaderConfig
	Store    vectordb.Store // nil skips the semantic store export
	Reporter progress.Reporter
}

// Result summarizes a completed run.
type Result struct {
	Documents int
	Elapsed   time.Duration
}

// Run rebuilds the engine's index wholesale from the configured
// directory. On any error the engine keeps its previous index; there is
// no partially loaded state.
func Run(ctx context.Context, engine *similarity.Engine, opts Options) (Result, error) {
	start := time.Now()

	reporter := opts.Reporter
	if reporter == nil {
		reporter = &progress.SilentReporter{}
	}

	registry, err := corpus.Load(opts.Loader)
	if err != nil {
		return Result{}, fmt.Errorf("loading documents: %w", err)
	}
	docs := registry.All()

	reporter.Start(len(docs))
	engine.Build(docs)

	if opts.Store != nil {
		if err := exportToStore(ctx, opts.Store, docs, reporter); err != nil {
			return Result{}, err
		}
	} else {
		reporter.Update(len(docs), "similarity index built")
	}
	reporter.Finish()

	log.Printf("indexed %d documents from %s", len(docs), opts.Loader.Dir)
	return Result{Documents: len(docs), Elapsed: time.Since(start)}, nil
}

func exportToStore(ctx context.Context, store vectordb.Store, docs []corpus.Document, reporter progress.Reporter) error {
	for i, doc := range docs {
		vdoc := vectordb.Document{
			ID:      doc.ID,
			Content: doc.RawText,
			Metadata: vectordb.ContractMetadata{
				FileName:       doc.FileName(),
				ContractID:     doc.Metadata.String(extract.KeyContractID),
				ContractType:   doc.Metadata.String(extract.KeyContractType),
				Companies:      doc.Metadata.Strings(extract.KeyCompanies),
				ExpirationDate: doc.Metadata.String(extract.KeyExpirationDate),
			},
		}
		if err := store.AddDocuments(ctx, []vectordb.Document{vdoc}); err != nil {
			return fmt.Errorf("exporting %s to search store: %w", doc.FileName(), err)
		}
		reporter.Update(i+1, doc.FileName())
	}
	return nil
}
