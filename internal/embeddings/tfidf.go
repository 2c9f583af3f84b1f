package embeddings

import (
	"context"
	"fmt"

	"github.com/zeyadtarek/clm-sentinel/internal/normalize"
	"github.com/zeyadtarek/clm-sentinel/internal/vectorizer"
)

// VectorizerSource supplies the current fitted vectorizer. The
// similarity engine implements this; resolving per call keeps the
// embedder valid across index rebuilds.
type VectorizerSource interface {
	Vectorizer() *vectorizer.Vectorizer
}

// TermWeight embeds text by projecting it onto a fitted term-weight
// vocabulary. Fully local and deterministic; the default when no
// embedding service is configured. Vectors are only comparable to others
// produced by the same fitted vectorizer.
type TermWeight struct {
	source VectorizerSource
}

type fixedSource struct {
	vec *vectorizer.Vectorizer
}

func (s fixedSource) Vectorizer() *vectorizer.Vectorizer { return s.vec }

// NewTermWeight wraps a single fitted vectorizer.
func NewTermWeight(vec *vectorizer.Vectorizer) *TermWeight {
	return &TermWeight{source: fixedSource{vec: vec}}
}

// NewTermWeightFromSource tracks a source whose vectorizer may be
// refitted over time, such as the similarity engine.
func NewTermWeightFromSource(source VectorizerSource) *TermWeight {
	return &TermWeight{source: source}
}

func (e *TermWeight) Name() string {
	return "term-weight-local"
}

func (e *TermWeight) Dimensions() int {
	if vec := e.source.Vectorizer(); vec != nil {
		return vec.Dimensions()
	}
	return 0
}

func (e *TermWeight) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vec := e.source.Vectorizer()
	if vec == nil || vec.Dimensions() == 0 {
		return nil, fmt.Errorf("term-weight embedder has an empty vocabulary")
	}

	results := make([][]float32, 0, len(texts))
	for _, text := range texts {
		v := vec.Transform(normalize.Text(text))
		out := make([]float32, len(v))
		for i, x := range v {
			out[i] = float32(x)
		}
		results = append(results, out)
	}
	return results, nil
}
