package vectordb

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/zeyadtarek/clm-sentinel/internal/embeddings"
)

// MemoryStore implements Store with a plain slice and brute-force cosine
// scan. No persistence; suitable for tests and small corpora.
type MemoryStore struct {
	mu       sync.RWMutex
	embedder embeddings.Embedder
	docs     []Document
	vectors  [][]float32
	byID     map[string]int
}

// NewMemoryStore creates an empty in-memory store backed by the given
// embedder.
func NewMemoryStore(embedder embeddings.Embedder) *MemoryStore {
	return &MemoryStore{embedder: embedder, byID: map[string]int{}}
}

func (s *MemoryStore) AddDocuments(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}
	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding documents: %w", err)
	}
	if len(vectors) != len(docs) {
		return fmt.Errorf("embedder returned %d vectors for %d documents", len(vectors), len(docs))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, doc := range docs {
		if idx, ok := s.byID[doc.ID]; ok {
			s.docs[idx] = doc
			s.vectors[idx] = vectors[i]
			continue
		}
		s.byID[doc.ID] = len(s.docs)
		s.docs = append(s.docs, doc)
		s.vectors = append(s.vectors, vectors[i])
	}
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, query string, limit int, filter *Filter) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	queryVectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(queryVectors) == 0 {
		return nil, nil
	}
	qv := queryVectors[0]

	where := filterToWhere(filter)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []Result
	for i, doc := range s.docs {
		if !matchesWhere(doc.Metadata, where) {
			continue
		}
		results = append(results, Result{
			Document:   doc,
			Similarity: cosine32(qv, s.vectors[i]),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func matchesWhere(m ContractMetadata, where map[string]string) bool {
	flat := metadataToMap(m)
	for key, want := range where {
		if flat[key] != want {
			return false
		}
	}
	return true
}

func cosine32(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
