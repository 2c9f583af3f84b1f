// Package similarity computes pairwise document similarity over a TF-IDF
// index: nearest-neighbour queries, free-text search, duplicate discovery,
// clustering, and corpus-wide statistics.
package similarity

import (
	"sort"
	"strings"
	"sync"

	"github.com/zeyadtarek/clm-sentinel/internal/corpus"
	"github.com/zeyadtarek/clm-sentinel/internal/extract"
	"github.com/zeyadtarek/clm-sentinel/internal/vectorizer"
)

// Default thresholds. Free-text queries are expected to match weakly, so
// their default floor is far more permissive.
const (
	DefaultMinScore           = 0.3
	DefaultTextMinScore       = 0.1
	DefaultDuplicateThreshold = 0.9
)

const previewLen = 200

// Match pairs a document with its similarity score against the query.
type Match struct {
	DocumentID   string   `json:"document_id"`
	FileName     string   `json:"file_name"`
	ContractType string   `json:"contract_type,omitempty"`
	Companies    []string `json:"companies,omitempty"`
	Score        float64  `json:"similarity_score"`
	Preview      string   `json:"content_preview,omitempty"`
}

// indexState is one immutable fit of the corpus. Build creates a fresh
// state and swaps it in atomically, so readers holding the previous state
// are never interleaved with a rebuild.
type indexState struct {
	vec     *vectorizer.Vectorizer
	docs    []corpus.Document
	vectors []vectorizer.Vector
	byID    map[string]int
}

// Engine is the similarity engine. Safe for concurrent readers; Build is
// the only write operation.
type Engine struct {
	mu    sync.RWMutex
	state *indexState
}

// NewEngine returns an engine with no index built. Every query on an
// unbuilt engine returns empty results.
func NewEngine() *Engine {
	return &Engine{}
}

// Build fits the vocabulary over the given documents and vectorizes each
// one. The previous index stays active until the new one is complete; an
// empty document set produces a valid empty index.
func (e *Engine) Build(docs []corpus.Document) {
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.NormalizedText
	}

	vec := vectorizer.Fit(texts)
	state := &indexState{
		vec:     vec,
		docs:    docs,
		vectors: vec.TransformAll(texts),
		byID:    make(map[string]int, len(docs)),
	}
	for i, d := range docs {
		state.byID[d.ID] = i
	}

	e.mu.Lock()
	e.state = state
	e.mu.Unlock()
}

// Vectorizer returns the fitted vectorizer of the active index, or nil
// when no index is built. Vectors it produces are only comparable until
// the next Build.
func (e *Engine) Vectorizer() *vectorizer.Vectorizer {
	if s := e.snapshot(); s != nil {
		return s.vec
	}
	return nil
}

// Built reports whether an index is active.
func (e *Engine) Built() bool {
	return e.snapshot() != nil
}

// Size returns the number of indexed documents.
func (e *Engine) Size() int {
	if s := e.snapshot(); s != nil {
		return len(s.docs)
	}
	return 0
}

// Documents returns the indexed documents in corpus order.
func (e *Engine) Documents() []corpus.Document {
	if s := e.snapshot(); s != nil {
		return s.docs
	}
	return nil
}

// Document returns an indexed document by ID.
func (e *Engine) Document(id string) (corpus.Document, bool) {
	s := e.snapshot()
	if s == nil {
		return corpus.Document{}, false
	}
	i, ok := s.byID[id]
	if !ok {
		return corpus.Document{}, false
	}
	return s.docs[i], true
}

func (e *Engine) snapshot() *indexState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// SimilarTo returns up to k documents similar to the given document,
// excluding the document itself, with score >= minScore, ordered by score
// descending and ties broken by corpus order. An unknown ID yields an
// empty result.
func (e *Engine) SimilarTo(docID string, k int, minScore float64) []Match {
	s := e.snapshot()
	if s == nil {
		return nil
	}
	q, ok := s.byID[docID]
	if !ok {
		return nil
	}
	return s.rank(s.vectors[q], k, minScore, q)
}

// SimilarToText vectorizes arbitrary query text against the fitted
// vocabulary and ranks all documents against it.
func (e *Engine) SimilarToText(query string, k int, minScore float64) []Match {
	s := e.snapshot()
	if s == nil {
		return nil
	}
	return s.rank(s.vec.Transform(query), k, minScore, -1)
}

// rank scores every document against the query vector, filters by minScore,
// and returns the top k. skip excludes the query document itself.
func (s *indexState) rank(query vectorizer.Vector, k int, minScore float64, skip int) []Match {
	var matches []Match
	for i := range s.docs {
		if i == skip {
			continue
		}
		score := vectorizer.Cosine(query, s.vectors[i])
		if score >= minScore {
			matches = append(matches, s.match(i, score))
		}
	}

	// Stable sort keeps corpus order for equal scores.
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})

	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

func (s *indexState) match(i int, score float64) Match {
	d := s.docs[i]
	preview := d.NormalizedText
	if len(preview) > previewLen {
		preview = preview[:previewLen] + "..."
	}
	return Match{
		DocumentID:   d.ID,
		FileName:     d.FileName(),
		ContractType: d.Metadata.String(extract.KeyContractType),
		Companies:    d.Metadata.Strings(extract.KeyCompanies),
		Score:        score,
		Preview:      preview,
	}
}

// DuplicateGroups partitions documents into near-duplicate groups: a single
// greedy pass over the upper similarity triangle in corpus order. Each
// document lands in at most one group and singletons are omitted.
func (e *Engine) DuplicateGroups(threshold float64) [][]Match {
	s := e.snapshot()
	if s == nil {
		return nil
	}

	var groups [][]Match
	claimed := make([]bool, len(s.docs))

	for i := range s.docs {
		if claimed[i] {
			continue
		}
		var members []Match
		for j := i + 1; j < len(s.docs); j++ {
			if claimed[j] {
				continue
			}
			score := vectorizer.Cosine(s.vectors[i], s.vectors[j])
			if score >= threshold {
				members = append(members, s.match(j, score))
				claimed[j] = true
			}
		}
		claimed[i] = true
		if len(members) > 0 {
			group := append([]Match{s.match(i, 1.0)}, members...)
			groups = append(groups, group)
		}
	}
	return groups
}

// Version describes one document in a contract version comparison.
type Version struct {
	DocumentID   string             `json:"document_id"`
	FileName     string             `json:"file_name"`
	Similarities map[string]float64 `json:"similarities"`
}

// Versions compares all documents whose file name contains base
// (case-insensitive), pairwise. Fewer than two matching documents yield
// an empty result. Output is sorted by file name.
func (e *Engine) Versions(base string) []Version {
	s := e.snapshot()
	if s == nil || base == "" {
		return nil
	}

	needle := strings.ToLower(base)
	var idx []int
	for i, d := range s.docs {
		if strings.Contains(strings.ToLower(d.FileName()), needle) {
			idx = append(idx, i)
		}
	}
	if len(idx) < 2 {
		return nil
	}

	versions := make([]Version, 0, len(idx))
	for _, i := range idx {
		v := Version{
			DocumentID:   s.docs[i].ID,
			FileName:     s.docs[i].FileName(),
			Similarities: make(map[string]float64, len(idx)-1),
		}
		for _, j := range idx {
			if i == j {
				continue
			}
			v.Similarities[s.docs[j].FileName()] = vectorizer.Cosine(s.vectors[i], s.vectors[j])
		}
		versions = append(versions, v)
	}

	sort.Slice(versions, func(a, b int) bool {
		return versions[a].FileName < versions[b].FileName
	})
	return versions
}
