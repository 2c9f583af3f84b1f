// Package vectorizer builds fixed-dimension TF-IDF representations of
// normalized document text. The vocabulary is fit once over the full corpus
// and frozen; every vector produced by one Vectorizer shares the same
// term-to-dimension mapping and is only comparable to vectors from the same
// fit.
package vectorizer

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// MaxFeatures caps the fitted vocabulary size.
const MaxFeatures = 1000

var tokenRe = regexp.MustCompile(`[a-z0-9]+`)

// Vector is a dense TF-IDF vector, L2-normalized at construction.
type Vector []float64

// Vectorizer holds the frozen vocabulary and per-term inverse document
// frequencies of one corpus fit.
type Vectorizer struct {
	vocab   map[string]int // term -> dimension
	terms   []string       // dimension -> term
	idf     []float64      // dimension -> smoothed IDF weight
	numDocs int
}

// Fit builds the vocabulary over all normalized corpus texts: unigrams and
// bigrams, stop words excluded, capped at MaxFeatures terms by corpus
// frequency (ties alphabetical). An empty corpus yields a usable vectorizer
// whose vectors are all empty.
func Fit(texts []string) *Vectorizer {
	totalCount := map[string]int{}
	docFreq := map[string]int{}

	for _, text := range texts {
		counts := termCounts(text)
		for term, n := range counts {
			totalCount[term] += n
			docFreq[term]++
		}
	}

	terms := selectVocabulary(totalCount)

	v := &Vectorizer{
		vocab:   make(map[string]int, len(terms)),
		terms:   terms,
		idf:     make([]float64, len(terms)),
		numDocs: len(texts),
	}
	for i, term := range terms {
		v.vocab[term] = i
		// Smoothed IDF keeps every fitted term finite and positive.
		v.idf[i] = math.Log(float64(1+v.numDocs)/float64(1+docFreq[term])) + 1
	}
	return v
}

// selectVocabulary keeps the MaxFeatures most frequent terms and assigns
// dimensions in alphabetical order, so the mapping is deterministic.
func selectVocabulary(totalCount map[string]int) []string {
	terms := make([]string, 0, len(totalCount))
	for term := range totalCount {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if totalCount[terms[i]] != totalCount[terms[j]] {
			return totalCount[terms[i]] > totalCount[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > MaxFeatures {
		terms = terms[:MaxFeatures]
	}
	sort.Strings(terms)
	return terms
}

// Transform projects normalized text onto the fitted vocabulary. Terms
// outside the vocabulary contribute zero. The result is L2-normalized;
// text with no vocabulary terms yields the zero vector.
func (v *Vectorizer) Transform(text string) Vector {
	vec := make(Vector, len(v.terms))
	for term, n := range termCounts(text) {
		if dim, ok := v.vocab[term]; ok {
			vec[dim] = float64(n) * v.idf[dim]
		}
	}
	vec.normalize()
	return vec
}

// TransformAll vectorizes every text with the fitted vocabulary.
func (v *Vectorizer) TransformAll(texts []string) []Vector {
	vecs := make([]Vector, len(texts))
	for i, text := range texts {
		vecs[i] = v.Transform(text)
	}
	return vecs
}

// Dimensions returns the fitted vocabulary size.
func (v *Vectorizer) Dimensions() int {
	return len(v.terms)
}

// Terms returns the vocabulary in dimension order. The slice is shared.
func (v *Vectorizer) Terms() []string {
	return v.terms
}

// normalize scales the vector to unit L2 length in place. The zero vector
// stays zero.
func (vec Vector) normalize() {
	var sum float64
	for _, x := range vec {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}

// Cosine returns the cosine similarity of two vectors from the same fit.
// Vectors are already unit length, so this is a plain dot product.
func Cosine(a, b Vector) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}

// termCounts tokenizes normalized text and counts unigrams plus bigrams,
// with stop words removed before bigram construction.
func termCounts(text string) map[string]int {
	raw := tokenRe.FindAllString(strings.ToLower(text), -1)

	tokens := raw[:0:0]
	for _, tok := range raw {
		if len(tok) < 2 || stopWords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}

	counts := make(map[string]int, len(tokens)*2)
	for i, tok := range tokens {
		counts[tok]++
		if i+1 < len(tokens) {
			counts[tok+" "+tokens[i+1]]++
		}
	}
	return counts
}
