package similarity

import (
	"encoding/json"
	"io"
	"math"
	"time"

	"github.com/zeyadtarek/clm-sentinel/internal/vectorizer"
)

// Stats aggregates similarity over all unordered document pairs, self-pairs
// excluded. Band boundaries: high > 0.8, medium in (0.5, 0.8], low <= 0.5.
type Stats struct {
	TotalDocuments int     `json:"total_documents"`
	Mean           float64 `json:"average_similarity"`
	Max            float64 `json:"max_similarity"`
	Min            float64 `json:"min_similarity"`
	StdDev         float64 `json:"std_similarity"`
	HighCount      int     `json:"high_similarity_count"`
	MediumCount    int     `json:"medium_similarity_count"`
	LowCount       int     `json:"low_similarity_count"`
}

// PairwiseStats computes corpus-wide similarity statistics. A corpus with
// fewer than two documents has no pairs: every aggregate is zero.
func (e *Engine) PairwiseStats() Stats {
	s := e.snapshot()
	if s == nil {
		return Stats{}
	}

	stats := Stats{TotalDocuments: len(s.docs)}

	var scores []float64
	for i := 0; i < len(s.vectors); i++ {
		for j := i + 1; j < len(s.vectors); j++ {
			scores = append(scores, vectorizer.Cosine(s.vectors[i], s.vectors[j]))
		}
	}
	if len(scores) == 0 {
		return stats
	}

	stats.Min = math.Inf(1)
	stats.Max = math.Inf(-1)
	var sum float64
	for _, score := range scores {
		sum += score
		stats.Min = math.Min(stats.Min, score)
		stats.Max = math.Max(stats.Max, score)
		switch {
		case score > 0.8:
			stats.HighCount++
		case score > 0.5:
			stats.MediumCount++
		default:
			stats.LowCount++
		}
	}
	stats.Mean = sum / float64(len(scores))

	var variance float64
	for _, score := range scores {
		d := score - stats.Mean
		variance += d * d
	}
	stats.StdDev = math.Sqrt(variance / float64(len(scores)))

	return stats
}

// matrixExport is the on-disk shape of an exported similarity matrix.
type matrixExport struct {
	DocumentNames    []string    `json:"document_names"`
	SimilarityMatrix [][]float64 `json:"similarity_matrix"`
	ExportDate       string      `json:"export_date"`
}

// ExportMatrix writes the full pairwise similarity matrix as indented JSON.
func (e *Engine) ExportMatrix(w io.Writer) error {
	s := e.snapshot()

	export := matrixExport{ExportDate: time.Now().Format(time.RFC3339)}
	if s != nil {
		export.DocumentNames = make([]string, len(s.docs))
		export.SimilarityMatrix = make([][]float64, len(s.docs))
		for i, d := range s.docs {
			export.DocumentNames[i] = d.FileName()
			row := make([]float64, len(s.docs))
			for j := range s.docs {
				row[j] = vectorizer.Cosine(s.vectors[i], s.vectors[j])
			}
			export.SimilarityMatrix[i] = row
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(export)
}
