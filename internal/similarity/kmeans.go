package similarity

import (
	"math"
	"math/rand"

	"github.com/zeyadtarek/clm-sentinel/internal/vectorizer"
)

// clusterSeed fixes the reseeding source so Cluster is reproducible.
const clusterSeed = 42

const maxKMeansIterations = 100

// Cluster partitions all indexed documents into min(k, corpus size) groups
// using spherical k-means. Initial centroids are the evenly spaced documents
// in corpus order; assignment ties go to the lowest cluster index; empty
// clusters are reseeded from a fixed-seed source. The same corpus always
// produces the same clustering.
func (e *Engine) Cluster(k int) map[int][]string {
	s := e.snapshot()
	if s == nil || len(s.docs) == 0 || k <= 0 {
		return map[int][]string{}
	}

	if k > len(s.docs) {
		k = len(s.docs)
	}

	rng := rand.New(rand.NewSource(clusterSeed))

	// Evenly spaced initial centroids over corpus order.
	centroids := make([]vectorizer.Vector, k)
	for c := 0; c < k; c++ {
		centroids[c] = cloneVector(s.vectors[c*len(s.docs)/k])
	}

	assignment := make([]int, len(s.docs))
	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false
		for i, vec := range s.vectors {
			best := nearestCentroid(vec, centroids)
			if assignment[i] != best {
				assignment[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}
		recomputeCentroids(centroids, s.vectors, assignment, rng)
	}

	clusters := make(map[int][]string, k)
	for c := 0; c < k; c++ {
		clusters[c] = []string{}
	}
	for i, c := range assignment {
		clusters[c] = append(clusters[c], s.docs[i].ID)
	}
	return clusters
}

// nearestCentroid returns the index of the most similar centroid, lowest
// index winning ties.
func nearestCentroid(vec vectorizer.Vector, centroids []vectorizer.Vector) int {
	best, bestScore := 0, math.Inf(-1)
	for c, centroid := range centroids {
		if score := vectorizer.Cosine(vec, centroid); score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

// recomputeCentroids replaces each centroid with the normalized mean of its
// members. A cluster that lost all members is reseeded with a random
// document vector from the fixed-seed source.
func recomputeCentroids(centroids []vectorizer.Vector, vectors []vectorizer.Vector, assignment []int, rng *rand.Rand) {
	dims := len(vectors[0])
	counts := make([]int, len(centroids))
	for c := range centroids {
		centroids[c] = make(vectorizer.Vector, dims)
	}
	for i, c := range assignment {
		counts[c]++
		for d, x := range vectors[i] {
			centroids[c][d] += x
		}
	}
	for c := range centroids {
		if counts[c] == 0 {
			centroids[c] = cloneVector(vectors[rng.Intn(len(vectors))])
			continue
		}
		normalizeInPlace(centroids[c])
	}
}

func normalizeInPlace(vec vectorizer.Vector) {
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

func cloneVector(vec vectorizer.Vector) vectorizer.Vector {
	out := make(vectorizer.Vector, len(vec))
	copy(out, vec)
	return out
}
