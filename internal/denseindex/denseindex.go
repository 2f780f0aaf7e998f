// Package denseindex implements exact brute-force inner-product search over
// L2-normalized embeddings. Deliberately not approximate: the engine's
// contract requires exactness, which a graph-based ANN structure cannot
// guarantee for the corpus sizes this harness targets.
package denseindex

import (
	"math"
	"sort"

	"github.com/Aman-CERP/hcr/internal/corpus"
)

// Result is a single scored chunk.
type Result struct {
	ChunkID string
	Score   float32
}

// Index is an exact brute-force inner-product search over a corpus's
// L2-normalized chunk embeddings.
type Index struct {
	chunkIDs   []string
	embeddings [][]float32
}

// New builds a dense index from a corpus. Chunks without an embedding are
// skipped.
func New(c *corpus.Corpus) *Index {
	idx := &Index{}
	for _, chunk := range c.Chunks() {
		vec, ok := c.Embedding(chunk.ID())
		if !ok {
			continue
		}
		idx.chunkIDs = append(idx.chunkIDs, chunk.ID())
		idx.embeddings = append(idx.embeddings, vec)
	}
	return idx
}

// Normalize L2-normalizes v in place and returns it.
func Normalize(v []float32) []float32 {
	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}
	if sumSquares == 0 {
		return v
	}
	norm := float32(math.Sqrt(sumSquares))
	for i := range v {
		v[i] /= norm
	}
	return v
}

func dot(a, b []float32) float32 {
	var sum float32
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// Search returns the top-k chunks by inner product against queryVec,
// descending. queryVec is renormalized on entry. k is capped to the index
// size.
func (idx *Index) Search(queryVec []float32, k int) []Result {
	if len(idx.chunkIDs) == 0 {
		return []Result{}
	}

	q := make([]float32, len(queryVec))
	copy(q, queryVec)
	q = Normalize(q)

	results := make([]Result, len(idx.chunkIDs))
	for i, id := range idx.chunkIDs {
		results[i] = Result{ChunkID: id, Score: dot(q, idx.embeddings[i])}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k >= 0 && k < len(results) {
		results = results[:k]
	}
	return results
}

// Len returns the number of embeddings in the index.
func (idx *Index) Len() int { return len(idx.chunkIDs) }
