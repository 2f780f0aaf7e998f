// Package bm25index implements Okapi BM25 sparse retrieval, entirely
// in-memory. There is no durable, reopenable index here by design — the
// engine rebuilds it once per evaluation run from the corpus.
package bm25index

import (
	"math"
	"sort"
	"strings"

	"github.com/Aman-CERP/hcr/internal/corpus"
)

// DefaultK1 is the term-frequency saturation parameter.
const DefaultK1 = 1.2

// DefaultB is the length-normalization parameter.
const DefaultB = 0.75

// Result is a single scored chunk.
type Result struct {
	ChunkID string
	Score   float64
}

// Index is a pure in-memory Okapi BM25 inverted index over a corpus's chunks.
type Index struct {
	k1, b float64

	chunkIDs    []string
	docTermFreq []map[string]int
	docLen      []int
	avgDocLen   float64
	docFreq     map[string]int
	n           int
}

// New builds an index with DefaultK1/DefaultB.
func New(chunks []*corpus.Chunk) *Index {
	return NewWithParams(chunks, DefaultK1, DefaultB)
}

// NewWithParams builds an index with custom BM25 parameters.
func NewWithParams(chunks []*corpus.Chunk, k1, b float64) *Index {
	idx := &Index{
		k1:      k1,
		b:       b,
		docFreq: make(map[string]int),
	}

	var totalLen int
	for _, c := range chunks {
		tokens := tokenize(c.Content())
		freq := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			freq[tok]++
		}

		idx.chunkIDs = append(idx.chunkIDs, c.ID())
		idx.docTermFreq = append(idx.docTermFreq, freq)
		idx.docLen = append(idx.docLen, len(tokens))
		totalLen += len(tokens)

		for tok := range freq {
			idx.docFreq[tok]++
		}
	}

	idx.n = len(chunks)
	if idx.n > 0 {
		idx.avgDocLen = float64(totalLen) / float64(idx.n)
	}

	return idx
}

// tokenize whitespace-splits and lowercases, per the BM25 contract.
func tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// idf uses the Robertson-Sparck Jones weight with a +1 floor, which keeps
// every term's contribution non-negative regardless of corpus statistics.
func (idx *Index) idf(term string) float64 {
	nq := float64(idx.docFreq[term])
	n := float64(idx.n)
	return math.Log((n-nq+0.5)/(nq+0.5) + 1)
}

// Search returns chunks ranked by BM25 score against query, highest first,
// capped at topK. Scores are non-negative; ties keep input order.
func (idx *Index) Search(query string, topK int) []Result {
	if idx.n == 0 {
		return []Result{}
	}

	scores := make([]float64, idx.n)
	for _, term := range tokenize(query) {
		if idx.docFreq[term] == 0 {
			continue
		}
		idf := idx.idf(term)

		for i, freq := range idx.docTermFreq {
			f := float64(freq[term])
			if f == 0 {
				continue
			}
			denom := f + idx.k1*(1-idx.b+idx.b*float64(idx.docLen[i])/idx.avgDocLen)
			scores[i] += idf * (f * (idx.k1 + 1)) / denom
		}
	}

	results := make([]Result, idx.n)
	for i, id := range idx.chunkIDs {
		results[i] = Result{ChunkID: id, Score: scores[i]}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK >= 0 && topK < len(results) {
		results = results[:topK]
	}
	return results
}
