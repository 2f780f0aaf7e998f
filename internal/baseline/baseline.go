// Package baseline implements the four retrieval systems the benchmark
// compares: BM25, hybrid RRF, flat cross-encoder (the kill baseline), and
// HCR dual-path. All four expose the same rank/retrieve contract so the
// runner treats them uniformly.
package baseline

import (
	"context"

	"github.com/Aman-CERP/hcr/internal/corpus"
	"github.com/Aman-CERP/hcr/internal/packer"
)

// DefaultRankTopK caps every baseline's full ranking.
const DefaultRankTopK = 50

// RankedChunk is one entry of a baseline's full ranking.
type RankedChunk struct {
	ChunkID string
	Score   float64
}

// Baseline is the shared contract: a full ranking for IR metrics, and a
// token-packed retrieval for budget metrics.
type Baseline interface {
	// Name identifies the system in reports.
	Name() string

	// Rank returns up to topK (chunkID, score) pairs, highest first.
	Rank(ctx context.Context, queryText string, topK int) ([]RankedChunk, error)

	// Retrieve ranks and then greedily packs chunks under budget.
	Retrieve(ctx context.Context, queryText string, budget int) ([]*corpus.Chunk, error)
}

// packRanked resolves a ranking to chunks and runs the greedy packer.
func packRanked(corp *corpus.Corpus, ranked []RankedChunk, budget int) []*corpus.Chunk {
	chunks := make([]*corpus.Chunk, 0, len(ranked))
	scores := make([]float64, 0, len(ranked))
	for _, r := range ranked {
		chunk, ok := corp.Chunk(r.ChunkID)
		if !ok {
			continue
		}
		chunks = append(chunks, chunk)
		scores = append(scores, r.Score)
	}
	return packer.Pack(chunks, scores, budget, 0, nil)
}
