package baseline

import (
	"context"

	"github.com/Aman-CERP/hcr/internal/bm25index"
	"github.com/Aman-CERP/hcr/internal/corpus"
)

// BM25 is sparse keyword retrieval plus greedy token packing.
type BM25 struct {
	corp *corpus.Corpus
	idx  *bm25index.Index
}

// NewBM25 builds the baseline over a fresh BM25 index.
func NewBM25(corp *corpus.Corpus) *BM25 {
	return &BM25{corp: corp, idx: bm25index.New(corp.Chunks())}
}

// Name implements Baseline.
func (b *BM25) Name() string { return "bm25" }

// Rank implements Baseline.
func (b *BM25) Rank(_ context.Context, queryText string, topK int) ([]RankedChunk, error) {
	results := b.idx.Search(queryText, topK)
	ranked := make([]RankedChunk, len(results))
	for i, r := range results {
		ranked[i] = RankedChunk{ChunkID: r.ChunkID, Score: r.Score}
	}
	return ranked, nil
}

// Retrieve implements Baseline.
func (b *BM25) Retrieve(ctx context.Context, queryText string, budget int) ([]*corpus.Chunk, error) {
	ranked, err := b.Rank(ctx, queryText, DefaultRankTopK)
	if err != nil {
		return nil, err
	}
	return packRanked(b.corp, ranked, budget), nil
}
