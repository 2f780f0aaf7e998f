package baseline

import (
	"context"

	"github.com/Aman-CERP/hcr/internal/corpus"
	"github.com/Aman-CERP/hcr/internal/embedder"
	"github.com/Aman-CERP/hcr/internal/hybridindex"
)

// Hybrid is BM25+dense reciprocal-rank fusion plus greedy token packing.
type Hybrid struct {
	corp *corpus.Corpus
	idx  *hybridindex.Index
	emb  embedder.Embedder
}

// NewHybrid builds the baseline over an existing hybrid index.
func NewHybrid(corp *corpus.Corpus, idx *hybridindex.Index, emb embedder.Embedder) *Hybrid {
	return &Hybrid{corp: corp, idx: idx, emb: emb}
}

// Name implements Baseline.
func (h *Hybrid) Name() string { return "hybrid-rrf" }

// Rank implements Baseline.
func (h *Hybrid) Rank(ctx context.Context, queryText string, topK int) ([]RankedChunk, error) {
	queryVec, err := h.emb.Embed(ctx, queryText)
	if err != nil {
		return nil, err
	}
	results, err := h.idx.Search(ctx, queryText, queryVec, topK)
	if err != nil {
		return nil, err
	}
	ranked := make([]RankedChunk, len(results))
	for i, r := range results {
		ranked[i] = RankedChunk{ChunkID: r.ChunkID, Score: r.Score}
	}
	return ranked, nil
}

// Retrieve implements Baseline.
func (h *Hybrid) Retrieve(ctx context.Context, queryText string, budget int) ([]*corpus.Chunk, error) {
	ranked, err := h.Rank(ctx, queryText, DefaultRankTopK)
	if err != nil {
		return nil, err
	}
	return packRanked(h.corp, ranked, budget), nil
}
