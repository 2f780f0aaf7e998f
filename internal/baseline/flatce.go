package baseline

import (
	"context"
	"sort"

	"github.com/Aman-CERP/hcr/internal/corpus"
	"github.com/Aman-CERP/hcr/internal/embedder"
	"github.com/Aman-CERP/hcr/internal/hybridindex"
	"github.com/Aman-CERP/hcr/internal/reranker"
)

// DefaultFlatCEPreFilterK is the hybrid pre-filter width ahead of the
// cross-encoder pass.
const DefaultFlatCEPreFilterK = 50

// FlatCE is the kill baseline: hybrid pre-filter, cross-encoder rerank over
// full chunk content, greedy packing. If HCR cannot beat this on nDCG@10 the
// experiment is a negative result.
type FlatCE struct {
	corp       *corpus.Corpus
	idx        *hybridindex.Index
	emb        embedder.Embedder
	ce         *reranker.CachedCrossEncoder
	preFilterK int
}

// NewFlatCE builds the kill baseline. It shares ce (and therefore its score
// cache) with the HCR cascade intentionally. preFilterK <= 0 uses
// DefaultFlatCEPreFilterK.
func NewFlatCE(corp *corpus.Corpus, idx *hybridindex.Index, emb embedder.Embedder, ce *reranker.CachedCrossEncoder, preFilterK int) *FlatCE {
	if preFilterK <= 0 {
		preFilterK = DefaultFlatCEPreFilterK
	}
	return &FlatCE{corp: corp, idx: idx, emb: emb, ce: ce, preFilterK: preFilterK}
}

// Name implements Baseline.
func (f *FlatCE) Name() string { return "flat-ce" }

// Rank implements Baseline.
func (f *FlatCE) Rank(ctx context.Context, queryText string, topK int) ([]RankedChunk, error) {
	queryVec, err := f.emb.Embed(ctx, queryText)
	if err != nil {
		return nil, err
	}
	candidates, err := f.idx.Search(ctx, queryText, queryVec, f.preFilterK)
	if err != nil {
		return nil, err
	}

	chunkIDs := make([]string, 0, len(candidates))
	texts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		chunk, ok := f.corp.Chunk(c.ChunkID)
		if !ok {
			continue
		}
		chunkIDs = append(chunkIDs, c.ChunkID)
		texts = append(texts, chunk.Content())
	}

	scores, err := f.ce.ScoreBatch(ctx, queryText, chunkIDs, texts)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedChunk, len(chunkIDs))
	for i, id := range chunkIDs {
		ranked[i] = RankedChunk{ChunkID: id, Score: scores[i]}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	if topK >= 0 && topK < len(ranked) {
		ranked = ranked[:topK]
	}
	return ranked, nil
}

// Retrieve implements Baseline.
func (f *FlatCE) Retrieve(ctx context.Context, queryText string, budget int) ([]*corpus.Chunk, error) {
	ranked, err := f.Rank(ctx, queryText, DefaultRankTopK)
	if err != nil {
		return nil, err
	}
	return packRanked(f.corp, ranked, budget), nil
}
