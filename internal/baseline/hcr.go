package baseline

import (
	"context"
	"sort"

	"github.com/Aman-CERP/hcr/internal/corpus"
	"github.com/Aman-CERP/hcr/internal/embedder"
	"github.com/Aman-CERP/hcr/internal/traversal"
	"github.com/Aman-CERP/hcr/internal/tree"
)

// HCR is the system under test: dual-path traversal over the summary tree,
// mapped back to chunk identifiers and packed like every other baseline. It
// retains each query's beam-per-level record for epsilon measurement.
type HCR struct {
	corp     *corpus.Corpus
	tr       *tree.Tree
	dualPath *traversal.DualPath
	emb      embedder.Embedder

	lastBeamPerLevel map[int][]string
	beamResults      map[string]map[int][]string
}

// NewHCR builds the HCR baseline over an already-built tree and dual-path
// traverser.
func NewHCR(corp *corpus.Corpus, tr *tree.Tree, dualPath *traversal.DualPath, emb embedder.Embedder) *HCR {
	return &HCR{
		corp:        corp,
		tr:          tr,
		dualPath:    dualPath,
		emb:         emb,
		beamResults: make(map[string]map[int][]string),
	}
}

// Name implements Baseline.
func (h *HCR) Name() string { return "hcr" }

// Rank implements Baseline. Surviving leaf nodes are resolved to chunk IDs,
// deduplicated first-occurrence-wins, and capped at topK.
func (h *HCR) Rank(ctx context.Context, queryText string, topK int) ([]RankedChunk, error) {
	queryVec, err := h.emb.Embed(ctx, queryText)
	if err != nil {
		return nil, err
	}

	result, err := h.dualPath.Retrieve(ctx, queryText, queryVec)
	if err != nil {
		return nil, err
	}
	h.lastBeamPerLevel = result.Beam.BeamPerLevel

	seen := make(map[string]struct{})
	var ranked []RankedChunk
	for i, leafID := range result.LeafIDs {
		node, ok := h.tr.Node(leafID)
		if !ok || !node.IsLeaf {
			continue
		}
		if _, dup := seen[node.ChunkID]; dup {
			continue
		}
		seen[node.ChunkID] = struct{}{}
		ranked = append(ranked, RankedChunk{ChunkID: node.ChunkID, Score: result.LeafScores[i]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	if topK >= 0 && topK < len(ranked) {
		ranked = ranked[:topK]
	}
	return ranked, nil
}

// Retrieve implements Baseline.
func (h *HCR) Retrieve(ctx context.Context, queryText string, budget int) ([]*corpus.Chunk, error) {
	ranked, err := h.Rank(ctx, queryText, DefaultRankTopK)
	if err != nil {
		return nil, err
	}
	return packRanked(h.corp, ranked, budget), nil
}

// StoreBeamResult files the most recent traversal's beam-per-level record
// under queryID for epsilon computation.
func (h *HCR) StoreBeamResult(queryID string) {
	if h.lastBeamPerLevel != nil {
		h.beamResults[queryID] = h.lastBeamPerLevel
	}
}

// BeamResults returns the stored beam-per-level records, keyed by query ID.
func (h *HCR) BeamResults() map[string]map[int][]string {
	return h.beamResults
}
