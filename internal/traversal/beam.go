package traversal

import (
	"context"
	"log/slog"
	"sort"

	"github.com/Aman-CERP/hcr/internal/cascade"
	"github.com/Aman-CERP/hcr/internal/corpus"
	"github.com/Aman-CERP/hcr/internal/tree"
)

// DefaultBeamWidth is the number of partial paths kept per level.
const DefaultBeamWidth = 3

// DefaultDiversityLambda is the penalty applied to a candidate sharing a
// parent with an already-selected beam entry.
const DefaultDiversityLambda = 0.3

// BeamEntry is a single entry in the beam: a node plus its accumulated
// (smoothed) path score.
type BeamEntry struct {
	NodeID    string
	PathScore float64
	Depth     int
}

// BeamResult is the outcome of one beam traversal. BeamPerLevel records the
// beam's node IDs at every level visited, consumed later by the epsilon
// metric.
type BeamResult struct {
	LeafIDs      []string
	LeafScores   []float64
	BeamPerLevel map[int][]string
}

// BeamSearch descends the tree level-by-level, expanding every non-leaf beam
// entry through the scoring cascade and keeping the top beamWidth paths by
// smoothed path relevance, with an MMR-style penalty against paths that
// share a parent.
type BeamSearch struct {
	tr              *tree.Tree
	corp            *corpus.Corpus
	scorer          *cascade.Cascade
	beamWidth       int
	diversityLambda float64
	alpha           float64
}

// NewBeamSearch builds a BeamSearch over an immutable tree and corpus.
// beamWidth <= 0, a negative diversityLambda, or an alpha outside (0,1]
// fall back to the package defaults.
func NewBeamSearch(tr *tree.Tree, corp *corpus.Corpus, scorer *cascade.Cascade, beamWidth int, diversityLambda, alpha float64) *BeamSearch {
	if beamWidth <= 0 {
		beamWidth = DefaultBeamWidth
	}
	if diversityLambda < 0 {
		diversityLambda = DefaultDiversityLambda
	}
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	return &BeamSearch{
		tr:              tr,
		corp:            corp,
		scorer:          scorer,
		beamWidth:       beamWidth,
		diversityLambda: diversityLambda,
		alpha:           alpha,
	}
}

// Traverse runs beam search from the root and returns the surviving leaf
// entries. The beam terminates when every entry is a leaf or no candidates
// are produced.
func (b *BeamSearch) Traverse(ctx context.Context, queryText string, queryVec []float32) (*BeamResult, error) {
	root := b.tr.Root()
	beam := []BeamEntry{{NodeID: root.ID, PathScore: 1.0, Depth: 0}}
	beamPerLevel := map[int][]string{0: {root.ID}}

	for {
		var candidates []BeamEntry
		var leaves []BeamEntry

		for _, entry := range beam {
			node, ok := b.tr.Node(entry.NodeID)
			if !ok {
				continue
			}
			if node.IsLeaf {
				leaves = append(leaves, entry)
				continue
			}

			childScores, err := b.scorer.ScoreChildren(ctx, queryText, queryVec, b.tr, node, b.corp)
			if err != nil {
				return nil, err
			}

			for _, cs := range childScores {
				candidates = append(candidates, BeamEntry{
					NodeID:    cs.ChildID,
					PathScore: PathRelevanceEMA(cs.Score, entry.PathScore, b.alpha),
					Depth:     entry.Depth + 1,
				})
			}
		}

		if len(candidates) == 0 {
			slog.Debug("beam_collapsed", "leaves", len(leaves))
			return beamResultFromEntries(leaves, beamPerLevel), nil
		}

		level := candidates[0].Depth
		beam = b.selectDiverseBeam(append(candidates, leaves...))
		beamPerLevel[level] = entryIDs(beam)

		if b.allLeaves(beam) {
			return beamResultFromEntries(beam, beamPerLevel), nil
		}
	}
}

// selectDiverseBeam greedily picks beamWidth entries: highest score first,
// then repeatedly the entry maximizing score minus the diversity penalty for
// sharing a parent with anything already selected.
func (b *BeamSearch) selectDiverseBeam(candidates []BeamEntry) []BeamEntry {
	if len(candidates) <= b.beamWidth {
		return candidates
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].PathScore > candidates[j].PathScore
	})

	selected := []BeamEntry{candidates[0]}
	remaining := append([]BeamEntry(nil), candidates[1:]...)

	for len(selected) < b.beamWidth && len(remaining) > 0 {
		bestIdx := 0
		bestScore := -1e18

		for i, cand := range remaining {
			penalty := 0.0
			for _, sel := range selected {
				if b.shareBranch(cand.NodeID, sel.NodeID) {
					penalty = b.diversityLambda
					break
				}
			}
			if adjusted := cand.PathScore - penalty; adjusted > bestScore {
				bestScore = adjusted
				bestIdx = i
			}
		}

		selected = append(selected, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return selected
}

// shareBranch reports whether two nodes share a parent.
func (b *BeamSearch) shareBranch(idA, idB string) bool {
	a, okA := b.tr.Node(idA)
	bb, okB := b.tr.Node(idB)
	if !okA || !okB {
		return false
	}
	for _, pa := range a.ParentIDs {
		for _, pb := range bb.ParentIDs {
			if pa == pb {
				return true
			}
		}
	}
	return false
}

func (b *BeamSearch) allLeaves(entries []BeamEntry) bool {
	for _, e := range entries {
		node, ok := b.tr.Node(e.NodeID)
		if !ok || !node.IsLeaf {
			return false
		}
	}
	return true
}

func entryIDs(entries []BeamEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.NodeID
	}
	return ids
}

func beamResultFromEntries(entries []BeamEntry, beamPerLevel map[int][]string) *BeamResult {
	res := &BeamResult{
		LeafIDs:      make([]string, len(entries)),
		LeafScores:   make([]float64, len(entries)),
		BeamPerLevel: beamPerLevel,
	}
	for i, e := range entries {
		res.LeafIDs[i] = e.NodeID
		res.LeafScores[i] = e.PathScore
	}
	return res
}
