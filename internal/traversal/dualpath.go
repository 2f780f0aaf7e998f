package traversal

import (
	"context"
	"log/slog"
)

// Strategy names the path whose result the arbiter kept.
type Strategy string

const (
	// StrategyBeam marks a result produced by beam search.
	StrategyBeam Strategy = "beam"
	// StrategyCollapsed marks a result produced by collapsed retrieval.
	StrategyCollapsed Strategy = "collapsed"
)

// DualPathResult is the arbitrated outcome. Both sub-results are retained
// for diagnostics regardless of which strategy won.
type DualPathResult struct {
	LeafIDs    []string
	LeafScores []float64
	Strategy   Strategy
	Beam       *BeamResult
	Collapsed  *CollapsedResult
}

// DualPath runs beam search and collapsed retrieval on every query and
// returns whichever reports the higher top-result confidence.
//
// The two confidences live on different scales: the beam side is a smoothed
// path score, the collapsed side a raw cross-encoder score. The comparison
// is a deliberate heuristic carried over from the measurement design; do not
// read it as a calibrated probability.
type DualPath struct {
	beam      *BeamSearch
	collapsed *Collapsed
}

// NewDualPath builds the arbiter over the two traversal paths.
func NewDualPath(beam *BeamSearch, collapsed *Collapsed) *DualPath {
	return &DualPath{beam: beam, collapsed: collapsed}
}

// Retrieve runs both paths and keeps the higher-confidence result. Beam wins
// ties.
func (d *DualPath) Retrieve(ctx context.Context, queryText string, queryVec []float32) (*DualPathResult, error) {
	beamResult, err := d.beam.Traverse(ctx, queryText, queryVec)
	if err != nil {
		return nil, err
	}
	collapsedResult, err := d.collapsed.Retrieve(ctx, queryText, queryVec)
	if err != nil {
		return nil, err
	}

	beamConfidence := 0.0
	for i, s := range beamResult.LeafScores {
		if i == 0 || s > beamConfidence {
			beamConfidence = s
		}
	}

	slog.Debug("dual_path_arbitrated",
		"beam_confidence", beamConfidence,
		"collapsed_confidence", collapsedResult.Confidence)

	if beamConfidence >= collapsedResult.Confidence {
		return &DualPathResult{
			LeafIDs:    beamResult.LeafIDs,
			LeafScores: beamResult.LeafScores,
			Strategy:   StrategyBeam,
			Beam:       beamResult,
			Collapsed:  collapsedResult,
		}, nil
	}

	return &DualPathResult{
		LeafIDs:    collapsedResult.LeafIDs,
		LeafScores: collapsedResult.LeafScores,
		Strategy:   StrategyCollapsed,
		Beam:       beamResult,
		Collapsed:  collapsedResult,
	}, nil
}
