package traversal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/hcr/internal/reranker"
)

func newFixtureDualPath(t *testing.T) *DualPath {
	t.Helper()
	tr, corp := buildFixture(t)
	ce := reranker.New(reranker.NewLexicalCrossEncoder(), 0)
	beam := NewBeamSearch(tr, corp, newFixtureCascade(), 0, DefaultDiversityLambda, DefaultAlpha)
	collapsed := NewCollapsed(tr, ce, 0)
	return NewDualPath(beam, collapsed)
}

func TestDualPathRetrieve_KeepsBothSubResults(t *testing.T) {
	dp := newFixtureDualPath(t)

	result, err := dp.Retrieve(context.Background(), "alpha engine tuning", []float32{1, 0, 0, 0})
	require.NoError(t, err)

	require.NotNil(t, result.Beam)
	require.NotNil(t, result.Collapsed)
	assert.NotEmpty(t, result.LeafIDs)
}

func TestDualPathRetrieve_BeamWinsTies(t *testing.T) {
	dp := newFixtureDualPath(t)

	result, err := dp.Retrieve(context.Background(), "alpha engine tuning", []float32{1, 0, 0, 0})
	require.NoError(t, err)

	beamConfidence := 0.0
	for i, s := range result.Beam.LeafScores {
		if i == 0 || s > beamConfidence {
			beamConfidence = s
		}
	}

	if beamConfidence >= result.Collapsed.Confidence {
		assert.Equal(t, StrategyBeam, result.Strategy)
		assert.Equal(t, result.Beam.LeafIDs, result.LeafIDs)
	} else {
		assert.Equal(t, StrategyCollapsed, result.Strategy)
		assert.Equal(t, result.Collapsed.LeafIDs, result.LeafIDs)
	}
}
