package evalmetrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNDCGAtK_PerfectRankingIsOne(t *testing.T) {
	retrieved := []string{"a", "b", "c"}
	relevant := GoldSet([]string{"a", "b", "c"})
	assert.InDelta(t, 1.0, NDCGAtK(retrieved, relevant, 10), 1e-9)
}

func TestNDCGAtK_RelevantLowerRanksScoreLess(t *testing.T) {
	relevant := GoldSet([]string{"a"})
	top := NDCGAtK([]string{"a", "x", "y"}, relevant, 10)
	buried := NDCGAtK([]string{"x", "y", "a"}, relevant, 10)
	assert.Greater(t, top, buried)
	assert.Greater(t, buried, 0.0)
}

func TestNDCGAtK_EmptyInputsAreZero(t *testing.T) {
	assert.Zero(t, NDCGAtK(nil, GoldSet([]string{"a"}), 10))
	assert.Zero(t, NDCGAtK([]string{"a"}, nil, 10))
}

func TestRecallAtK_CountsFractionOfGoldRetrieved(t *testing.T) {
	relevant := GoldSet([]string{"a", "b", "c", "d"})
	assert.InDelta(t, 0.5, RecallAtK([]string{"a", "b", "x"}, relevant, 10), 1e-9)
}

func TestRecallAtK_RespectsCutoff(t *testing.T) {
	relevant := GoldSet([]string{"a"})
	assert.Zero(t, RecallAtK([]string{"x", "y", "a"}, relevant, 2))
}

func TestPrecisionAtK_CountsFractionOfRetrievedRelevant(t *testing.T) {
	relevant := GoldSet([]string{"a"})
	assert.InDelta(t, 0.5, PrecisionAtK([]string{"a", "x"}, relevant, 2), 1e-9)
}

func TestPrecisionAtK_EmptyRetrievedIsZero(t *testing.T) {
	assert.Zero(t, PrecisionAtK(nil, GoldSet([]string{"a"}), 10))
}

func TestMRR_ReciprocalRankOfFirstHit(t *testing.T) {
	relevant := GoldSet([]string{"b"})
	assert.InDelta(t, 0.5, MRR([]string{"x", "b", "y"}, relevant), 1e-9)
}

func TestMRR_NoHitIsZero(t *testing.T) {
	assert.Zero(t, MRR([]string{"x", "y"}, GoldSet([]string{"a"})))
}
