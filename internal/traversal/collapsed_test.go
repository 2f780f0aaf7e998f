package traversal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/hcr/internal/reranker"
	"github.com/Aman-CERP/hcr/internal/tree"
)

func TestRetrieve_ExpandsTopSummaryNodesToLeaves(t *testing.T) {
	tr, _ := buildFixture(t)
	ce := reranker.New(reranker.NewLexicalCrossEncoder(), 0)
	collapsed := NewCollapsed(tr, ce, 0)

	result, err := collapsed.Retrieve(context.Background(), "alpha engine systems", []float32{1, 0, 0, 0})
	require.NoError(t, err)

	// branch-a's surface mentions the query terms; its leaves come first.
	require.NotEmpty(t, result.LeafIDs)
	assert.Equal(t, "leaf-a1", result.LeafIDs[0])
	assert.Equal(t, "leaf-a2", result.LeafIDs[1])
	assert.Len(t, result.LeafScores, len(result.LeafIDs))
	assert.Greater(t, result.Confidence, 0.0)
}

func TestRetrieve_FirstOccurrenceKeepsHighestRankedAncestorScore(t *testing.T) {
	tr, _ := buildFixture(t)
	ce := reranker.New(reranker.NewLexicalCrossEncoder(), 0)
	collapsed := NewCollapsed(tr, ce, 0)

	result, err := collapsed.Retrieve(context.Background(), "alpha engine systems", []float32{1, 0, 0, 0})
	require.NoError(t, err)

	// Every leaf is reachable via the root too; each appears exactly once.
	seen := map[string]int{}
	for _, id := range result.LeafIDs {
		seen[id]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "leaf %s duplicated", id)
	}

	// leaf-a1's score is branch-a's cross-encoder score, not the root's.
	scoreByLeaf := map[string]float64{}
	for i, id := range result.LeafIDs {
		scoreByLeaf[id] = result.LeafScores[i]
	}
	assert.GreaterOrEqual(t, scoreByLeaf["leaf-a1"], scoreByLeaf["leaf-b1"])
}

func TestRetrieve_EmptyTreeOfSummariesReturnsZeroConfidence(t *testing.T) {
	leaf, err := tree.NewLeafNode("only", 0, "c-1")
	require.NoError(t, err)
	tr, err := tree.New("only", map[string]*tree.Node{"only": leaf})
	require.NoError(t, err)

	ce := reranker.New(reranker.NewLexicalCrossEncoder(), 0)
	collapsed := NewCollapsed(tr, ce, 0)

	result, err := collapsed.Retrieve(context.Background(), "anything", []float32{1, 0})
	require.NoError(t, err)

	assert.Empty(t, result.LeafIDs)
	assert.Zero(t, result.Confidence)
}

func TestRetrieve_ConfidenceIsTopCrossEncoderScore(t *testing.T) {
	tr, _ := buildFixture(t)
	ce := reranker.New(reranker.NewLexicalCrossEncoder(), 0)
	collapsed := NewCollapsed(tr, ce, 0)

	result, err := collapsed.Retrieve(context.Background(), "alpha engine systems", []float32{1, 0, 0, 0})
	require.NoError(t, err)

	require.NotEmpty(t, result.LeafScores)
	assert.InDelta(t, result.Confidence, result.LeafScores[0], 1e-9)
}
