package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/hcr/internal/baseline"
	"github.com/Aman-CERP/hcr/internal/corpus"
	"github.com/Aman-CERP/hcr/internal/evalquery"
)

func runnerCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	mk := func(id, content string) *corpus.Chunk {
		c, err := corpus.NewChunk(id, "doc", content, 10, nil)
		require.NoError(t, err)
		return c
	}
	corp, err := corpus.New([]*corpus.Chunk{
		mk("c1", "alpha engine tuning"),
		mk("c2", "marine biology survey"),
	}, map[string][]float32{
		"c1": {1, 0},
		"c2": {0, 1},
	})
	require.NoError(t, err)
	return corp
}

func mkRunnerQuery(t *testing.T, id, text string, gold []string) *evalquery.Query {
	t.Helper()
	q, err := evalquery.New(id, text, evalquery.CategorySingleBranch, evalquery.DifficultyEasy, true, gold, "answer")
	require.NoError(t, err)
	return q
}

func TestEvaluateBaseline_AggregatesMetrics(t *testing.T) {
	corp := runnerCorpus(t)
	b := baseline.NewBM25(corp)
	r := NewRunner(corp.Len(), 400)

	queries := []*evalquery.Query{
		mkRunnerQuery(t, "q1", "alpha engine", []string{"c1"}),
		mkRunnerQuery(t, "q2", "marine biology", []string{"c2"}),
	}

	result, err := r.EvaluateBaseline(context.Background(), b, queries)
	require.NoError(t, err)

	assert.Equal(t, "bm25", result.SystemName)
	assert.Equal(t, 2, result.QueryCount)
	assert.InDelta(t, 1.0, result.NDCGAt10, 1e-9)
	assert.InDelta(t, 1.0, result.RecallAt10, 1e-9)
	assert.InDelta(t, 1.0, result.MRR, 1e-9)
	assert.Positive(t, result.MeanTokensUsed)
	assert.NotEmpty(t, result.RunID)
}

func TestEvaluateBaseline_EmptyQuerySuite(t *testing.T) {
	corp := runnerCorpus(t)
	r := NewRunner(corp.Len(), 400)

	result, err := r.EvaluateBaseline(context.Background(), baseline.NewBM25(corp), nil)
	require.NoError(t, err)

	assert.Zero(t, result.QueryCount)
	assert.Zero(t, result.NDCGAt10)
}
