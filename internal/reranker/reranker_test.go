package reranker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCrossEncoder struct {
	CrossEncoder
	calls int
}

func (c *countingCrossEncoder) Score(ctx context.Context, query, text string) (float64, error) {
	c.calls++
	return c.CrossEncoder.Score(ctx, query, text)
}

func (c *countingCrossEncoder) ScoreBatch(ctx context.Context, query string, texts []string) ([]float64, error) {
	c.calls += len(texts)
	return c.CrossEncoder.ScoreBatch(ctx, query, texts)
}

func TestLexicalCrossEncoder_ExactMatchScoresHigh(t *testing.T) {
	ce := NewLexicalCrossEncoder()
	score, err := ce.Score(context.Background(), "beam search traversal", "beam search traversal")
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestLexicalCrossEncoder_DisjointScoresZero(t *testing.T) {
	ce := NewLexicalCrossEncoder()
	score, err := ce.Score(context.Background(), "alpha beta", "gamma delta")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestCachedCrossEncoder_Score_CachesByQueryAndChunk(t *testing.T) {
	inner := &countingCrossEncoder{CrossEncoder: NewLexicalCrossEncoder()}
	c := New(inner, 16)
	ctx := context.Background()

	s1, err := c.Score(ctx, "q", "chunk-1", "hierarchical retrieval")
	require.NoError(t, err)
	s2, err := c.Score(ctx, "q", "chunk-1", "hierarchical retrieval")
	require.NoError(t, err)

	assert.Equal(t, s1, s2)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedCrossEncoder_ScoreBatch_SkipsCachedEntries(t *testing.T) {
	inner := &countingCrossEncoder{CrossEncoder: NewLexicalCrossEncoder()}
	c := New(inner, 16)
	ctx := context.Background()

	_, err := c.Score(ctx, "query text", "chunk-a", "warm text")
	require.NoError(t, err)
	inner.calls = 0

	scores, err := c.ScoreBatch(ctx, "query text", []string{"chunk-a", "chunk-b"}, []string{"warm text", "cold text"})
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, 1, inner.calls)
}

func TestCacheKey_DiffersByChunkID(t *testing.T) {
	k1 := CacheKey("same query", "chunk-1")
	k2 := CacheKey("same query", "chunk-2")
	assert.NotEqual(t, k1, k2)
}

func TestCacheKey_DiffersByQuery(t *testing.T) {
	k1 := CacheKey("query one", "chunk-1")
	k2 := CacheKey("query two", "chunk-1")
	assert.NotEqual(t, k1, k2)
}
