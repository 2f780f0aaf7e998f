package llmsummary

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	responses []string
	calls     int
	err       error
}

func (s *stubGenerator) Complete(_ context.Context, _, _ string, _ int) (string, error) {
	if s.err != nil {
		s.calls++
		return "", s.err
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

func TestSummarize_ParsesFencedJSON(t *testing.T) {
	gen := &stubGenerator{responses: []string{
		"Here is the summary:\n```json\n{\"theme\": \"beam search\", \"includes\": [\"traversal\"], \"excludes\": [\"packer\"]}\n```",
	}}
	s := NewSummarizer(gen)

	result := s.Summarize(context.Background(), "beam search traversal content", nil)
	require.NotNil(t, result)
	assert.Equal(t, "beam search", result.Theme)
	assert.Equal(t, []string{"traversal"}, result.Includes)
	assert.False(t, result.Fallback)
	assert.Equal(t, 1, gen.calls)
}

func TestSummarize_ParsesBracedJSONWithoutFence(t *testing.T) {
	gen := &stubGenerator{responses: []string{
		`some preamble {"theme": "clustering", "includes": ["kmeans"]} trailing notes`,
	}}
	s := NewSummarizer(gen)

	result := s.Summarize(context.Background(), "clustering content", nil)
	require.NotNil(t, result)
	assert.Equal(t, "clustering", result.Theme)
}

func TestSummarize_RetriesOnParseFailureThenSucceeds(t *testing.T) {
	gen := &stubGenerator{responses: []string{
		"not json at all",
		"still not json",
		`{"theme": "recovered", "includes": []}`,
	}}
	s := NewSummarizer(gen)

	result := s.Summarize(context.Background(), "content", nil)
	require.NotNil(t, result)
	assert.Equal(t, "recovered", result.Theme)
	assert.Equal(t, 3, gen.calls)
}

func TestSummarize_FallsBackAfterMaxAttempts(t *testing.T) {
	gen := &stubGenerator{responses: []string{"junk", "junk", "junk"}}
	s := NewSummarizer(gen)

	result := s.Summarize(context.Background(), "python machine learning retrieval engine", nil)
	require.NotNil(t, result)
	assert.True(t, result.Fallback)
	assert.Equal(t, "(auto-fallback: unparseable cluster)", result.Theme)
	assert.NotEmpty(t, result.Includes)
	assert.Equal(t, MaxAttempts, gen.calls)
}

func TestSummarize_GeneratorErrorTriggersRetryThenFallback(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream unavailable")}
	s := NewSummarizer(gen)

	result := s.Summarize(context.Background(), "some cluster content here", nil)
	require.NotNil(t, result)
	assert.True(t, result.Fallback)
}

func TestDistinctLongWords_DedupesAndCaps(t *testing.T) {
	words := distinctLongWords("alpha alpha beta beta gamma delta epsilon zeta eta theta", 4, 3)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, words)
}

func TestPatternGenerator_AlwaysProducesParseableSummary(t *testing.T) {
	gen := NewPatternGenerator()
	s := NewSummarizer(gen)

	result := s.Summarize(context.Background(), "hierarchical clustering over chunk embeddings", nil)
	require.NotNil(t, result)
	assert.False(t, result.Fallback)
	assert.NotEmpty(t, result.Theme)
}
