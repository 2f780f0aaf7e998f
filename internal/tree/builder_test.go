package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/hcr/internal/corpus"
	"github.com/Aman-CERP/hcr/internal/embedder"
	"github.com/Aman-CERP/hcr/internal/llmsummary"
)

func buildTestCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	var chunks []*corpus.Chunk
	embeddings := map[string][]float32{}

	contents := []struct {
		id, text string
		vec      []float32
	}{
		{"c0", "python machine learning tutorial content for testing purposes", []float32{1, 0, 0, 0}},
		{"c1", "java enterprise web framework content for testing purposes too", []float32{0, 1, 0, 0}},
		{"c2", "python data analysis pipeline content nearly identical to c0", []float32{0.9, 0.1, 0, 0}},
		{"c3", "go concurrency primitives content for testing distinctness", []float32{0, 0, 1, 0}},
		{"c4", "rust ownership model content for testing distinctness further", []float32{0, 0, 0, 1}},
	}

	for _, c := range contents {
		chunk, err := corpus.NewChunk(c.id, "doc", c.text, 10, nil)
		require.NoError(t, err)
		chunks = append(chunks, chunk)
		embeddings[c.id] = c.vec
	}

	corp, err := corpus.New(chunks, embeddings)
	require.NoError(t, err)
	return corp
}

func TestBuilder_Build_ProducesValidTree(t *testing.T) {
	corp := buildTestCorpus(t)
	emb := embedder.NewHashEmbedder()
	summarizer := llmsummary.NewSummarizer(llmsummary.NewPatternGenerator())
	builder := NewBuilder(emb, summarizer, 2, 2)

	tr, err := builder.Build(context.Background(), corp)
	require.NoError(t, err)
	require.NotNil(t, tr)

	leafChunkIDs := map[string]bool{}
	for _, n := range tr.Nodes {
		if n.IsLeaf {
			assert.Empty(t, n.ChildIDs)
			assert.NotEmpty(t, n.ChunkID)
			leafChunkIDs[n.ChunkID] = true
		} else {
			assert.NotEmpty(t, n.ChildIDs)
			require.NotNil(t, n.Summary)
			assert.NotEmpty(t, n.Summary.Theme)
			assert.NotNil(t, n.SummaryEmbedding)
		}
	}

	for _, c := range corp.Chunks() {
		assert.True(t, leafChunkIDs[c.ID()], "chunk %s should appear as a leaf", c.ID())
	}

	root := tr.Root()
	assert.Empty(t, root.ParentIDs)
}

func TestBuilder_Build_SingleChunkProducesDegenerateTree(t *testing.T) {
	chunk, err := corpus.NewChunk("only", "doc", "a single chunk of content", 5, nil)
	require.NoError(t, err)
	corp, err := corpus.New([]*corpus.Chunk{chunk}, map[string][]float32{"only": {1, 0}})
	require.NoError(t, err)

	emb := embedder.NewHashEmbedder()
	summarizer := llmsummary.NewSummarizer(llmsummary.NewPatternGenerator())
	builder := NewBuilder(emb, summarizer, 4, 3)

	tr, err := builder.Build(context.Background(), corp)
	require.NoError(t, err)
	assert.True(t, tr.Root().IsLeaf)
	assert.Equal(t, "only", tr.Root().ChunkID)
}
