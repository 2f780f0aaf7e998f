package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hcrerrors "github.com/Aman-CERP/hcr/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadChunks_ParsesValidCorpus(t *testing.T) {
	path := writeFile(t, "corpus.json", `[
		{"id": "c1", "document_id": "d1", "content": "first chunk", "token_count": 3},
		{"id": "c2", "document_id": "d1", "content": "second chunk", "token_count": 4, "metadata": {"section": "intro"}}
	]`)

	chunks, err := LoadChunks(path)
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.Equal(t, "c1", chunks[0].ID())
	assert.Equal(t, 4, chunks[1].TokenCount())
	assert.Equal(t, "intro", chunks[1].Metadata()["section"])
}

func TestLoadChunks_MissingFileIsIOError(t *testing.T) {
	_, err := LoadChunks(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Equal(t, hcrerrors.ErrCodeCorpusNotFound, hcrerrors.GetCode(err))
}

func TestLoadChunks_InvalidChunkFailsConstruction(t *testing.T) {
	path := writeFile(t, "corpus.json", `[{"id": "c1", "document_id": "d1", "content": "", "token_count": 3}]`)
	_, err := LoadChunks(path)
	require.Error(t, err)
	assert.Equal(t, hcrerrors.ErrCodeInvalidChunk, hcrerrors.GetCode(err))
}

func TestLoadQueries_ParsesValidSuite(t *testing.T) {
	path := writeFile(t, "queries.json", `[
		{"id": "q1", "text": "what is alpha", "category": "single_branch", "difficulty": "easy",
		 "budget_feasible_400": true, "gold_chunk_ids": ["c1"], "gold_answer": "alpha"}
	]`)

	queries, err := LoadQueries(path)
	require.NoError(t, err)

	require.Len(t, queries, 1)
	assert.Equal(t, "q1", queries[0].ID())
	assert.Equal(t, []string{"c1"}, queries[0].GoldChunkIDs())
}

func TestLoadQueries_MissingFileIsIOError(t *testing.T) {
	_, err := LoadQueries(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Equal(t, hcrerrors.ErrCodeQueriesNotFound, hcrerrors.GetCode(err))
}

func TestLoadQueries_EmptyGoldListRejected(t *testing.T) {
	path := writeFile(t, "queries.json", `[
		{"id": "q1", "text": "t", "category": "ood", "difficulty": "hard",
		 "budget_feasible_400": false, "gold_chunk_ids": [], "gold_answer": ""}
	]`)
	_, err := LoadQueries(path)
	require.Error(t, err)
	assert.Equal(t, hcrerrors.ErrCodeEmptyGoldSet, hcrerrors.GetCode(err))
}

func TestWriteResults_RoundTripsThroughDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "results.json")
	require.NoError(t, WriteResults(path, map[string]int{"answer": 42}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"answer\": 42")
}
