package tree

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSerializableTree(t *testing.T) *Tree {
	t.Helper()

	leafA, err := NewLeafNode("leaf-a", 1, "c-a")
	require.NoError(t, err)
	leafA.ParentIDs = []string{"root"}
	leafB, err := NewLeafNode("leaf-b", 1, "c-b")
	require.NoError(t, err)
	leafB.ParentIDs = []string{"root"}

	summary, err := NewRoutingSummary("test theme", []string{"a", "b"}, []string{"c"}, []string{"Entity"}, []string{"term"}, "snippet text")
	require.NoError(t, err)

	root, err := NewBranchNode("root", 0, []string{"leaf-a", "leaf-b"}, summary, []float32{0.6, 0.8})
	require.NoError(t, err)

	tr, err := New("root", map[string]*Node{"root": root, "leaf-a": leafA, "leaf-b": leafB})
	require.NoError(t, err)
	return tr
}

func TestTreeJSONRoundTrip(t *testing.T) {
	tr := buildSerializableTree(t)

	data, err := json.Marshal(tr)
	require.NoError(t, err)

	restored := &Tree{}
	require.NoError(t, json.Unmarshal(data, restored))

	assert.Equal(t, tr.RootID, restored.RootID)
	assert.Equal(t, tr.Depth, restored.Depth)
	require.Len(t, restored.Nodes, len(tr.Nodes))

	restoredRoot := restored.Root()
	assert.Equal(t, []string{"leaf-a", "leaf-b"}, restoredRoot.ChildIDs)
	assert.Equal(t, "test theme", restoredRoot.Summary.Theme)
	assert.Equal(t, []float32{0.6, 0.8}, restoredRoot.SummaryEmbedding)

	leaf, ok := restored.Node("leaf-a")
	require.True(t, ok)
	assert.True(t, leaf.IsLeaf)
	assert.Equal(t, "c-a", leaf.ChunkID)
	assert.Equal(t, []string{"root"}, leaf.ParentIDs)
}

func TestTreeSaveLoadRoundTrip(t *testing.T) {
	tr := buildSerializableTree(t)
	path := filepath.Join(t.TempDir(), "tree.json")

	require.NoError(t, tr.Save(path))
	restored, err := LoadTree(path)
	require.NoError(t, err)

	assert.Equal(t, tr.RootID, restored.RootID)
	assert.Len(t, restored.Nodes, len(tr.Nodes))
}

func TestUnmarshal_RejectsMissingRoot(t *testing.T) {
	doc := []byte(`{"root_id": "missing", "nodes": {}, "depth": 0}`)
	restored := &Tree{}
	assert.Error(t, json.Unmarshal(doc, restored))
}
