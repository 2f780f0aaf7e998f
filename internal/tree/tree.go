package tree

import (
	"github.com/Aman-CERP/hcr/internal/errors"
)

// Node is the uniform tagged-variant tree node: either a leaf referencing a
// single chunk, or a branch carrying a routing summary over its children.
// The leaf/internal distinction is data, not behavior — there is one Go
// type, not a class hierarchy.
type Node struct {
	ID        string
	Level     int
	ParentIDs []string
	ChildIDs  []string
	IsLeaf    bool

	// ChunkID is set (and required) only when IsLeaf.
	ChunkID string

	// Summary is set (and required) only when !IsLeaf. SummaryEmbedding is
	// set only when !IsLeaf; NewBranchNode does not require it.
	Summary          *RoutingSummary
	SummaryEmbedding []float32
}

// NewLeafNode constructs a leaf node. A leaf has no children and exactly one
// chunk.
func NewLeafNode(id string, level int, chunkID string) (*Node, error) {
	if chunkID == "" {
		return nil, errors.New(errors.ErrCodeInvalidSummary, "leaf node requires a chunk id", nil).
			WithDetail("node_id", id)
	}
	return &Node{ID: id, Level: level, IsLeaf: true, ChunkID: chunkID}, nil
}

// NewBranchNode constructs a non-leaf node. A branch must have at least one
// child and a summary.
func NewBranchNode(id string, level int, childIDs []string, summary *RoutingSummary, summaryEmbedding []float32) (*Node, error) {
	if len(childIDs) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyTree, "branch node requires at least one child", nil).
			WithDetail("node_id", id)
	}
	if summary == nil {
		return nil, errors.New(errors.ErrCodeInvalidSummary, "branch node requires a routing summary", nil).
			WithDetail("node_id", id)
	}
	return &Node{
		ID:               id,
		Level:            level,
		ChildIDs:         append([]string(nil), childIDs...),
		IsLeaf:           false,
		Summary:          summary,
		SummaryEmbedding: summaryEmbedding,
	}, nil
}

// Tree is the root identifier plus the arena of nodes, indexed by ID.
// Child/parent references are identifiers, not pointers, which makes deep
// trees cheap. New checks that they resolve; it does not check for cycles.
type Tree struct {
	RootID string
	Nodes  map[string]*Node
	Depth  int
}

// New validates and constructs a Tree: the root must be present, and every
// referenced parent/child identifier must resolve to a node in the arena.
func New(rootID string, nodes map[string]*Node) (*Tree, error) {
	if _, ok := nodes[rootID]; !ok {
		return nil, errors.New(errors.ErrCodeEmptyTree, "root id not found in nodes", nil).
			WithDetail("root_id", rootID)
	}

	maxLevel := 0
	for _, n := range nodes {
		if n.Level > maxLevel {
			maxLevel = n.Level
		}
		for _, pid := range n.ParentIDs {
			if _, ok := nodes[pid]; !ok {
				return nil, errors.New(errors.ErrCodeEmptyTree, "parent id does not resolve", nil).
					WithDetail("node_id", n.ID).WithDetail("parent_id", pid)
			}
		}
		for _, cid := range n.ChildIDs {
			if _, ok := nodes[cid]; !ok {
				return nil, errors.New(errors.ErrCodeEmptyTree, "child id does not resolve", nil).
					WithDetail("node_id", n.ID).WithDetail("child_id", cid)
			}
		}
	}

	return &Tree{RootID: rootID, Nodes: nodes, Depth: maxLevel}, nil
}

// Node looks up a node by ID.
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.Nodes[id]
	return n, ok
}

// Root returns the tree's root node.
func (t *Tree) Root() *Node {
	return t.Nodes[t.RootID]
}

// Children returns the child nodes of node, in ChildIDs order, skipping any
// that don't resolve (should not happen for a tree built by New).
func (t *Tree) Children(node *Node) []*Node {
	children := make([]*Node, 0, len(node.ChildIDs))
	for _, id := range node.ChildIDs {
		if child, ok := t.Nodes[id]; ok {
			children = append(children, child)
		}
	}
	return children
}

// LeafDescendants returns the leaf nodes under node (node itself if it is
// already a leaf), depth-first.
func (t *Tree) LeafDescendants(node *Node) []*Node {
	if node.IsLeaf {
		return []*Node{node}
	}
	var out []*Node
	for _, child := range t.Children(node) {
		out = append(out, t.LeafDescendants(child)...)
	}
	return out
}
