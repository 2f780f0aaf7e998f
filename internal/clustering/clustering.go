package clustering

import (
	"math/rand"
	"sort"
)

// Node is one level of the cluster hierarchy: either a leaf holding the
// chunk IDs directly, or an internal node holding sub-clusters.
type Node struct {
	ChunkIDs []string
	Children []*Node
}

// IsLeafCluster reports whether this node has no children.
func (n *Node) IsLeafCluster() bool { return len(n.Children) == 0 }

// Build performs top-down k-way clustering. At each level it splits into
// min(branching, N) clusters via k-means and recurses into each non-empty
// cluster with maxDepth-1. Singleton inputs, zero max depth, and N <=
// branching terminate without splitting. A level producing only one
// non-empty cluster is collapsed.
func Build(chunkIDs []string, embeddings [][]float32, branching, maxDepth int) *Node {
	root := &Node{ChunkIDs: append([]string(nil), chunkIDs...)}

	if len(chunkIDs) <= 1 || maxDepth == 0 || len(chunkIDs) <= branching {
		return root
	}

	k := branching
	if k > len(chunkIDs) {
		k = len(chunkIDs)
	}

	rng := rand.New(rand.NewSource(Seed))
	labels := kmeans(embeddings, k, rng)

	groups := make(map[int][]int)
	for i, lab := range labels {
		groups[lab] = append(groups[lab], i)
	}

	labelsSorted := make([]int, 0, len(groups))
	for lab := range groups {
		labelsSorted = append(labelsSorted, lab)
	}
	sort.Ints(labelsSorted)

	for _, lab := range labelsSorted {
		idxs := groups[lab]
		if len(idxs) == 0 {
			continue
		}
		childIDs := make([]string, len(idxs))
		childEmb := make([][]float32, len(idxs))
		for j, idx := range idxs {
			childIDs[j] = chunkIDs[idx]
			childEmb[j] = embeddings[idx]
		}
		root.Children = append(root.Children, Build(childIDs, childEmb, branching, maxDepth-1))
	}

	if len(root.Children) <= 1 {
		root.Children = nil
	}

	return root
}

// CollectLeaves returns the chunk IDs of every leaf cluster under node, in
// depth-first order.
func CollectLeaves(node *Node) [][]string {
	if node.IsLeafCluster() {
		return [][]string{node.ChunkIDs}
	}
	var out [][]string
	for _, child := range node.Children {
		out = append(out, CollectLeaves(child)...)
	}
	return out
}
