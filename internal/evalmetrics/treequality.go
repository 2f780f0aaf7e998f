package evalmetrics

import (
	"github.com/Aman-CERP/hcr/internal/denseindex"
	"github.com/Aman-CERP/hcr/internal/tree"
)

// SiblingDistinctivenessKill is the defined kill threshold: a tree whose
// mean sibling cosine distance falls below it is too homogeneous for routing
// to work.
const SiblingDistinctivenessKill = 0.15

// SiblingDistinctiveness computes the mean pairwise cosine distance among
// sibling summary embeddings, across every internal node with at least two
// children that carry one. Returns 0 when no such pair exists.
func SiblingDistinctiveness(tr *tree.Tree) float64 {
	var total float64
	var pairs int

	for _, node := range tr.Nodes {
		if node.IsLeaf || len(node.ChildIDs) < 2 {
			continue
		}

		var childEmbs [][]float32
		for _, childID := range node.ChildIDs {
			child, ok := tr.Node(childID)
			if !ok || child.SummaryEmbedding == nil {
				continue
			}
			childEmbs = append(childEmbs, denseindex.Normalize(append([]float32(nil), child.SummaryEmbedding...)))
		}
		if len(childEmbs) < 2 {
			continue
		}

		for i := 0; i < len(childEmbs); i++ {
			for j := i + 1; j < len(childEmbs); j++ {
				total += 1.0 - dot(childEmbs[i], childEmbs[j])
				pairs++
			}
		}
	}

	if pairs == 0 {
		return 0
	}
	return total / float64(pairs)
}

func dot(a, b []float32) float64 {
	var sum float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
