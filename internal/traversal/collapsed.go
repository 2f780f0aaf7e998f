package traversal

import (
	"context"
	"sort"

	"github.com/Aman-CERP/hcr/internal/denseindex"
	"github.com/Aman-CERP/hcr/internal/reranker"
	"github.com/Aman-CERP/hcr/internal/tree"
)

// DefaultCollapsedTopK is the number of summary nodes handed to the
// cross-encoder rerank.
const DefaultCollapsedTopK = 10

// CollapsedResult is the outcome of one flat retrieval. Confidence is the
// top cross-encoder score, 0 when nothing matched.
type CollapsedResult struct {
	LeafIDs    []string
	LeafScores []float64
	Confidence float64
}

// Collapsed is the flat search path over all summary nodes, bypassing tree
// structure. It guards against beam collapse: when routing fails, a direct
// cosine sweep over every summary still finds the right subtree.
type Collapsed struct {
	tr   *tree.Tree
	ce   *reranker.CachedCrossEncoder
	topK int
}

// NewCollapsed builds the flat retrieval path. topK <= 0 uses
// DefaultCollapsedTopK.
func NewCollapsed(tr *tree.Tree, ce *reranker.CachedCrossEncoder, topK int) *Collapsed {
	if topK <= 0 {
		topK = DefaultCollapsedTopK
	}
	return &Collapsed{tr: tr, ce: ce, topK: topK}
}

type scoredNode struct {
	id    string
	score float64
}

// Retrieve scores every node carrying a summary embedding by cosine against
// queryVec, cross-encoder reranks the top topK, and expands the winners to
// their leaf descendants. A leaf reachable via multiple summary nodes keeps
// the highest-ranked ancestor's score (first occurrence wins).
func (c *Collapsed) Retrieve(ctx context.Context, queryText string, queryVec []float32) (*CollapsedResult, error) {
	var scored []scoredNode
	for _, id := range c.summaryNodeIDs() {
		node, _ := c.tr.Node(id)
		emb := denseindex.Normalize(append([]float32(nil), node.SummaryEmbedding...))
		scored = append(scored, scoredNode{id: id, score: float64(dot32(queryVec, emb))})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if c.topK < len(scored) {
		scored = scored[:c.topK]
	}

	if len(scored) == 0 {
		return &CollapsedResult{LeafIDs: []string{}, LeafScores: []float64{}, Confidence: 0}, nil
	}

	ids := make([]string, len(scored))
	texts := make([]string, len(scored))
	for i, sn := range scored {
		node, _ := c.tr.Node(sn.id)
		ids[i] = sn.id
		texts[i] = node.Summary.CascadeText(false)
	}

	ceScores, err := c.ce.ScoreBatch(ctx, queryText, ids, texts)
	if err != nil {
		return nil, err
	}

	reranked := make([]scoredNode, len(ids))
	for i, id := range ids {
		reranked[i] = scoredNode{id: id, score: ceScores[i]}
	}
	sort.SliceStable(reranked, func(i, j int) bool { return reranked[i].score > reranked[j].score })

	res := &CollapsedResult{Confidence: reranked[0].score}
	seen := make(map[string]struct{})
	for _, rn := range reranked {
		node, _ := c.tr.Node(rn.id)
		for _, leaf := range c.tr.LeafDescendants(node) {
			if _, dup := seen[leaf.ID]; dup {
				continue
			}
			seen[leaf.ID] = struct{}{}
			res.LeafIDs = append(res.LeafIDs, leaf.ID)
			res.LeafScores = append(res.LeafScores, rn.score)
		}
	}

	return res, nil
}

// summaryNodeIDs returns the IDs of every node with a summary embedding, in
// a deterministic order.
func (c *Collapsed) summaryNodeIDs() []string {
	var ids []string
	for id, node := range c.tr.Nodes {
		if node.SummaryEmbedding != nil {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func dot32(a, b []float32) float32 {
	var sum float32
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
