// Package cascade implements the per-level scoring cascade: a cheap dense
// pre-filter over a node's children, followed by an expensive cross-encoder
// rerank gated to leaves only.
package cascade

import (
	"context"
	"sort"

	"github.com/Aman-CERP/hcr/internal/corpus"
	"github.com/Aman-CERP/hcr/internal/denseindex"
	"github.com/Aman-CERP/hcr/internal/reranker"
	"github.com/Aman-CERP/hcr/internal/tree"
)

// DefaultPreFilterK is the stage-1 candidate cutoff.
const DefaultPreFilterK = 3

// DefaultFinalK is the stage-2 (or stage-1, when stage 2 is skipped) output
// cutoff.
const DefaultFinalK = 2

// Result is a single scored child.
type Result struct {
	ChildID string
	Score   float64
}

// Cascade scores a tree node's children against a query.
type Cascade struct {
	ce         *reranker.CachedCrossEncoder
	preFilterK int
	finalK     int
}

// New builds a Cascade. preFilterK/finalK <= 0 use the package defaults.
func New(ce *reranker.CachedCrossEncoder, preFilterK, finalK int) *Cascade {
	if preFilterK <= 0 {
		preFilterK = DefaultPreFilterK
	}
	if finalK <= 0 {
		finalK = DefaultFinalK
	}
	return &Cascade{ce: ce, preFilterK: preFilterK, finalK: finalK}
}

type candidate struct {
	id      string
	chunkID string
	isLeaf  bool
	score   float64
}

// ScoreChildren runs the two-stage cascade over parent's children and
// returns up to finalK (childID, score) pairs, highest first.
func (c *Cascade) ScoreChildren(ctx context.Context, queryText string, queryVec []float32, tr *tree.Tree, parent *tree.Node, corp *corpus.Corpus) ([]Result, error) {
	children := tr.Children(parent)
	if len(children) == 0 {
		return nil, nil
	}

	qv := denseindex.Normalize(append([]float32(nil), queryVec...))

	cands := make([]candidate, 0, len(children))
	for _, child := range children {
		vec, ok := summaryOrChunkEmbedding(child, corp)
		score := 0.0
		if ok {
			score = float64(dot(qv, denseindex.Normalize(append([]float32(nil), vec...))))
		}
		cands = append(cands, candidate{id: child.ID, chunkID: child.ChunkID, isLeaf: child.IsLeaf, score: score})
	}

	sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })
	if c.preFilterK < len(cands) {
		cands = cands[:c.preFilterK]
	}

	if !allLeaves(cands) {
		return topK(cands, c.finalK), nil
	}

	return c.rerank(ctx, queryText, cands, corp)
}

func summaryOrChunkEmbedding(node *tree.Node, corp *corpus.Corpus) ([]float32, bool) {
	if node.SummaryEmbedding != nil {
		return node.SummaryEmbedding, true
	}
	if node.IsLeaf {
		return corp.Embedding(node.ChunkID)
	}
	return nil, false
}

func allLeaves(cands []candidate) bool {
	for _, c := range cands {
		if !c.isLeaf {
			return false
		}
	}
	return true
}

func topK(cands []candidate, k int) []Result {
	if k > len(cands) {
		k = len(cands)
	}
	out := make([]Result, k)
	for i := 0; i < k; i++ {
		out[i] = Result{ChildID: cands[i].id, Score: cands[i].score}
	}
	return out
}

// rerank applies stage-2 cross-encoder scoring over each candidate's leaf
// chunk content.
func (c *Cascade) rerank(ctx context.Context, queryText string, cands []candidate, corp *corpus.Corpus) ([]Result, error) {
	chunkIDs := make([]string, len(cands))
	texts := make([]string, len(cands))
	for i, cd := range cands {
		chunkIDs[i] = cd.chunkID
		if chunk, ok := corp.Chunk(cd.chunkID); ok {
			texts[i] = chunk.Content()
		}
	}

	scores, err := c.ce.ScoreBatch(ctx, queryText, chunkIDs, texts)
	if err != nil {
		return nil, err
	}

	rescored := make([]candidate, len(cands))
	for i, cd := range cands {
		rescored[i] = candidate{id: cd.id, chunkID: cd.chunkID, isLeaf: cd.isLeaf, score: scores[i]}
	}

	sort.SliceStable(rescored, func(i, j int) bool { return rescored[i].score > rescored[j].score })
	return topK(rescored, c.finalK), nil
}

func dot(a, b []float32) float32 {
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
