// Package hybridindex fuses BM25 and dense rankings via reciprocal rank
// fusion (RRF), generalizing the teacher's weighted two-searcher fusion to
// an unweighted sum over exactly two sources.
package hybridindex

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/hcr/internal/bm25index"
	"github.com/Aman-CERP/hcr/internal/denseindex"
)

// DefaultRRFConstant is the smoothing constant added to each rank.
const DefaultRRFConstant = 60

// Result is a single fused chunk score.
type Result struct {
	ChunkID string
	Score   float64
}

// Index fuses a BM25 index and a dense index by reciprocal rank fusion.
type Index struct {
	bm25  *bm25index.Index
	dense *denseindex.Index
	rrfK  int
}

// New builds a hybrid index over an existing BM25 and dense index. rrfK <= 0
// uses DefaultRRFConstant.
func New(bm25 *bm25index.Index, dense *denseindex.Index, rrfK int) *Index {
	if rrfK <= 0 {
		rrfK = DefaultRRFConstant
	}
	return &Index{bm25: bm25, dense: dense, rrfK: rrfK}
}

// Search fetches 3*topK candidates from each source in parallel, fuses by
// RRF, and returns the top-topK fused results descending.
func (idx *Index) Search(ctx context.Context, queryText string, queryVec []float32, topK int) ([]Result, error) {
	fetch := topK * 3

	var bm25Results []bm25index.Result
	var denseResults []denseindex.Result

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		bm25Results = idx.bm25.Search(queryText, fetch)
		return nil
	})
	g.Go(func() error {
		denseResults = idx.dense.Search(queryVec, fetch)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fused := idx.fuse(bm25Results, denseResults)
	if topK >= 0 && topK < len(fused) {
		fused = fused[:topK]
	}
	return fused, nil
}

// fuse sums 1/(rrfK+rank) (1-indexed) per candidate across both sources.
func (idx *Index) fuse(bm25Results []bm25index.Result, denseResults []denseindex.Result) []Result {
	scores := make(map[string]float64)
	order := make([]string, 0, len(bm25Results)+len(denseResults))

	addOrUpdate := func(id string, delta float64) {
		if _, seen := scores[id]; !seen {
			order = append(order, id)
		}
		scores[id] += delta
	}

	for rank, r := range bm25Results {
		addOrUpdate(r.ChunkID, 1.0/float64(idx.rrfK+rank+1))
	}
	for rank, r := range denseResults {
		addOrUpdate(r.ChunkID, 1.0/float64(idx.rrfK+rank+1))
	}

	results := make([]Result, len(order))
	for i, id := range order {
		results[i] = Result{ChunkID: id, Score: scores[id]}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}
