// Package packer implements greedy token packing: select retrieved chunks in
// score order under a hard token budget, optionally skipping near-duplicates
// via an MMR-style redundancy penalty.
package packer

import (
	"sort"

	"github.com/Aman-CERP/hcr/internal/corpus"
)

// DefaultRedundancyLambda weights the redundancy penalty. Zero disables it.
const DefaultRedundancyLambda = 0.3

// Pack walks chunks in score-descending order (stable on input order),
// skipping any chunk that would exceed budget. When embeddings are provided
// and redundancyLambda > 0, a candidate whose score minus
// redundancyLambda*maxSim against the already-selected set drops below zero
// is skipped. Returns the selected chunks in selection order.
//
// The budget is a hard cap: the sum of selected token counts never exceeds
// it. scores must be aligned with chunks.
func Pack(chunks []*corpus.Chunk, scores []float64, budget int, redundancyLambda float64, embeddings map[string][]float32) []*corpus.Chunk {
	if len(chunks) == 0 {
		return []*corpus.Chunk{}
	}

	order := make([]int, len(chunks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	selected := make([]*corpus.Chunk, 0, len(chunks))
	var selectedIdx []int
	tokensUsed := 0

	for _, idx := range order {
		chunk := chunks[idx]
		if tokensUsed+chunk.TokenCount() > budget {
			continue
		}

		if embeddings != nil && len(selectedIdx) > 0 && redundancyLambda > 0 {
			candEmb, ok := embeddings[chunk.ID()]
			if ok {
				maxSim := 0.0
				for _, si := range selectedIdx {
					selEmb, ok := embeddings[chunks[si].ID()]
					if !ok {
						continue
					}
					if sim := dot(candEmb, selEmb); sim > maxSim {
						maxSim = sim
					}
				}
				if scores[idx]-redundancyLambda*maxSim < 0 {
					continue
				}
			}
		}

		selected = append(selected, chunk)
		selectedIdx = append(selectedIdx, idx)
		tokensUsed += chunk.TokenCount()
	}

	return selected
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
