// Package evalmetrics computes the evaluation-side measurements: standard IR
// metrics over full rankings, the per-level routing-accuracy epsilon, and
// the sibling-distinctiveness tree-quality check.
package evalmetrics

import "math"

// NDCGAtK computes normalized discounted cumulative gain at k with binary
// relevance. Returns 0 when either side is empty.
func NDCGAtK(retrieved []string, relevant map[string]struct{}, k int) float64 {
	if len(relevant) == 0 || len(retrieved) == 0 {
		return 0
	}

	dcg := 0.0
	for i, id := range capK(retrieved, k) {
		if _, ok := relevant[id]; ok {
			dcg += 1.0 / math.Log2(float64(i)+2)
		}
	}

	idealLen := len(relevant)
	if k < idealLen {
		idealLen = k
	}
	idealDCG := 0.0
	for i := 0; i < idealLen; i++ {
		idealDCG += 1.0 / math.Log2(float64(i)+2)
	}
	if idealDCG == 0 {
		return 0
	}
	return dcg / idealDCG
}

// RecallAtK computes the fraction of relevant chunks present in the top k.
func RecallAtK(retrieved []string, relevant map[string]struct{}, k int) float64 {
	if len(relevant) == 0 {
		return 0
	}
	hits := 0
	seen := make(map[string]struct{})
	for _, id := range capK(retrieved, k) {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := relevant[id]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(relevant))
}

// PrecisionAtK computes the fraction of the top k that is relevant.
func PrecisionAtK(retrieved []string, relevant map[string]struct{}, k int) float64 {
	top := capK(retrieved, k)
	if len(top) == 0 {
		return 0
	}
	hits := 0
	for _, id := range top {
		if _, ok := relevant[id]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(top))
}

// MRR computes the reciprocal rank of the first relevant result, 0 if none.
func MRR(retrieved []string, relevant map[string]struct{}) float64 {
	for i, id := range retrieved {
		if _, ok := relevant[id]; ok {
			return 1.0 / float64(i+1)
		}
	}
	return 0
}

// GoldSet converts a gold-chunk list into the set form the metrics consume.
func GoldSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func capK(ids []string, k int) []string {
	if k >= 0 && k < len(ids) {
		return ids[:k]
	}
	return ids
}
