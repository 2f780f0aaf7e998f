// Package traversal implements the query-time descent strategies over the
// HCR tree: beam search with diversity enforcement, collapsed (flat)
// retrieval over all summary nodes, and the dual-path arbiter that races the
// two and keeps the higher-confidence result.
package traversal

// DefaultAlpha weights the current level's score against the accumulated
// parent path score in the EMA.
const DefaultAlpha = 0.5

// PathRelevanceEMA smooths a level score with the accumulated path score as
// the beam descends: alpha*current + (1-alpha)*parent. The root's seed is
// 1.0, so early levels lean on structure until real scores accumulate.
func PathRelevanceEMA(current, parent, alpha float64) float64 {
	return alpha*current + (1-alpha)*parent
}
