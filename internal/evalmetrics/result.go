package evalmetrics

// BenchmarkResult aggregates one retrieval system's metrics over a query
// suite. IR metrics are computed on full rankings; MeanTokensUsed on the
// token-packed results.
type BenchmarkResult struct {
	RunID           string               `json:"run_id"`
	SystemName      string               `json:"system_name"`
	CorpusSize      int                  `json:"corpus_size"`
	QueryCount      int                  `json:"query_count"`
	EpsilonPerLevel []EpsilonMeasurement `json:"epsilon_per_level"`
	NDCGAt10        float64              `json:"ndcg_at_10"`
	RecallAt10      float64              `json:"recall_at_10"`
	PrecisionAt10   float64              `json:"precision_at_10"`
	MRR             float64              `json:"mrr"`
	MeanTokensUsed  float64              `json:"mean_tokens_used"`
}
