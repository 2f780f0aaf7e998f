package harness

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Aman-CERP/hcr/internal/baseline"
	"github.com/Aman-CERP/hcr/internal/evalmetrics"
	"github.com/Aman-CERP/hcr/internal/evalquery"
)

// EvalTopK is the cutoff for the @k IR metrics.
const EvalTopK = 10

// DefaultTokenBudget is the packed-retrieval budget used for the
// mean-tokens measurement.
const DefaultTokenBudget = 400

// Runner evaluates baselines against a query suite. IR metrics are computed
// on each baseline's full ranking; mean tokens on its packed retrieval.
type Runner struct {
	corpusSize  int
	tokenBudget int
}

// NewRunner builds a Runner. tokenBudget <= 0 uses DefaultTokenBudget.
func NewRunner(corpusSize, tokenBudget int) *Runner {
	if tokenBudget <= 0 {
		tokenBudget = DefaultTokenBudget
	}
	return &Runner{corpusSize: corpusSize, tokenBudget: tokenBudget}
}

// EvaluateBaseline runs every query through b and aggregates the metrics.
// For the HCR baseline, each query's beam record is filed under its query ID
// as a side effect, so epsilon can be computed afterwards.
func (r *Runner) EvaluateBaseline(ctx context.Context, b baseline.Baseline, queries []*evalquery.Query) (*evalmetrics.BenchmarkResult, error) {
	result := &evalmetrics.BenchmarkResult{
		RunID:           uuid.NewString(),
		SystemName:      b.Name(),
		CorpusSize:      r.corpusSize,
		QueryCount:      len(queries),
		EpsilonPerLevel: []evalmetrics.EpsilonMeasurement{},
	}
	if len(queries) == 0 {
		return result, nil
	}

	hcr, isHCR := b.(*baseline.HCR)

	var totalTokens float64
	for _, q := range queries {
		ranked, err := b.Rank(ctx, q.Text(), baseline.DefaultRankTopK)
		if err != nil {
			return nil, err
		}
		if isHCR {
			hcr.StoreBeamResult(q.ID())
		}

		rankedIDs := make([]string, len(ranked))
		for i, rc := range ranked {
			rankedIDs[i] = rc.ChunkID
		}
		gold := evalmetrics.GoldSet(q.GoldChunkIDs())

		result.NDCGAt10 += evalmetrics.NDCGAtK(rankedIDs, gold, EvalTopK)
		result.RecallAt10 += evalmetrics.RecallAtK(rankedIDs, gold, EvalTopK)
		result.PrecisionAt10 += evalmetrics.PrecisionAtK(rankedIDs, gold, EvalTopK)
		result.MRR += evalmetrics.MRR(rankedIDs, gold)

		packed, err := b.Retrieve(ctx, q.Text(), r.tokenBudget)
		if err != nil {
			return nil, err
		}
		for _, c := range packed {
			totalTokens += float64(c.TokenCount())
		}
	}

	n := float64(len(queries))
	result.NDCGAt10 /= n
	result.RecallAt10 /= n
	result.PrecisionAt10 /= n
	result.MRR /= n
	result.MeanTokensUsed = totalTokens / n

	slog.Info("baseline_evaluated",
		"system", result.SystemName,
		"query_count", result.QueryCount,
		"ndcg_at_10", result.NDCGAt10,
		"recall_at_10", result.RecallAt10,
		"mrr", result.MRR,
		"mean_tokens", result.MeanTokensUsed)

	return result, nil
}
