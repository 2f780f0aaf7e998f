// Package failfast implements the ordered kill-switch evaluation: the cheap
// structural signals are checked before the expensive comparative one, and
// the first tripped check names the triggering metric.
package failfast

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/Aman-CERP/hcr/internal/evalmetrics"
)

// Verdict is the single user-visible outcome of a fail-fast run.
type Verdict string

const (
	// VerdictPassed means no kill criterion tripped.
	VerdictPassed Verdict = "PASSED"
	// VerdictKilled means a kill criterion tripped; the experiment is a
	// negative result.
	VerdictKilled Verdict = "KILLED"
)

// Triggering-metric names recorded in the report.
const (
	MetricSiblingDistinctiveness = "sibling_distinctiveness"
	MetricLevel1Epsilon          = "level_1_epsilon"
	MetricNDCGDelta              = "ndcg_delta"
)

// DefaultMaxLevel1Epsilon is the routing-accuracy kill threshold: when more
// than half the queries lose their gold branch at the first split, the tree
// is not routing.
const DefaultMaxLevel1Epsilon = 0.5

// Report is the outcome record of one fail-fast evaluation.
type Report struct {
	RunID                  string  `json:"run_id"`
	Verdict                Verdict `json:"verdict"`
	TriggeringMetric       string  `json:"triggering_metric,omitempty"`
	SiblingDistinctiveness float64 `json:"sibling_distinctiveness"`
	Level1Epsilon          float64 `json:"level_1_epsilon"`
	NDCGDelta              float64 `json:"ndcg_delta"`
}

// Evaluate runs the ordered kill checks: sibling distinctiveness below the
// threshold, then level-1 epsilon above DefaultMaxLevel1Epsilon, then HCR's
// nDCG@10 failing to beat the flat cross-encoder baseline's. The first
// failing check sets the verdict and triggering metric.
func Evaluate(siblingDistinctiveness float64, epsilons []evalmetrics.EpsilonMeasurement, hcrNDCG, flatCENDCG float64) *Report {
	report := &Report{
		RunID:                  uuid.NewString(),
		Verdict:                VerdictPassed,
		SiblingDistinctiveness: siblingDistinctiveness,
		Level1Epsilon:          level1Epsilon(epsilons),
		NDCGDelta:              hcrNDCG - flatCENDCG,
	}

	switch {
	case siblingDistinctiveness < evalmetrics.SiblingDistinctivenessKill:
		report.Verdict = VerdictKilled
		report.TriggeringMetric = MetricSiblingDistinctiveness
	case report.Level1Epsilon > DefaultMaxLevel1Epsilon:
		report.Verdict = VerdictKilled
		report.TriggeringMetric = MetricLevel1Epsilon
	case report.NDCGDelta <= 0:
		report.Verdict = VerdictKilled
		report.TriggeringMetric = MetricNDCGDelta
	}

	slog.Info("failfast_evaluated",
		"run_id", report.RunID,
		"verdict", string(report.Verdict),
		"triggering_metric", report.TriggeringMetric)

	return report
}

func level1Epsilon(epsilons []evalmetrics.EpsilonMeasurement) float64 {
	for _, m := range epsilons {
		if m.Level == 1 {
			return m.Epsilon
		}
	}
	return 0
}
