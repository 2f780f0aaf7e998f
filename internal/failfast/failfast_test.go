package failfast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aman-CERP/hcr/internal/evalmetrics"
)

func TestEvaluate_PassesWhenAllChecksClear(t *testing.T) {
	epsilons := []evalmetrics.EpsilonMeasurement{{Level: 1, QueriesEvaluated: 10, CorrectBranchInBeam: 9, Epsilon: 0.1}}

	report := Evaluate(0.4, epsilons, 0.8, 0.7)

	assert.Equal(t, VerdictPassed, report.Verdict)
	assert.Empty(t, report.TriggeringMetric)
	assert.NotEmpty(t, report.RunID)
}

func TestEvaluate_KillsOnHomogeneousTree(t *testing.T) {
	report := Evaluate(0.1, nil, 0.8, 0.7)

	assert.Equal(t, VerdictKilled, report.Verdict)
	assert.Equal(t, MetricSiblingDistinctiveness, report.TriggeringMetric)
}

func TestEvaluate_KillsOnLevel1Epsilon(t *testing.T) {
	epsilons := []evalmetrics.EpsilonMeasurement{{Level: 1, QueriesEvaluated: 10, CorrectBranchInBeam: 2, Epsilon: 0.8}}

	report := Evaluate(0.4, epsilons, 0.8, 0.7)

	assert.Equal(t, VerdictKilled, report.Verdict)
	assert.Equal(t, MetricLevel1Epsilon, report.TriggeringMetric)
}

func TestEvaluate_KillsWhenHCRDoesNotBeatFlatCE(t *testing.T) {
	report := Evaluate(0.4, nil, 0.6, 0.7)

	assert.Equal(t, VerdictKilled, report.Verdict)
	assert.Equal(t, MetricNDCGDelta, report.TriggeringMetric)
	assert.InDelta(t, -0.1, report.NDCGDelta, 1e-9)
}

func TestEvaluate_ChecksSiblingDistinctivenessFirst(t *testing.T) {
	// Everything fails; the structural check wins.
	epsilons := []evalmetrics.EpsilonMeasurement{{Level: 1, QueriesEvaluated: 10, Epsilon: 1.0}}

	report := Evaluate(0.0, epsilons, 0.1, 0.9)

	assert.Equal(t, MetricSiblingDistinctiveness, report.TriggeringMetric)
}
