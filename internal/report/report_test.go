package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aman-CERP/hcr/internal/evalmetrics"
	"github.com/Aman-CERP/hcr/internal/failfast"
)

func TestResultsTable_PlainWhenNotATTY(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.ResultsTable([]*evalmetrics.BenchmarkResult{
		{SystemName: "bm25", NDCGAt10: 0.5, RecallAt10: 0.4, PrecisionAt10: 0.3, MRR: 0.6, MeanTokensUsed: 390},
	})

	out := buf.String()
	assert.Contains(t, out, "bm25")
	assert.Contains(t, out, "0.5000")
	assert.Contains(t, out, "390")
	assert.NotContains(t, out, "\x1b[")
}

func TestVerdict_RendersTriggeringMetric(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Verdict(&failfast.Report{
		Verdict:                failfast.VerdictKilled,
		TriggeringMetric:       failfast.MetricNDCGDelta,
		SiblingDistinctiveness: 0.4,
		Level1Epsilon:          0.1,
		NDCGDelta:              -0.05,
	})

	out := buf.String()
	assert.Contains(t, out, "KILLED")
	assert.Contains(t, out, "ndcg_delta")
}

func TestEpsilonTable_EmptyMeasurementsRenderNothing(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.EpsilonTable(nil)

	assert.Empty(t, buf.String())
}
