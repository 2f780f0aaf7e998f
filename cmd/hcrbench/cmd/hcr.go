package cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/hcr/internal/evalmetrics"
	"github.com/Aman-CERP/hcr/internal/evalquery"
	"github.com/Aman-CERP/hcr/internal/harness"
	"github.com/Aman-CERP/hcr/internal/report"
)

// hcrEvaluation bundles everything the hcr, failfast, and full modes share.
type hcrEvaluation struct {
	result                 *evalmetrics.BenchmarkResult
	epsilons               []evalmetrics.EpsilonMeasurement
	siblingDistinctiveness float64
}

func newHCRCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hcr",
		Short: "Build the summary tree and evaluate HCR dual-path retrieval",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			p, err := buildPipeline(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			queries, err := harness.LoadQueries(cfg.Paths.Queries)
			if err != nil {
				return err
			}

			eval, err := evaluateHCR(cmd.Context(), p, queries)
			if err != nil {
				return err
			}

			out := filepath.Join(cfg.Paths.Results, "hcr_results.json")
			if err := harness.WriteResults(out, eval.result); err != nil {
				return err
			}

			r := report.NewRenderer(cmd.OutOrStdout())
			r.ResultsTable([]*evalmetrics.BenchmarkResult{eval.result})
			r.EpsilonTable(eval.epsilons)
			return nil
		},
	}
}

// evaluateHCR builds (or loads) the tree, measures its quality, evaluates
// the HCR baseline, and computes per-level epsilon from the recorded beams.
func evaluateHCR(ctx context.Context, p *pipeline, queries []*evalquery.Query) (*hcrEvaluation, error) {
	tr, err := p.buildOrLoadTree(ctx)
	if err != nil {
		return nil, err
	}

	sd := evalmetrics.SiblingDistinctiveness(tr)

	hcr := p.newHCRBaseline(tr)
	runner := harness.NewRunner(p.corp.Len(), p.cfg.Packer.TokenBudget)
	result, err := runner.EvaluateBaseline(ctx, hcr, queries)
	if err != nil {
		return nil, err
	}

	epsilons := evalmetrics.ComputeEpsilon(tr, queries, hcr.BeamResults())
	result.EpsilonPerLevel = epsilons

	return &hcrEvaluation{
		result:                 result,
		epsilons:               epsilons,
		siblingDistinctiveness: sd,
	}, nil
}
