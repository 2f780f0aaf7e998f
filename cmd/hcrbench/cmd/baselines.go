package cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/hcr/internal/baseline"
	"github.com/Aman-CERP/hcr/internal/evalmetrics"
	"github.com/Aman-CERP/hcr/internal/evalquery"
	"github.com/Aman-CERP/hcr/internal/harness"
	"github.com/Aman-CERP/hcr/internal/report"
)

func newBaselinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "baselines",
		Short: "Evaluate BM25, hybrid RRF, and flat cross-encoder with IR metrics",
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

			results, err := evaluateBaselines(cmd.Context(), p, queries)
			if err != nil {
				return err
			}

			out := filepath.Join(cfg.Paths.Results, "baseline_results.json")
			if err := harness.WriteResults(out, results); err != nil {
				return err
			}

			report.NewRenderer(cmd.OutOrStdout()).ResultsTable(results)
			return nil
		},
	}
}

// evaluateBaselines runs the three non-tree baselines.
func evaluateBaselines(ctx context.Context, p *pipeline, queries []*evalquery.Query) ([]*evalmetrics.BenchmarkResult, error) {
	runner := harness.NewRunner(p.corp.Len(), p.cfg.Packer.TokenBudget)

	baselines := []baseline.Baseline{
		baseline.NewBM25(p.corp),
		baseline.NewHybrid(p.corp, p.hybrid, p.emb),
		p.newFlatCE(),
	}

	results := make([]*evalmetrics.BenchmarkResult, 0, len(baselines))
	for _, b := range baselines {
		res, err := runner.EvaluateBaseline(ctx, b, queries)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
