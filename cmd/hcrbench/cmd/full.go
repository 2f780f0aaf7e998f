package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/hcr/internal/failfast"
	"github.com/Aman-CERP/hcr/internal/harness"
	"github.com/Aman-CERP/hcr/internal/report"
)

func newFullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "full",
		Short: "Run baselines, HCR, and the fail-fast verdict in one pass",
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

			baselineResults, err := evaluateBaselines(cmd.Context(), p, queries)
			if err != nil {
				return err
			}
			eval, err := evaluateHCR(cmd.Context(), p, queries)
			if err != nil {
				return err
			}

			flatCENDCG := 0.0
			for _, r := range baselineResults {
				if r.SystemName == "flat-ce" {
					flatCENDCG = r.NDCGAt10
				}
			}
			rep := failfast.Evaluate(eval.siblingDistinctiveness, eval.epsilons,
				eval.result.NDCGAt10, flatCENDCG)

			all := append(baselineResults, eval.result)
			if err := harness.WriteResults(filepath.Join(cfg.Paths.Results, "full_results.json"), all); err != nil {
				return err
			}
			if err := harness.WriteResults(filepath.Join(cfg.Paths.Results, "failfast_report.json"), rep); err != nil {
				return err
			}

			r := report.NewRenderer(cmd.OutOrStdout())
			r.ResultsTable(all)
			r.EpsilonTable(eval.epsilons)
			r.Verdict(rep)

			if rep.Verdict == failfast.VerdictKilled {
				return ErrKilled
			}
			return nil
		},
	}
}
