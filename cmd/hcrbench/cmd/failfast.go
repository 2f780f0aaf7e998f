package cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/hcr/internal/evalquery"
	"github.com/Aman-CERP/hcr/internal/failfast"
	"github.com/Aman-CERP/hcr/internal/harness"
	"github.com/Aman-CERP/hcr/internal/report"
)

func newFailfastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "failfast",
		Short: "Run the ordered kill checks and report PASSED or KILLED",
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

			rep, err := runFailfast(cmd.Context(), p, queries)
			if err != nil {
				return err
			}

			out := filepath.Join(cfg.Paths.Results, "failfast_report.json")
			if err := harness.WriteResults(out, rep); err != nil {
				return err
			}

			report.NewRenderer(cmd.OutOrStdout()).Verdict(rep)
			if rep.Verdict == failfast.VerdictKilled {
				return ErrKilled
			}
			return nil
		},
	}
}

// runFailfast evaluates the flat-CE kill baseline and HCR, then applies the
// ordered kill checks.
func runFailfast(ctx context.Context, p *pipeline, queries []*evalquery.Query) (*failfast.Report, error) {
	runner := harness.NewRunner(p.corp.Len(), p.cfg.Packer.TokenBudget)
	flatCE, err := runner.EvaluateBaseline(ctx, p.newFlatCE(), queries)
	if err != nil {
		return nil, err
	}

	eval, err := evaluateHCR(ctx, p, queries)
	if err != nil {
		return nil, err
	}

	return failfast.Evaluate(eval.siblingDistinctiveness, eval.epsilons,
		eval.result.NDCGAt10, flatCE.NDCGAt10), nil
}
