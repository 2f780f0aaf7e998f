package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/hcr/internal/baseline"
	"github.com/Aman-CERP/hcr/internal/corpus"
)

const sanityQuery = "company values and culture"

func newSanityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sanity",
		Short: "Quick pipeline validation: build indexes, run one query through each baseline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			p, err := buildPipeline(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "corpus: %d chunks\n", p.corp.Len())

			baselines := []baseline.Baseline{
				baseline.NewBM25(p.corp),
				baseline.NewHybrid(p.corp, p.hybrid, p.emb),
				p.newFlatCE(),
			}
			for _, b := range baselines {
				packed, err := b.Retrieve(cmd.Context(), sanityQuery, cfg.Packer.TokenBudget)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-10s retrieved %d chunks, %d tokens\n",
					b.Name(), len(packed), totalTokens(packed))
			}

			fmt.Fprintln(out, "sanity check passed")
			return nil
		},
	}
}

func totalTokens(chunks []*corpus.Chunk) int {
	total := 0
	for _, c := range chunks {
		total += c.TokenCount()
	}
	return total
}
