// Package report renders benchmark results and fail-fast verdicts to the
// terminal. Styling is suppressed when stdout is not a TTY so redirected
// output stays grep-able.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/Aman-CERP/hcr/internal/evalmetrics"
	"github.com/Aman-CERP/hcr/internal/failfast"
)

// Renderer writes styled report blocks to an output stream.
type Renderer struct {
	out     io.Writer
	styled  bool
	header  lipgloss.Style
	cell    lipgloss.Style
	passBox lipgloss.Style
	killBox lipgloss.Style
}

// NewRenderer builds a Renderer for out. Styling is enabled only when out
// is an *os.File attached to a terminal.
func NewRenderer(out io.Writer) *Renderer {
	styled := false
	if f, ok := out.(*os.File); ok {
		styled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Renderer{
		out:     out,
		styled:  styled,
		header:  lipgloss.NewStyle().Bold(true),
		cell:    lipgloss.NewStyle(),
		passBox: lipgloss.NewStyle().Bold(true).Border(lipgloss.RoundedBorder()).Padding(0, 2).Foreground(lipgloss.Color("10")),
		killBox: lipgloss.NewStyle().Bold(true).Border(lipgloss.DoubleBorder()).Padding(0, 2).Foreground(lipgloss.Color("9")),
	}
}

// ResultsTable renders the per-system metrics comparison.
func (r *Renderer) ResultsTable(results []*evalmetrics.BenchmarkResult) {
	const rowFmt = "%-12s %10s %10s %10s %10s %10s"

	head := fmt.Sprintf(rowFmt, "System", "nDCG@10", "Recall@10", "Prec@10", "MRR", "MeanTok")
	fmt.Fprintln(r.out, r.style(r.header, head))
	fmt.Fprintln(r.out, strings.Repeat("-", len(head)))

	for _, res := range results {
		row := fmt.Sprintf(rowFmt,
			res.SystemName,
			fmt.Sprintf("%.4f", res.NDCGAt10),
			fmt.Sprintf("%.4f", res.RecallAt10),
			fmt.Sprintf("%.4f", res.PrecisionAt10),
			fmt.Sprintf("%.4f", res.MRR),
			fmt.Sprintf("%.0f", res.MeanTokensUsed),
		)
		fmt.Fprintln(r.out, r.style(r.cell, row))
	}
}

// EpsilonTable renders per-level routing accuracy.
func (r *Renderer) EpsilonTable(measurements []evalmetrics.EpsilonMeasurement) {
	if len(measurements) == 0 {
		return
	}
	fmt.Fprintln(r.out, r.style(r.header, "Per-level routing accuracy (epsilon, lower is better):"))
	for _, m := range measurements {
		fmt.Fprintf(r.out, "  level %d: epsilon=%.4f (%d/%d correct)\n",
			m.Level, m.Epsilon, m.CorrectBranchInBeam, m.QueriesEvaluated)
	}
}

// Verdict renders the fail-fast outcome box.
func (r *Renderer) Verdict(rep *failfast.Report) {
	lines := []string{string(rep.Verdict)}
	if rep.TriggeringMetric != "" {
		lines = append(lines, "trigger: "+rep.TriggeringMetric)
	}
	lines = append(lines,
		fmt.Sprintf("sibling distinctiveness: %.4f", rep.SiblingDistinctiveness),
		fmt.Sprintf("level-1 epsilon: %.4f", rep.Level1Epsilon),
		fmt.Sprintf("nDCG@10 delta vs flat-ce: %+.4f", rep.NDCGDelta),
	)
	body := strings.Join(lines, "\n")

	box := r.passBox
	if rep.Verdict == failfast.VerdictKilled {
		box = r.killBox
	}
	fmt.Fprintln(r.out, r.style(box, body))
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}
