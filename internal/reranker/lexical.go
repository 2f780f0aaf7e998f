package reranker

import (
	"context"
	"strings"
)

// LexicalCrossEncoder is a deterministic, dependency-free CrossEncoder stub
// scoring (query, text) pairs by token-set Jaccard overlap. It lets the
// harness exercise the full cascade and traversal paths without a live
// cross-encoder model; production wiring should inject a real CrossEncoder.
type LexicalCrossEncoder struct{}

// NewLexicalCrossEncoder creates the stub cross-encoder.
func NewLexicalCrossEncoder() *LexicalCrossEncoder {
	return &LexicalCrossEncoder{}
}

// Score returns the Jaccard overlap between query and text tokens.
func (LexicalCrossEncoder) Score(_ context.Context, query, text string) (float64, error) {
	return jaccard(tokenSet(query), tokenSet(text)), nil
}

// ScoreBatch scores each text against query.
func (e LexicalCrossEncoder) ScoreBatch(ctx context.Context, query string, texts []string) ([]float64, error) {
	out := make([]float64, len(texts))
	for i, t := range texts {
		score, err := e.Score(ctx, query, t)
		if err != nil {
			return nil, err
		}
		out[i] = score
	}
	return out, nil
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		tok = strings.Trim(tok, ".,;:!?()[]{}\"'")
		if tok != "" {
			set[tok] = struct{}{}
		}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersect := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersect++
		}
	}
	union := len(a) + len(b) - intersect
	if union == 0 {
		return 0
	}
	return float64(intersect) / float64(union)
}
