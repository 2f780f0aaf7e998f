package llmsummary

import (
	"context"
	"fmt"
)

// PatternGenerator is a deterministic, dependency-free Generator stub. It
// never fails to produce parseable JSON, so a Summarizer wrapping it never
// falls back — useful for offline evaluation runs without a live LLM.
type PatternGenerator struct{}

// NewPatternGenerator creates the stub generator.
func NewPatternGenerator() *PatternGenerator {
	return &PatternGenerator{}
}

// Complete ignores systemMessage/maxOutputTokens and returns a fixed-shape
// JSON object built from the top distinct long words in the prompt.
func (PatternGenerator) Complete(_ context.Context, prompt, _ string, _ int) (string, error) {
	words := distinctLongWords(prompt, minFallbackWordLen, maxFallbackTerms)
	theme := "cluster"
	if len(words) > 0 {
		theme = words[0]
	}

	includes := jsonStringArray(words)
	return fmt.Sprintf(`{"theme": %q, "includes": %s, "excludes": [], "key_entities": [], "key_terms": %s}`,
		theme, includes, includes), nil
}

func jsonStringArray(words []string) string {
	if len(words) == 0 {
		return "[]"
	}
	out := "["
	for i, w := range words {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%q", w)
	}
	return out + "]"
}
