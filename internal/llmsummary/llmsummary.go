// Package llmsummary generates the structured routing summary attached to
// every internal tree node, via an external LLM collaborator with a bounded
// retry policy, a request-counted breaker for persistent outages, and a
// deterministic pattern-based fallback — grounded on the teacher's
// internal/index contextual-generator pair (LLM-first, pattern fallback).
package llmsummary

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Aman-CERP/hcr/internal/errors"
)

// Generator is the external LLM summary-generation collaborator.
type Generator interface {
	Complete(ctx context.Context, prompt, systemMessage string, maxOutputTokens int) (string, error)
}

// Result is the raw structured fields an LLM (or the fallback) produces for
// one tree node, before the tree builder attaches a content snippet and
// embeds the canonical text.
type Result struct {
	Theme       string
	Includes    []string
	Excludes    []string
	KeyEntities []string
	KeyTerms    []string

	// Fallback marks a summary synthesized without an LLM result (every
	// allowed attempt failed, or the breaker was open), rather than
	// produced by the LLM.
	Fallback bool
}

const (
	// MaxAttempts is the retry budget for one node's summary request.
	MaxAttempts = 3

	// MaxPromptChars caps how much cluster text is fed to the LLM per call.
	MaxPromptChars = 3000

	// MaxFallbackChars caps the cluster text sampled into a fallback summary.
	MaxFallbackChars = 500

	// MaxOutputTokens bounds the LLM's response length.
	MaxOutputTokens = 400

	// maxFallbackTerms caps how many distinct words the fallback summary
	// surfaces as includes/key_terms.
	maxFallbackTerms = 8

	// minFallbackWordLen is the "long enough" floor for fallback words.
	minFallbackWordLen = 4
)

const systemMessage = `You are building a hierarchical index over a text corpus. Given a cluster of related content, produce a short structured routing summary a retrieval engine can use to decide whether a query belongs in this subtree. Respond with a single JSON object only, with fields theme (string), includes (array of strings), excludes (array of strings, optional), key_entities (array of strings, optional), key_terms (array of strings, optional).`

// jsonSummary is the wire shape the LLM is asked to emit.
type jsonSummary struct {
	Theme       string   `json:"theme"`
	Includes    []string `json:"includes"`
	Excludes    []string `json:"excludes"`
	KeyEntities []string `json:"key_entities"`
	KeyTerms    []string `json:"key_terms"`
}

// Summarizer produces a Result for a cluster's joined text, retrying the
// external generator up to MaxAttempts times before falling back to a
// deterministic summary. One Summarizer must be shared across an entire
// tree build so the breaker sees the whole failure streak.
type Summarizer struct {
	gen Generator
	cb  *breaker
}

// NewSummarizer wraps gen with a breaker so a persistently failing LLM
// degrades the build to fallback summaries instead of burning the full
// attempt budget on every remaining node.
func NewSummarizer(gen Generator) *Summarizer {
	return &Summarizer{gen: gen, cb: newBreaker()}
}

// Summarize builds the prompt from clusterText and siblingSummaries (used as
// contrastive context for the current branch), then attempts up to
// MaxAttempts LLM calls, each requiring a parseable JSON object in the
// response. Exhausting attempts (or an open breaker) returns a fallback
// summary instead of an error — per the contract, summary generation is
// never fatal.
func (s *Summarizer) Summarize(ctx context.Context, clusterText string, siblingSummaries []string) *Result {
	prompt := buildPrompt(clusterText, siblingSummaries)

	for attempt := 0; attempt < MaxAttempts; attempt++ {
		if !s.cb.Allow() {
			break
		}

		text, err := s.gen.Complete(ctx, prompt, systemMessage, MaxOutputTokens)
		if err != nil {
			s.cb.RecordFailure()
			continue
		}

		result, err := parseSummary(text)
		if err != nil {
			s.cb.RecordFailure()
			continue
		}

		s.cb.RecordSuccess()
		return result
	}

	return fallbackSummary(clusterText)
}

func buildPrompt(clusterText string, siblingSummaries []string) string {
	var b strings.Builder

	b.WriteString("Cluster content:\n")
	b.WriteString(truncate(clusterText, MaxPromptChars))

	if len(siblingSummaries) > 0 {
		b.WriteString("\n\nSibling subtree summaries (for contrast, use to phrase excludes):\n")
		for _, s := range siblingSummaries {
			b.WriteString("- ")
			b.WriteString(s)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// parseSummary extracts a JSON object from the LLM's response: fenced code
// block first, then the first-`{`-to-last-`}` substring.
func parseSummary(text string) (*Result, error) {
	candidate := extractFencedJSON(text)
	if candidate == "" {
		candidate = extractBracedJSON(text)
	}
	if candidate == "" {
		return nil, errors.New(errors.ErrCodeInvalidSummary, "no JSON object found in LLM response", nil)
	}

	var raw jsonSummary
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return nil, errors.New(errors.ErrCodeInvalidSummary, "LLM response is not valid JSON", err)
	}
	if strings.TrimSpace(raw.Theme) == "" {
		return nil, errors.New(errors.ErrCodeInvalidSummary, "LLM summary has empty theme", nil)
	}

	return &Result{
		Theme:       raw.Theme,
		Includes:    raw.Includes,
		Excludes:    raw.Excludes,
		KeyEntities: raw.KeyEntities,
		KeyTerms:    raw.KeyTerms,
	}, nil
}

func extractFencedJSON(text string) string {
	fenceMarkers := []string{"```json", "```"}
	for _, marker := range fenceMarkers {
		start := strings.Index(text, marker)
		if start == -1 {
			continue
		}
		rest := text[start+len(marker):]
		end := strings.Index(rest, "```")
		if end == -1 {
			continue
		}
		return strings.TrimSpace(rest[:end])
	}
	return ""
}

func extractBracedJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}

// fallbackSummary synthesizes a deterministic summary from raw cluster text
// when the LLM is unavailable or never returns parseable JSON.
func fallbackSummary(clusterText string) *Result {
	sample := truncate(clusterText, MaxFallbackChars)
	words := distinctLongWords(sample, minFallbackWordLen, maxFallbackTerms)

	return &Result{
		Theme:    "(auto-fallback: unparseable cluster)",
		Includes: words,
		KeyTerms: words,
		Fallback: true,
	}
}

// distinctLongWords returns up to limit distinct lowercase words at least
// minLen characters long, in order of first appearance.
func distinctLongWords(text string, minLen, limit int) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, raw := range strings.Fields(text) {
		word := strings.ToLower(strings.Trim(raw, ".,;:!?()[]{}\"'"))
		if len(word) < minLen {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
