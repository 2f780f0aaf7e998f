package tree

import (
	"strings"

	"github.com/Aman-CERP/hcr/internal/errors"
)

// RoutingSummary is the structured description attached to every internal
// tree node, used by the scoring cascade to decide whether a query belongs
// in a subtree.
type RoutingSummary struct {
	Theme          string
	Includes       []string
	Excludes       []string
	KeyEntities    []string
	KeyTerms       []string
	ContentSnippet string
}

// NewRoutingSummary validates and constructs a RoutingSummary. An empty
// theme is an invariant violation.
func NewRoutingSummary(theme string, includes, excludes, keyEntities, keyTerms []string, contentSnippet string) (*RoutingSummary, error) {
	if strings.TrimSpace(theme) == "" {
		return nil, errors.New(errors.ErrCodeInvalidSummary, "routing summary theme must not be empty", nil)
	}
	return &RoutingSummary{
		Theme:          theme,
		Includes:       append([]string(nil), includes...),
		Excludes:       append([]string(nil), excludes...),
		KeyEntities:    append([]string(nil), keyEntities...),
		KeyTerms:       append([]string(nil), keyTerms...),
		ContentSnippet: contentSnippet,
	}, nil
}

// CanonicalText converts the summary to the text string embedded for
// traversal scoring: theme followed by labeled comma-separated lists in a
// fixed order, joined by ". ", omitting empty sections.
func (s *RoutingSummary) CanonicalText() string {
	parts := []string{s.Theme}
	if len(s.Includes) > 0 {
		parts = append(parts, "Covers: "+strings.Join(s.Includes, ", "))
	}
	if len(s.Excludes) > 0 {
		parts = append(parts, "Not: "+strings.Join(s.Excludes, ", "))
	}
	if len(s.KeyEntities) > 0 {
		parts = append(parts, "Entities: "+strings.Join(s.KeyEntities, ", "))
	}
	if len(s.KeyTerms) > 0 {
		parts = append(parts, "Terms: "+strings.Join(s.KeyTerms, ", "))
	}
	if s.ContentSnippet != "" {
		parts = append(parts, "Sample: "+s.ContentSnippet)
	}
	return strings.Join(parts, ". ")
}

// CascadeText renders the surface text the scoring cascade shows the
// cross-encoder for a summary candidate, per the cascade's stage-2 contract.
// excludes is omitted in collapsed-retrieval surfaces; callers pass false there.
func (s *RoutingSummary) CascadeText(includeExcludes bool) string {
	if includeExcludes {
		return "Theme: " + s.Theme + ". Includes: " + strings.Join(s.Includes, ", ") + ". Excludes: " + strings.Join(s.Excludes, ", ") + "."
	}
	return "Theme: " + s.Theme + ". Includes: " + strings.Join(s.Includes, ", ") + "."
}

// extractSnippet takes the first chunk text as a representative sample,
// cut at the last space before maxChars to avoid splitting mid-word.
func extractSnippet(clusterTexts []string, maxChars int) string {
	if len(clusterTexts) == 0 {
		return ""
	}
	text := strings.TrimSpace(clusterTexts[0])
	if len(text) <= maxChars {
		return text
	}
	cut := strings.LastIndex(text[:maxChars], " ")
	if cut > 0 {
		return text[:cut]
	}
	return text[:maxChars]
}
