// Package evalquery defines the evaluation-time query type. Named apart from
// "query" vectors used during search, per the corpus's own ID/text/category
// contract rather than a transient search-time vector.
package evalquery

import (
	"github.com/Aman-CERP/hcr/internal/errors"
)

// Category is one of the closed set of query categories the corpus tags
// evaluation queries with.
type Category string

const (
	CategorySingleBranch   Category = "single_branch"
	CategoryEntitySpanning Category = "entity_spanning"
	CategoryDPI            Category = "dpi"
	CategoryMultiHop       Category = "multi_hop"
	CategoryComparative    Category = "comparative"
	CategoryAggregation    Category = "aggregation"
	CategoryTemporal       Category = "temporal"
	CategoryAmbiguous      Category = "ambiguous"
	CategoryOOD            Category = "ood"
)

var validCategories = map[Category]struct{}{
	CategorySingleBranch:   {},
	CategoryEntitySpanning: {},
	CategoryDPI:            {},
	CategoryMultiHop:       {},
	CategoryComparative:    {},
	CategoryAggregation:    {},
	CategoryTemporal:       {},
	CategoryAmbiguous:      {},
	CategoryOOD:            {},
}

// Difficulty is the query's hand-labeled difficulty tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var validDifficulties = map[Difficulty]struct{}{
	DifficultyEasy:   {},
	DifficultyMedium: {},
	DifficultyHard:   {},
}

// Query is one evaluation query: its text, category/difficulty tags, a
// budget-feasibility flag, and its gold-chunk identifiers.
type Query struct {
	id               string
	text             string
	category         Category
	difficulty       Difficulty
	budgetFeasible400 bool
	goldChunkIDs     []string
	goldAnswer       string
}

// New validates and constructs a Query. An empty gold-chunk list, an unknown
// category, or an unknown difficulty are invariant violations.
func New(id, text string, category Category, difficulty Difficulty, budgetFeasible400 bool, goldChunkIDs []string, goldAnswer string) (*Query, error) {
	if _, ok := validCategories[category]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidQuery, "unknown query category", nil).
			WithDetail("query_id", id).
			WithDetail("category", string(category))
	}
	if _, ok := validDifficulties[difficulty]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidQuery, "unknown query difficulty", nil).
			WithDetail("query_id", id).
			WithDetail("difficulty", string(difficulty))
	}
	if len(goldChunkIDs) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyGoldSet, "query must have at least one gold chunk", nil).
			WithDetail("query_id", id)
	}

	gold := make([]string, len(goldChunkIDs))
	copy(gold, goldChunkIDs)

	return &Query{
		id:                id,
		text:              text,
		category:          category,
		difficulty:        difficulty,
		budgetFeasible400: budgetFeasible400,
		goldChunkIDs:      gold,
		goldAnswer:        goldAnswer,
	}, nil
}

// ID returns the query's unique identifier.
func (q *Query) ID() string { return q.id }

// Text returns the query's natural-language text.
func (q *Query) Text() string { return q.text }

// Category returns the query's category tag.
func (q *Query) Category() Category { return q.category }

// Difficulty returns the query's difficulty tag.
func (q *Query) Difficulty() Difficulty { return q.difficulty }

// BudgetFeasible400 reports whether the query is answerable within a
// 400-token packed budget.
func (q *Query) BudgetFeasible400() bool { return q.budgetFeasible400 }

// GoldChunkIDs returns the query's gold chunk identifiers, a defensive copy.
func (q *Query) GoldChunkIDs() []string {
	out := make([]string, len(q.goldChunkIDs))
	copy(out, q.goldChunkIDs)
	return out
}

// GoldAnswer returns the query's reference answer string.
func (q *Query) GoldAnswer() string { return q.goldAnswer }
