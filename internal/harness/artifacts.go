// Package harness loads benchmark artifacts, evaluates baselines against a
// query suite, and writes result documents. It is the boundary where missing
// files become fatal IO errors; the core never touches the filesystem.
package harness

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Aman-CERP/hcr/internal/corpus"
	"github.com/Aman-CERP/hcr/internal/errors"
	"github.com/Aman-CERP/hcr/internal/evalquery"
)

type chunkJSON struct {
	ID         string            `json:"id"`
	DocumentID string            `json:"document_id"`
	Content    string            `json:"content"`
	TokenCount int               `json:"token_count"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// LoadChunks reads a corpus chunk file: a JSON array of chunk objects.
// A missing file is a fatal IO error at this boundary.
func LoadChunks(path string) ([]*corpus.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.ErrCodeCorpusNotFound, "corpus file not readable", err).
			WithDetail("path", path).
			WithSuggestion("prepare the corpus first, or pass --corpus")
	}

	var items []chunkJSON
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.New(errors.ErrCodeArtifactCorrupt, "corpus file does not parse", err).
			WithDetail("path", path)
	}

	chunks := make([]*corpus.Chunk, 0, len(items))
	for _, item := range items {
		chunk, err := corpus.NewChunk(item.ID, item.DocumentID, item.Content, item.TokenCount, item.Metadata)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

type queryJSON struct {
	ID                string   `json:"id"`
	Text              string   `json:"text"`
	Category          string   `json:"category"`
	Difficulty        string   `json:"difficulty"`
	BudgetFeasible400 bool     `json:"budget_feasible_400"`
	GoldChunkIDs      []string `json:"gold_chunk_ids"`
	GoldAnswer        string   `json:"gold_answer"`
}

// LoadQueries reads a query suite file: a JSON array of query objects.
func LoadQueries(path string) ([]*evalquery.Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.ErrCodeQueriesNotFound, "query suite not readable", err).
			WithDetail("path", path).
			WithSuggestion("generate a query suite first, or pass --queries")
	}

	var items []queryJSON
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.New(errors.ErrCodeArtifactCorrupt, "query suite does not parse", err).
			WithDetail("path", path)
	}

	queries := make([]*evalquery.Query, 0, len(items))
	for _, item := range items {
		q, err := evalquery.New(item.ID, item.Text, evalquery.Category(item.Category),
			evalquery.Difficulty(item.Difficulty), item.BudgetFeasible400, item.GoldChunkIDs, item.GoldAnswer)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, nil
}

// WriteResults serializes v as indented JSON at path, creating parent
// directories as needed.
func WriteResults(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.New(errors.ErrCodeResultsWrite, "results directory not creatable", err).
			WithDetail("path", path)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.New(errors.ErrCodeResultsWrite, "results do not serialize", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New(errors.ErrCodeResultsWrite, "results file write failed", err).
			WithDetail("path", path)
	}
	return nil
}
