package tree

import (
	"encoding/json"
	"os"

	"github.com/Aman-CERP/hcr/internal/errors"
)

// Serialization DTOs. The arena's unexported invariants are enforced on the
// way back in by rebuilding through New.

type nodeJSON struct {
	ID               string       `json:"id"`
	Level            int          `json:"level"`
	ParentIDs        []string     `json:"parent_ids,omitempty"`
	ChildIDs         []string     `json:"child_ids,omitempty"`
	IsLeaf           bool         `json:"is_leaf"`
	ChunkID          string       `json:"chunk_id,omitempty"`
	Summary          *summaryJSON `json:"summary,omitempty"`
	SummaryEmbedding []float32    `json:"summary_embedding,omitempty"`
}

type summaryJSON struct {
	Theme          string   `json:"theme"`
	Includes       []string `json:"includes,omitempty"`
	Excludes       []string `json:"excludes,omitempty"`
	KeyEntities    []string `json:"key_entities,omitempty"`
	KeyTerms       []string `json:"key_terms,omitempty"`
	ContentSnippet string   `json:"content_snippet,omitempty"`
}

type treeJSON struct {
	RootID string              `json:"root_id"`
	Nodes  map[string]nodeJSON `json:"nodes"`
	Depth  int                 `json:"depth"`
}

// MarshalJSON serializes the tree as a single JSON document.
func (t *Tree) MarshalJSON() ([]byte, error) {
	doc := treeJSON{RootID: t.RootID, Nodes: make(map[string]nodeJSON, len(t.Nodes)), Depth: t.Depth}
	for id, n := range t.Nodes {
		nj := nodeJSON{
			ID:               n.ID,
			Level:            n.Level,
			ParentIDs:        n.ParentIDs,
			ChildIDs:         n.ChildIDs,
			IsLeaf:           n.IsLeaf,
			ChunkID:          n.ChunkID,
			SummaryEmbedding: n.SummaryEmbedding,
		}
		if n.Summary != nil {
			nj.Summary = &summaryJSON{
				Theme:          n.Summary.Theme,
				Includes:       n.Summary.Includes,
				Excludes:       n.Summary.Excludes,
				KeyEntities:    n.Summary.KeyEntities,
				KeyTerms:       n.Summary.KeyTerms,
				ContentSnippet: n.Summary.ContentSnippet,
			}
		}
		doc.Nodes[id] = nj
	}
	return json.Marshal(doc)
}

// UnmarshalJSON rebuilds a tree from its JSON document, re-validating the
// arena invariants through New.
func (t *Tree) UnmarshalJSON(data []byte) error {
	var doc treeJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.New(errors.ErrCodeArtifactCorrupt, "tree document does not parse", err)
	}

	nodes := make(map[string]*Node, len(doc.Nodes))
	for id, nj := range doc.Nodes {
		n := &Node{
			ID:               nj.ID,
			Level:            nj.Level,
			ParentIDs:        nj.ParentIDs,
			ChildIDs:         nj.ChildIDs,
			IsLeaf:           nj.IsLeaf,
			ChunkID:          nj.ChunkID,
			SummaryEmbedding: nj.SummaryEmbedding,
		}
		if nj.Summary != nil {
			n.Summary = &RoutingSummary{
				Theme:          nj.Summary.Theme,
				Includes:       nj.Summary.Includes,
				Excludes:       nj.Summary.Excludes,
				KeyEntities:    nj.Summary.KeyEntities,
				KeyTerms:       nj.Summary.KeyTerms,
				ContentSnippet: nj.Summary.ContentSnippet,
			}
		}
		nodes[id] = n
	}

	rebuilt, err := New(doc.RootID, nodes)
	if err != nil {
		return err
	}
	*t = *rebuilt
	return nil
}

// Save writes the tree as an indented JSON document at path.
func (t *Tree) Save(path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return errors.New(errors.ErrCodeResultsWrite, "tree does not serialize", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New(errors.ErrCodeResultsWrite, "tree file write failed", err).
			WithDetail("path", path)
	}
	return nil
}

// LoadTree reads a tree document from path.
func LoadTree(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.ErrCodeArtifactCorrupt, "tree file not readable", err).
			WithDetail("path", path)
	}
	t := &Tree{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, err
	}
	return t, nil
}
