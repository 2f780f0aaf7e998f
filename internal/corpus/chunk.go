// Package corpus defines the atomic indexed unit the engine retrieves over
// and the read-only collection of chunks and embeddings built once per run.
package corpus

import (
	"github.com/Aman-CERP/hcr/internal/errors"
)

// Chunk is an atomic indexed unit: a document's identifier, its text content,
// a positive token count, and free-form metadata. Immutable after
// construction — NewChunk is the only way to produce one.
type Chunk struct {
	id         string
	documentID string
	content    string
	tokenCount int
	metadata   map[string]string
}

// NewChunk validates and constructs a Chunk. Empty content or a non-positive
// token count are invariant violations and return a *errors.HCRError with
// ErrCodeInvalidChunk.
func NewChunk(id, documentID, content string, tokenCount int, metadata map[string]string) (*Chunk, error) {
	if content == "" {
		return nil, errors.New(errors.ErrCodeInvalidChunk, "chunk content must not be empty", nil).
			WithDetail("chunk_id", id)
	}
	if tokenCount <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidChunk, "chunk token count must be positive", nil).
			WithDetail("chunk_id", id)
	}

	frozen := make(map[string]string, len(metadata))
	for k, v := range metadata {
		frozen[k] = v
	}

	return &Chunk{
		id:         id,
		documentID: documentID,
		content:    content,
		tokenCount: tokenCount,
		metadata:   frozen,
	}, nil
}

// ID returns the chunk's unique identifier.
func (c *Chunk) ID() string { return c.id }

// DocumentID returns the identifier of the document this chunk was drawn from.
func (c *Chunk) DocumentID() string { return c.documentID }

// Content returns the chunk's text content.
func (c *Chunk) Content() string { return c.content }

// TokenCount returns the chunk's precomputed token count.
func (c *Chunk) TokenCount() int { return c.tokenCount }

// Metadata returns the chunk's custom metadata, a defensive copy.
func (c *Chunk) Metadata() map[string]string {
	out := make(map[string]string, len(c.metadata))
	for k, v := range c.metadata {
		out[k] = v
	}
	return out
}
