package corpus

import (
	"github.com/Aman-CERP/hcr/internal/errors"
)

// Corpus is the chunk collection plus its dense embeddings, built once per
// evaluation run and shared read-only by every index and the tree builder.
// Ownership: the corpus never mutates after New returns.
type Corpus struct {
	chunks     []*Chunk
	byID       map[string]*Chunk
	embeddings map[string][]float32
}

// New builds a Corpus from chunks and their L2-normalized embeddings, keyed
// by chunk ID. A duplicate chunk ID is an invariant violation.
func New(chunks []*Chunk, embeddings map[string][]float32) (*Corpus, error) {
	byID := make(map[string]*Chunk, len(chunks))
	for _, c := range chunks {
		if _, dup := byID[c.ID()]; dup {
			return nil, errors.New(errors.ErrCodeInvalidChunk, "duplicate chunk id in corpus", nil).
				WithDetail("chunk_id", c.ID())
		}
		byID[c.ID()] = c
	}

	embCopy := make(map[string][]float32, len(embeddings))
	for id, vec := range embeddings {
		embCopy[id] = vec
	}

	return &Corpus{chunks: chunks, byID: byID, embeddings: embCopy}, nil
}

// Chunks returns all chunks in corpus order.
func (c *Corpus) Chunks() []*Chunk { return c.chunks }

// Chunk looks up a chunk by ID.
func (c *Corpus) Chunk(id string) (*Chunk, bool) {
	ch, ok := c.byID[id]
	return ch, ok
}

// Embedding looks up a chunk's embedding by ID.
func (c *Corpus) Embedding(id string) ([]float32, bool) {
	vec, ok := c.embeddings[id]
	return vec, ok
}

// Len returns the number of chunks in the corpus.
func (c *Corpus) Len() int { return len(c.chunks) }

// IDs returns every chunk ID in corpus order.
func (c *Corpus) IDs() []string {
	ids := make([]string, len(c.chunks))
	for i, ch := range c.chunks {
		ids[i] = ch.ID()
	}
	return ids
}
