// Package embedder defines the external embedding-model collaborator the
// HCR engine embeds chunks and queries against, plus a deterministic stub
// implementation for offline evaluation runs.
//
// The real embedding model is an out-of-scope external collaborator: the
// harness always talks to it through this interface, never to a concrete
// provider.
package embedder

import (
	"context"
	"math"
)

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates an embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding dimension.
	Dimensions() int

	// ModelName returns the model identifier, used as part of cache keys.
	ModelName() string
}

// normalizeVector returns an L2-normalized copy of v (v itself when it is
// all zeros); v is not modified. The dense index
// and the cascade's cosine scoring both assume unit-norm embeddings.
func normalizeVector(v []float32) []float32 {
	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}

	magnitude := math.Sqrt(sumSquares)
	if magnitude == 0 {
		return v
	}

	normalized := make([]float32, len(v))
	for i, val := range v {
		normalized[i] = float32(float64(val) / magnitude)
	}
	return normalized
}
