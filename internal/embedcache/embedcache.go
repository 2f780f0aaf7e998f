// Package embedcache wraps an embedder.Embedder with an LRU cache so the
// same chunk or query text is never embedded twice within a run.
package embedcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Aman-CERP/hcr/internal/embedder"
)

// DefaultSize is the default number of embeddings to cache.
const DefaultSize = 4096

// CachedEmbedder wraps an embedder.Embedder with LRU caching to avoid
// redundant embedding computations for repeated text.
type CachedEmbedder struct {
	inner embedder.Embedder
	cache *lru.Cache[string, []float32]
}

// New creates a cached embedder wrapping inner. size <= 0 uses DefaultSize.
func New(inner embedder.Embedder, size int) *CachedEmbedder {
	if size <= 0 {
		size = DefaultSize
	}
	cache, _ := lru.New[string, []float32](size)
	return &CachedEmbedder{inner: inner, cache: cache}
}

func (c *CachedEmbedder) cacheKey(text string) string {
	combined := text + "\x00" + c.inner.ModelName()
	hash := sha256.Sum256([]byte(combined))
	return hex.EncodeToString(hash[:])
}

// Embed returns the cached embedding if present, otherwise computes and caches it.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := c.cacheKey(text)
	if vec, ok := c.cache.Get(key); ok {
		return vec, nil
	}

	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, vec)
	return vec, nil
}

// EmbedBatch embeds each text, consulting and populating the cache per-item.
func (c *CachedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	results := make([][]float32, len(texts))
	var uncachedIdx []int
	var uncachedText []string

	for i, text := range texts {
		key := c.cacheKey(text)
		if vec, ok := c.cache.Get(key); ok {
			results[i] = vec
			continue
		}
		uncachedIdx = append(uncachedIdx, i)
		uncachedText = append(uncachedText, text)
	}

	if len(uncachedText) == 0 {
		return results, nil
	}

	embedded, err := c.inner.EmbedBatch(ctx, uncachedText)
	if err != nil {
		return nil, err
	}

	for j, idx := range uncachedIdx {
		results[idx] = embedded[j]
		c.cache.Add(c.cacheKey(texts[idx]), embedded[j])
	}

	return results, nil
}

// Dimensions returns the embedding dimension.
func (c *CachedEmbedder) Dimensions() int { return c.inner.Dimensions() }

// ModelName returns the wrapped embedder's model identifier.
func (c *CachedEmbedder) ModelName() string { return c.inner.ModelName() }

// Len returns the number of cached entries, for test assertions and metrics.
func (c *CachedEmbedder) Len() int { return c.cache.Len() }
