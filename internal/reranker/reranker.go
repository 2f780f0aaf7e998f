// Package reranker defines the external cross-encoder collaborator used by
// the scoring cascade's second stage, plus an in-process LRU-cached wrapper
// keyed the same way the teacher's embedder cache keys its entries.
package reranker

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CrossEncoder scores a (query, text) pair for relevance. The real model
// lives outside this repository; production wiring injects a real
// implementation (e.g. an HTTP client to a hosted cross-encoder).
type CrossEncoder interface {
	// Score returns a relevance score for a single (query, text) pair.
	Score(ctx context.Context, query, text string) (float64, error)

	// ScoreBatch scores many texts against one query.
	ScoreBatch(ctx context.Context, query string, texts []string) ([]float64, error)
}

// CachedCrossEncoder wraps a CrossEncoder with an LRU cache keyed by
// the first 16 hex characters of SHA-256(query) + "_" + chunkID.
// Cross-encoder calls are the most expensive part of the
// cascade, so repeated (query, chunk) pairs across baseline runs are free.
type CachedCrossEncoder struct {
	inner CrossEncoder
	cache *lru.Cache[string, float64]
}

// DefaultCacheSize is the default number of (query, chunk) score entries to
// retain.
const DefaultCacheSize = 4096

// New wraps inner with an LRU cache. size <= 0 uses DefaultCacheSize.
func New(inner CrossEncoder, size int) *CachedCrossEncoder {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, _ := lru.New[string, float64](size)
	return &CachedCrossEncoder{inner: inner, cache: cache}
}

// CacheKey returns the cache key for a (query, chunkID) pair.
func CacheKey(query, chunkID string) string {
	h := sha256.Sum256([]byte(query))
	return fmt.Sprintf("%s_%s", hex.EncodeToString(h[:])[:16], chunkID)
}

// Score returns the cached score for (query, chunkID, text) if present,
// otherwise computes and caches it.
func (c *CachedCrossEncoder) Score(ctx context.Context, query, chunkID, text string) (float64, error) {
	key := CacheKey(query, chunkID)
	if score, ok := c.cache.Get(key); ok {
		return score, nil
	}

	score, err := c.inner.Score(ctx, query, text)
	if err != nil {
		return 0, err
	}

	c.cache.Add(key, score)
	return score, nil
}

// ScoreBatch scores each (chunkID, text) pair against query, filling from
// cache where possible and batching the rest through the inner encoder.
func (c *CachedCrossEncoder) ScoreBatch(ctx context.Context, query string, chunkIDs, texts []string) ([]float64, error) {
	if len(texts) != len(chunkIDs) {
		return nil, fmt.Errorf("reranker: chunkIDs and texts length mismatch (%d != %d)", len(chunkIDs), len(texts))
	}

	scores := make([]float64, len(texts))
	var missIdx []int
	var missTexts []string

	for i, cid := range chunkIDs {
		key := CacheKey(query, cid)
		if score, ok := c.cache.Get(key); ok {
			scores[i] = score
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, texts[i])
	}

	if len(missTexts) == 0 {
		return scores, nil
	}

	computed, err := c.inner.ScoreBatch(ctx, query, missTexts)
	if err != nil {
		return nil, err
	}

	for j, idx := range missIdx {
		scores[idx] = computed[j]
		c.cache.Add(CacheKey(query, chunkIDs[idx]), computed[j])
	}

	return scores, nil
}

// Len returns the number of cached entries.
func (c *CachedCrossEncoder) Len() int { return c.cache.Len() }
