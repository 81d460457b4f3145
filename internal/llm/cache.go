package llm

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jonathan/skill-extractor/internal/similarity"
)

// CachingEmbedder memoizes vectors by text so repeated skills are embedded once. The cache
// is bounded; the least recently used vectors are evicted first.
type CachingEmbedder struct {
	next    similarity.Embedder
	vectors *lru.Cache[string, []float32]
}

// NewCachingEmbedder wraps next with an LRU cache of at most size vectors
// (DefaultCacheSize when size <= 0).
func NewCachingEmbedder(next similarity.Embedder, size int) *CachingEmbedder {
	if size <= 0 {
		size = DefaultCacheSize
	}
	vectors, err := lru.New[string, []float32](size)
	if err != nil {
		// only reachable with a non-positive size
		panic(err)
	}
	return &CachingEmbedder{next: next, vectors: vectors}
}

// Embed embeds only the texts not cached, in one call to the wrapped embedder.
func (c *CachingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	var missing []string
	pending := make(map[string][]int)
	for i, t := range texts {
		if v, ok := c.vectors.Get(t); ok {
			out[i] = v
			continue
		}
		if _, queued := pending[t]; !queued {
			missing = append(missing, t)
		}
		pending[t] = append(pending[t], i)
	}
	if len(missing) == 0 {
		return out, nil
	}

	vectors, err := c.next.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(missing) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(missing))
	}
	for j, t := range missing {
		c.vectors.Add(t, vectors[j])
		for _, i := range pending[t] {
			out[i] = vectors[j]
		}
	}
	return out, nil
}

// Len returns the number of cached vectors.
func (c *CachingEmbedder) Len() int {
	return c.vectors.Len()
}
