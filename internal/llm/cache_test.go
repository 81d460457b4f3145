package llm

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEmbedder struct {
	mu    sync.Mutex
	seen  [][]string
	err   error
	short bool // return one vector fewer than asked
}

func (c *countingEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen = append(c.seen, append([]string(nil), texts...))
	if c.err != nil {
		return nil, c.err
	}
	n := len(texts)
	if c.short {
		n--
	}
	out := make([][]float32, n)
	for i, t := range texts[:n] {
		out[i] = []float32{float32(len(t))}
	}
	return out, nil
}

func TestCachingEmbedder_EmbedsOnce(t *testing.T) {
	inner := &countingEmbedder{}
	c := NewCachingEmbedder(inner, 0)

	v, err := c.Embed(context.Background(), []string{"Go", "Python", "Go"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{2}, {6}, {2}}, v)
	assert.Equal(t, [][]string{{"Go", "Python"}}, inner.seen)

	v, err = c.Embed(context.Background(), []string{"Python", "Rust"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{6}, {4}}, v)
	assert.Equal(t, []string{"Rust"}, inner.seen[1])
	assert.Equal(t, 3, c.Len())

	_, err = c.Embed(context.Background(), []string{"Go"})
	require.NoError(t, err)
	assert.Len(t, inner.seen, 2, "fully cached call should not reach the wrapped embedder")
}

func TestCachingEmbedder_Error(t *testing.T) {
	boom := errors.New("unavailable")
	c := NewCachingEmbedder(&countingEmbedder{err: boom}, 0)

	_, err := c.Embed(context.Background(), []string{"Go"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())
}

func TestCachingEmbedder_EvictsLeastRecentlyUsed(t *testing.T) {
	inner := &countingEmbedder{}
	c := NewCachingEmbedder(inner, 2)
	ctx := context.Background()

	_, err := c.Embed(ctx, []string{"Go", "Python"})
	require.NoError(t, err)
	_, err = c.Embed(ctx, []string{"Go"}) // Python is now the oldest
	require.NoError(t, err)
	_, err = c.Embed(ctx, []string{"Rust"})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = c.Embed(ctx, []string{"Go", "Rust"})
	require.NoError(t, err)
	assert.Len(t, inner.seen, 2, "Go and Rust should still be cached")

	v, err := c.Embed(ctx, []string{"Python"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{6}}, v)
	assert.Equal(t, []string{"Python"}, inner.seen[2], "evicted entry is embedded again")
	assert.Equal(t, 2, c.Len())
}

func TestCachingEmbedder_BatchLargerThanCache(t *testing.T) {
	c := NewCachingEmbedder(&countingEmbedder{}, 1)

	v, err := c.Embed(context.Background(), []string{"Go", "Python", "Go"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{2}, {6}, {2}}, v)
	assert.Equal(t, 1, c.Len())
}

func TestCachingEmbedder_ShortResult(t *testing.T) {
	c := NewCachingEmbedder(&countingEmbedder{short: true}, 0)

	_, err := c.Embed(context.Background(), []string{"Go", "Python"})
	assert.ErrorContains(t, err, "returned 1 vectors for 2 texts")
	assert.Zero(t, c.Len())
}

func TestChunks(t *testing.T) {
	texts := []string{"a", "b", "c", "d", "e"}
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, chunks(texts, 2))
	assert.Equal(t, [][]string{texts}, chunks(texts, 100))
	assert.Nil(t, chunks(nil, 10))
}

func TestNewGeminiEmbedder_RequiresKey(t *testing.T) {
	_, err := NewGeminiEmbedder(context.Background(), nil, "")
	assert.Error(t, err)
}

func TestNewEmbedder_UnsupportedProvider(t *testing.T) {
	_, err := NewEmbedder(context.Background(), &Config{Provider: "openai"}, "key")
	assert.Error(t, err)
}
