// Package llm provides the embedding model configuration and the Gemini-backed embedder
// used by the similarity gap report.
package llm

// Provider represents an embedding provider
type Provider string

// Provider constants define supported providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Defaults for the Gemini embedding API.
const (
	DefaultEmbeddingModel = "text-embedding-004"
	// DefaultBatchSize is the largest batch BatchEmbedContents accepts.
	DefaultBatchSize = 100
	// DefaultCacheSize bounds the vectors a CachingEmbedder keeps.
	DefaultCacheSize = 10000
)

// Config holds the embedding configuration for the application
type Config struct {
	Provider  Provider
	Model     string
	BatchSize int
	CacheSize int // vectors kept by NewCachingEmbedder
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider:  ProviderGemini,
		Model:     DefaultEmbeddingModel,
		BatchSize: DefaultBatchSize,
		CacheSize: DefaultCacheSize,
	}
}

// WithModel returns a copy of the config using model. An empty model keeps the current one.
func (c *Config) WithModel(model string) *Config {
	out := *c
	if model != "" {
		out.Model = model
	}
	return &out
}

// batchSize returns the configured batch size clamped to (0, DefaultBatchSize].
func (c *Config) batchSize() int {
	if c.BatchSize <= 0 || c.BatchSize > DefaultBatchSize {
		return DefaultBatchSize
	}
	return c.BatchSize
}
