package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/skill-extractor/internal/similarity"
)

// NewEmbedder creates an embedder based on configuration
func NewEmbedder(ctx context.Context, config *Config, apiKey string) (*GeminiEmbedder, error) {
	if config == nil {
		config = DefaultConfig()
	}
	switch config.Provider {
	case ProviderGemini, "":
		return NewGeminiEmbedder(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported embedding provider %q", config.Provider)
	}
}

// GeminiEmbedder implements similarity.Embedder for Google Gemini
type GeminiEmbedder struct {
	client *genai.Client
	config *Config
}

var _ similarity.Embedder = (*GeminiEmbedder)(nil)

// NewGeminiEmbedder creates a new Gemini embedder
func NewGeminiEmbedder(ctx context.Context, config *Config, apiKey string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEmbedder{
		client: client,
		config: config,
	}, nil
}

// Embed returns one vector per text, in order, batching requests to the API limit.
func (e *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if e.config.Model == "" {
		return nil, fmt.Errorf("no embedding model configured")
	}
	model := e.client.EmbeddingModel(e.config.Model)
	model.TaskType = genai.TaskTypeSemanticSimilarity

	out := make([][]float32, 0, len(texts))
	for _, chunk := range chunks(texts, e.config.batchSize()) {
		batch := model.NewBatch()
		for _, t := range chunk {
			batch.AddContent(genai.Text(t))
		}
		res, err := model.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to embed content: %w", err)
		}
		if len(res.Embeddings) != len(chunk) {
			return nil, fmt.Errorf("embedding API returned %d vectors for %d texts", len(res.Embeddings), len(chunk))
		}
		for _, emb := range res.Embeddings {
			out = append(out, emb.Values)
		}
	}
	return out, nil
}

// Close releases the underlying client
func (e *GeminiEmbedder) Close() error {
	return e.client.Close()
}

// chunks splits texts into consecutive slices of at most size elements.
func chunks(texts []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(texts); start += size {
		out = append(out, texts[start:min(start+size, len(texts))])
	}
	return out
}
