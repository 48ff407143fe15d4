package embedder

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ErrNoEmbedding is returned when the provider responds without a vector.
var ErrNoEmbedding = errors.New("no embeddings returned")

// Client generates embedding vectors for text. Implementations must handle
// both short strings (titles) and longer topic descriptions.
type Client interface {
	// Embed generates embeddings for the given texts, one vector per input.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedSingle is a convenience wrapper for a single text.
	EmbedSingle(ctx context.Context, text string) ([]float32, error)

	// Close cleans up any resources.
	Close() error
}

// Config holds settings common to embedding providers.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIClient implements Client against the OpenAI embeddings API or any
// compatible endpoint.
type OpenAIClient struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIClient creates an embedding client. An empty model defaults to
// text-embedding-3-small.
func NewOpenAIClient(cfg Config) *OpenAIClient {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	model := openai.EmbeddingModel(cfg.Model)
	if cfg.Model == "" {
		model = openai.SmallEmbedding3
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(apiCfg),
		model:  model,
	}
}

// Embed implements Client.
func (c *OpenAIClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: c.model,
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}

// EmbedSingle implements Client.
func (c *OpenAIClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, ErrNoEmbedding
	}
	return vectors[0], nil
}

// Close implements Client.
func (c *OpenAIClient) Close() error {
	return nil
}
