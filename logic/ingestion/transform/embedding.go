package transform

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/embedding/ollama"
	"github.com/cloudwego/eino/components/embedding"

	"labor-contract/vars"
)

// NewEmbedder builds the ollama embedder for the occupation catalog, wrapped
// so vectors never carry NaN or Inf into Milvus.
func NewEmbedder(ctx context.Context, cfg vars.CatalogConfig) (embedding.Embedder, error) {
	model := cfg.EmbeddingModel
	if model == "" {
		model = vars.BGEM3
	}
	inner, err := ollama.NewEmbedder(ctx, &ollama.EmbeddingConfig{
		BaseURL: cfg.EmbeddingURL,
		Model:   model,
		Timeout: cfg.EmbeddingTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("new ollama embedder: %w", err)
	}
	return NewCleanEmbedder(inner), nil
}
