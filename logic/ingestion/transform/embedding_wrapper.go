package transform

import (
	"context"
	"math"

	"github.com/cloudwego/eino/components/embedding"
	"go.uber.org/zap"

	"labor-contract/logger"
)

// CleanEmbedder 包装原始 embedder，把 NaN/Inf 替换为 0
type CleanEmbedder struct {
	inner embedding.Embedder
}

func NewCleanEmbedder(inner embedding.Embedder) *CleanEmbedder {
	return &CleanEmbedder{inner: inner}
}

func (e *CleanEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	vectors, err := e.inner.EmbedStrings(ctx, texts, opts...)
	if err != nil {
		return nil, err
	}

	cleaned := 0
	for _, vec := range vectors {
		for j, val := range vec {
			if math.IsNaN(val) || math.IsInf(val, 0) {
				vec[j] = 0
				cleaned++
			}
		}
	}
	if cleaned > 0 {
		logger.L().Warn("embedding contained NaN/Inf", zap.Int("dimensions", cleaned))
	}
	return vectors, nil
}
