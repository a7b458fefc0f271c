package milvus

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/retriever/milvus"
	"github.com/cloudwego/eino/components/retriever"
	"github.com/cloudwego/eino/schema"
	json "github.com/goccy/go-json"
	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"go.uber.org/zap"

	"labor-contract/logger"
)

// Search runs a vector search. Scores are similarities in (0,1], higher is
// closer.
func (c *Catalog) Search(ctx context.Context, query string, topK int) ([]*schema.Document, error) {
	retr, err := milvus.NewRetriever(ctx, &milvus.RetrieverConfig{
		Client:            c.cli,
		Collection:        c.collection,
		VectorField:       FieldVector,
		OutputFields:      []string{FieldContent, FieldMetadata},
		DocumentConverter: fromResult,
		MetricType:        entity.L2,
		TopK:              topK,
		Embedding:         c.embedder,
	})
	if err != nil {
		return nil, fmt.Errorf("init milvus retriever: %w", err)
	}
	docs, err := retr.Retrieve(ctx, query, retriever.WithTopK(topK))
	if err != nil {
		return nil, fmt.Errorf("milvus retrieve: %w", err)
	}
	logger.L().Debug("milvus search", zap.String("query", query), zap.Int("hits", len(docs)))
	return docs, nil
}

func fromResult(_ context.Context, result client.SearchResult) ([]*schema.Document, error) {
	if result.IDs == nil {
		return nil, nil
	}
	docs := make([]*schema.Document, result.IDs.Len())
	for i := range docs {
		id, err := result.IDs.GetAsString(i)
		if err != nil {
			return nil, fmt.Errorf("read id: %w", err)
		}
		doc := &schema.Document{ID: id, MetaData: map[string]any{}}
		if i < len(result.Scores) {
			doc.WithScore(similarity(result.Scores[i]))
		}
		for _, col := range result.Fields {
			switch col.Name() {
			case FieldContent:
				if s, err := col.GetAsString(i); err == nil {
					doc.Content = s
				}
			case FieldMetadata:
				raw, err := col.Get(i)
				if err != nil {
					continue
				}
				if b, ok := raw.([]byte); ok {
					var meta map[string]any
					if json.Unmarshal(b, &meta) == nil {
						for k, v := range meta {
							doc.MetaData[k] = v
						}
					}
				}
			}
		}
		docs[i] = doc
	}
	return docs, nil
}

// similarity turns an L2 distance into a score where higher is closer.
func similarity(distance float32) float64 {
	if distance < 0 {
		distance = 0
	}
	return 1 / (1 + float64(distance))
}
