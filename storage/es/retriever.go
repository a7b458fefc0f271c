package es

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"labor-contract/logger"
	"labor-contract/logic/ingestion/loaders"
)

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string     `json:"_id"`
			Score  float64    `json:"_score"`
			Source catalogDoc `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs a BM25 match over name, content and group name. Documents
// carry the raw _score.
func (c *Catalog) Search(ctx context.Context, query string, topK int) ([]*schema.Document, error) {
	body, err := json.Marshal(buildQuery(query, topK))
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{c.index},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, c.client)
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.String())
	}

	var out searchResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	docs := make([]*schema.Document, 0, len(out.Hits.Hits))
	for _, hit := range out.Hits.Hits {
		doc := &schema.Document{
			ID:      hit.ID,
			Content: hit.Source.Content,
			MetaData: map[string]any{
				loaders.MetaCode:      hit.Source.Code,
				loaders.MetaGroup:     hit.Source.Group,
				loaders.MetaGroupName: hit.Source.GroupName,
				loaders.MetaName:      hit.Source.Name,
			},
		}
		docs = append(docs, doc.WithScore(hit.Score))
	}
	logger.L().Debug("es search", zap.String("query", query), zap.Int("hits", len(docs)))
	return docs, nil
}

func buildQuery(query string, topK int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"name^3", "content", "group_name"},
			},
		},
		"size": topK,
	}
}
