package es

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/cloudwego/eino/schema"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"labor-contract/logger"
	"labor-contract/logic/ingestion/loaders"
)

// Catalog is the keyword side of the occupation catalog.
type Catalog struct {
	client *elasticsearch.Client
	index  string
}

// catalogDoc 索引中的文档结构
type catalogDoc struct {
	Code      string `json:"code"`
	Group     string `json:"group"`
	GroupName string `json:"group_name"`
	Name      string `json:"name"`
	Content   string `json:"content"`
}

// NewCatalog builds the client. Nothing is sent until the first call.
func NewCatalog(addresses []string, index string) (*Catalog, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: addresses})
	if err != nil {
		return nil, fmt.Errorf("create es client: %w", err)
	}
	return &Catalog{client: es, index: index}, nil
}

// 한국어 텍스트는 내장 cjk 분석기로 bigram 처리
const mapping = `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0
  },
  "mappings": {
    "properties": {
      "code":       { "type": "keyword" },
      "group":      { "type": "keyword" },
      "group_name": { "type": "text", "analyzer": "cjk" },
      "name": {
        "type": "text",
        "analyzer": "cjk",
        "fields": { "keyword": { "type": "keyword" } }
      },
      "content":    { "type": "text", "analyzer": "cjk" }
    }
  }
}`

// EnsureIndex creates the index with its mapping when it does not exist.
func (c *Catalog) EnsureIndex(ctx context.Context) error {
	res, err := c.client.Indices.Exists([]string{c.index}, c.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("index exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	logger.L().Info("creating es index", zap.String("index", c.index))
	res, err = c.client.Indices.Create(
		c.index,
		c.client.Indices.Create.WithBody(strings.NewReader(mapping)),
		c.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index: %s", res.String())
	}
	return nil
}

// Count returns the number of indexed occupations.
func (c *Catalog) Count(ctx context.Context) (int64, error) {
	res, err := c.client.Count(
		c.client.Count.WithIndex(c.index),
		c.client.Count.WithContext(ctx),
	)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, fmt.Errorf("count: %s", res.String())
	}
	var body struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode count: %w", err)
	}
	return body.Count, nil
}

// Store bulk indexes docs keyed by occupation code.
func (c *Catalog) Store(ctx context.Context, docs []*schema.Document) error {
	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:   c.index,
		Client:  c.client,
		Refresh: "wait_for",
	})
	if err != nil {
		return fmt.Errorf("bulk indexer: %w", err)
	}

	var failed atomic.Int64
	for _, doc := range docs {
		body, err := json.Marshal(toCatalogDoc(doc))
		if err != nil {
			return fmt.Errorf("encode %s: %w", doc.ID, err)
		}
		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(body),
			OnFailure: func(_ context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				failed.Add(1)
				logger.L().Warn("es index item failed",
					zap.String("id", item.DocumentID),
					zap.String("reason", res.Error.Reason),
					zap.Error(err))
			},
		})
		if err != nil {
			return fmt.Errorf("bulk add %s: %w", doc.ID, err)
		}
	}
	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("bulk close: %w", err)
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d documents failed to index", n, len(docs))
	}
	return nil
}

func toCatalogDoc(doc *schema.Document) catalogDoc {
	o := loaders.ToOccupation(doc)
	return catalogDoc{
		Code:      o.Code,
		Group:     o.Group,
		GroupName: o.GroupName,
		Name:      o.Name,
		Content:   doc.Content,
	}
}
