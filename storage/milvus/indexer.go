package milvus

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cloudwego/eino-ext/components/indexer/milvus"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/indexer"
	"github.com/cloudwego/eino/schema"
	json "github.com/goccy/go-json"
	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
	"go.uber.org/zap"

	"labor-contract/logger"
	"labor-contract/logic/ingestion/loaders"
)

// 字段名
const (
	FieldID       = "id"
	FieldVector   = "vector"
	FieldContent  = "content"
	FieldCode     = "code"
	FieldGroup    = "group_code"
	FieldMetadata = "metadata"
)

// Catalog is the occupation collection in Milvus.
type Catalog struct {
	cli        client.Client
	collection string
	embedder   embedding.Embedder
	indexer    indexer.Indexer
}

// Connect dials Milvus and opens (or creates) the collection.
func Connect(ctx context.Context, addr, collection string, embedder embedding.Embedder) (*Catalog, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	cli, err := client.NewClient(connectCtx, client.Config{Address: addr})
	if err != nil {
		return nil, fmt.Errorf("connect milvus %s: %w", addr, err)
	}
	c, err := NewCatalog(ctx, cli, collection, embedder)
	if err != nil {
		_ = cli.Close()
		return nil, err
	}
	return c, nil
}

// NewCatalog reuses an existing client. A new collection gets an HNSW
// index on the vector field and a scalar index on the group code.
func NewCatalog(ctx context.Context, cli client.Client, collection string, embedder embedding.Embedder) (*Catalog, error) {
	existed, err := cli.HasCollection(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("has collection: %w", err)
	}

	vecs, err := embedder.EmbedStrings(ctx, []string{"단순노무"})
	if err != nil {
		return nil, fmt.Errorf("probe embedding dimension: %w", err)
	}
	if len(vecs) == 0 || len(vecs[0]) == 0 {
		return nil, fmt.Errorf("embedder returned no vector")
	}
	dim := len(vecs[0])

	idx, err := milvus.NewIndexer(ctx, &milvus.IndexerConfig{
		Client:            cli,
		Collection:        collection,
		Embedding:         embedder,
		Fields:            fields(dim),
		DocumentConverter: toRows,
		MetricType:        milvus.L2,
	})
	if err != nil {
		return nil, fmt.Errorf("new milvus indexer: %w", err)
	}

	if !existed {
		if err := buildIndexes(ctx, cli, collection); err != nil {
			return nil, err
		}
		logger.L().Info("milvus collection created",
			zap.String("collection", collection), zap.Int("dim", dim))
	}
	return &Catalog{cli: cli, collection: collection, embedder: embedder, indexer: idx}, nil
}

func fields(dim int) []*entity.Field {
	return []*entity.Field{
		{
			Name:       FieldID,
			DataType:   entity.FieldTypeVarChar,
			PrimaryKey: true,
			TypeParams: map[string]string{"max_length": "64"},
		},
		{
			Name:       FieldVector,
			DataType:   entity.FieldTypeFloatVector,
			TypeParams: map[string]string{"dim": strconv.Itoa(dim)},
		},
		{
			Name:       FieldContent,
			DataType:   entity.FieldTypeVarChar,
			TypeParams: map[string]string{"max_length": "1024"},
		},
		{
			Name:       FieldCode,
			DataType:   entity.FieldTypeVarChar,
			TypeParams: map[string]string{"max_length": "16"},
		},
		{
			Name:       FieldGroup,
			DataType:   entity.FieldTypeVarChar,
			TypeParams: map[string]string{"max_length": "8"},
		},
		{
			Name:     FieldMetadata,
			DataType: entity.FieldTypeJSON,
		},
	}
}

func buildIndexes(ctx context.Context, cli client.Client, collection string) error {
	// 先 Release 才能替换默认索引
	_ = cli.ReleaseCollection(ctx, collection)
	if err := cli.DropIndex(ctx, collection, FieldVector); err != nil {
		logger.L().Debug("drop default vector index", zap.Error(err))
	}

	hnsw, err := entity.NewIndexHNSW(entity.L2, 16, 200)
	if err != nil {
		return fmt.Errorf("hnsw params: %w", err)
	}
	if err := cli.CreateIndex(ctx, collection, FieldVector, hnsw, false); err != nil {
		return fmt.Errorf("create hnsw index: %w", err)
	}
	if err := cli.CreateIndex(ctx, collection, FieldGroup, entity.NewScalarIndex(), false); err != nil {
		return fmt.Errorf("create %s index: %w", FieldGroup, err)
	}
	if err := cli.LoadCollection(ctx, collection, false); err != nil {
		return fmt.Errorf("load collection: %w", err)
	}
	return nil
}

// toRows maps catalog documents to Milvus rows.
func toRows(_ context.Context, docs []*schema.Document, vectors [][]float64) ([]interface{}, error) {
	if len(docs) != len(vectors) {
		return nil, fmt.Errorf("got %d vectors for %d documents", len(vectors), len(docs))
	}
	rows := make([]interface{}, len(docs))
	for i, doc := range docs {
		vec32 := make([]float32, len(vectors[i]))
		for j, v := range vectors[i] {
			vec32[j] = float32(v)
		}
		meta, err := json.Marshal(doc.MetaData)
		if err != nil || doc.MetaData == nil {
			meta = []byte("{}")
		}
		code, _ := doc.MetaData[loaders.MetaCode].(string)
		group, _ := doc.MetaData[loaders.MetaGroup].(string)
		rows[i] = map[string]interface{}{
			FieldID:       doc.ID,
			FieldVector:   vec32,
			FieldContent:  doc.Content,
			FieldCode:     code,
			FieldGroup:    group,
			FieldMetadata: meta,
		}
	}
	return rows, nil
}

// Store embeds and inserts docs.
func (c *Catalog) Store(ctx context.Context, docs []*schema.Document) ([]string, error) {
	ids, err := c.indexer.Store(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("milvus store: %w", err)
	}
	return ids, nil
}

// Count reports how many rows the collection holds.
func (c *Catalog) Count(ctx context.Context) (int64, error) {
	stats, err := c.cli.GetCollectionStatistics(ctx, c.collection)
	if err != nil {
		return 0, fmt.Errorf("collection statistics: %w", err)
	}
	n, err := strconv.ParseInt(stats["row_count"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("row_count %q: %w", stats["row_count"], err)
	}
	return n, nil
}

func (c *Catalog) Close() error {
	return c.cli.Close()
}
