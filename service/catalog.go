package service

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"labor-contract/logger"
	"labor-contract/logic/ingestion/loaders"
	"labor-contract/logic/ingestion/processors"
	"labor-contract/logic/ingestion/transform/score"
	"labor-contract/types"
)

// KeywordIndex is the Elasticsearch side of the catalog.
type KeywordIndex interface {
	EnsureIndex(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	Store(ctx context.Context, docs []*schema.Document) error
	Search(ctx context.Context, query string, topK int) ([]*schema.Document, error)
}

// VectorIndex is the Milvus side of the catalog.
type VectorIndex interface {
	Count(ctx context.Context) (int64, error)
	Store(ctx context.Context, docs []*schema.Document) ([]string, error)
	Search(ctx context.Context, query string, topK int) ([]*schema.Document, error)
}

// CatalogService indexes the KSCO occupation table and finds candidate
// occupations for a job description. Either index may be nil.
type CatalogService struct {
	loader   document.Loader
	keyword  KeywordIndex
	vector   VectorIndex
	topK     int
	reranker document.Transformer
}

func NewCatalogService(loader document.Loader, keyword KeywordIndex, vector VectorIndex, topK int) *CatalogService {
	if topK <= 0 {
		topK = 5
	}
	reranker, _ := score.NewReranker(context.Background(), nil)
	return &CatalogService{
		loader:   loader,
		keyword:  keyword,
		vector:   vector,
		topK:     topK,
		reranker: reranker,
	}
}

// Ingest loads the table from path (the built-in one when empty) into both
// indexes. An index that already holds documents is left alone unless force
// is set. It returns the number of catalog documents loaded.
func (s *CatalogService) Ingest(ctx context.Context, path string, force bool) (int, error) {
	raw, err := s.loader.Load(ctx, document.Source{URI: path})
	if err != nil {
		return 0, fmt.Errorf("load catalog: %w", err)
	}
	docs, err := processors.Processor(ctx, raw)
	if err != nil {
		return 0, fmt.Errorf("clean catalog: %w", err)
	}

	if s.keyword != nil {
		if err := s.keyword.EnsureIndex(ctx); err != nil {
			return 0, err
		}
		if n, err := s.keyword.Count(ctx); err != nil {
			return 0, err
		} else if n == 0 || force {
			if err := s.keyword.Store(ctx, docs); err != nil {
				return 0, err
			}
			logger.L().Info("catalog indexed in es", zap.Int("docs", len(docs)))
		}
	}
	if s.vector != nil {
		if n, err := s.vector.Count(ctx); err != nil {
			return 0, err
		} else if n == 0 || force {
			if _, err := s.vector.Store(ctx, docs); err != nil {
				return 0, err
			}
			logger.L().Info("catalog indexed in milvus", zap.Int("docs", len(docs)))
		}
	}
	return len(docs), nil
}

// Search returns the best matching occupations, highest fused score first.
// One failing index degrades to the other.
func (s *CatalogService) Search(ctx context.Context, query string) ([]types.Occupation, error) {
	ranked, err := s.search(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]types.Occupation, len(ranked))
	for i, r := range ranked {
		out[i] = loaders.ToOccupation(r)
	}
	return out, nil
}

// Candidates is Search ordered for a prompt: strongest matches at both ends.
func (s *CatalogService) Candidates(ctx context.Context, query string) ([]types.Occupation, error) {
	ranked, err := s.search(ctx, query)
	if err != nil {
		return nil, err
	}
	ordered, err := s.reranker.Transform(ctx, ranked)
	if err != nil {
		return nil, err
	}
	out := make([]types.Occupation, len(ordered))
	for i, d := range ordered {
		out[i] = loaders.ToOccupation(d)
	}
	return out, nil
}

func (s *CatalogService) search(ctx context.Context, query string) ([]*schema.Document, error) {
	var (
		vectorDocs, keywordDocs []*schema.Document
		vectorErr, keywordErr   error
	)
	g, gctx := errgroup.WithContext(ctx)
	if s.vector != nil {
		g.Go(func() error {
			vectorDocs, vectorErr = s.vector.Search(gctx, query, s.topK*2)
			return nil
		})
	} else {
		vectorErr = errors.New("vector index disabled")
	}
	if s.keyword != nil {
		g.Go(func() error {
			keywordDocs, keywordErr = s.keyword.Search(gctx, query, s.topK*2)
			return nil
		})
	} else {
		keywordErr = errors.New("keyword index disabled")
	}
	_ = g.Wait()

	if vectorErr != nil && keywordErr != nil {
		return nil, fmt.Errorf("catalog search: %w", errors.Join(vectorErr, keywordErr))
	}
	if s.vector != nil && vectorErr != nil {
		logger.L().Warn("vector search failed, keyword only", zap.Error(vectorErr))
	}
	if s.keyword != nil && keywordErr != nil {
		logger.L().Warn("keyword search failed, vector only", zap.Error(keywordErr))
	}

	cfg := score.DefaultHybridConfig()
	cfg.TopK = s.topK
	ranked := score.HybridReranker(vectorDocs, keywordDocs, cfg)

	out := make([]*schema.Document, len(ranked))
	for i, r := range ranked {
		out[i] = (&schema.Document{
			ID:       r.ID,
			Content:  r.Content,
			MetaData: maps.Clone(r.MetaData),
		}).WithScore(r.FinalScore)
	}
	return out, nil
}
