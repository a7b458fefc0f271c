package score

import (
	"context"
	"sort"

	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/schema"
)

type Config struct {
	// ScoreFieldKey is the metadata key holding the score. Score() when nil.
	ScoreFieldKey *string
}

// NewReranker orders documents so the best scored sit at both ends of the
// list and the weakest in the middle. Models read the edges of a long
// prompt more reliably than its center.
func NewReranker(_ context.Context, config *Config) (document.Transformer, error) {
	getter := func(doc *schema.Document) float64 { return doc.Score() }
	if config != nil && config.ScoreFieldKey != nil {
		key := *config.ScoreFieldKey
		getter = func(doc *schema.Document) float64 {
			v, _ := doc.MetaData[key].(float64)
			return v
		}
	}
	return &reranker{scoreGetter: getter}, nil
}

type reranker struct {
	scoreGetter func(doc *schema.Document) float64
}

func (r *reranker) Transform(_ context.Context, src []*schema.Document, _ ...document.TransformerOption) ([]*schema.Document, error) {
	sorted := make([]*schema.Document, len(src))
	copy(sorted, src)
	sort.SliceStable(sorted, func(i, j int) bool {
		return r.scoreGetter(sorted[i]) > r.scoreGetter(sorted[j])
	})

	ret := make([]*schema.Document, len(sorted))
	for i, d := range sorted {
		if i%2 == 0 {
			ret[i/2] = d
		} else {
			ret[len(ret)-1-i/2] = d
		}
	}
	return ret, nil
}

func (r *reranker) GetType() string {
	return "ScoreReranker"
}

// ==================== 混合检索融合 ====================

// 来源标记
const (
	SourceVector  = "milvus"
	SourceKeyword = "es"
)

// HybridConfig 向量与关键词结果的融合权重
type HybridConfig struct {
	VectorWeight  float64
	KeywordWeight float64
	TopK          int
}

func DefaultHybridConfig() *HybridConfig {
	return &HybridConfig{
		VectorWeight:  0.6,
		KeywordWeight: 0.4,
		TopK:          10,
	}
}

// Ranked is one fused result.
type Ranked struct {
	*schema.Document
	FinalScore float64
	Sources    []string
}

// HybridReranker min-max normalizes each result list, sums the weighted
// scores per document ID and returns the TopK by final score. Ties keep
// the lower ID first. Input documents are not modified.
func HybridReranker(vectorDocs, keywordDocs []*schema.Document, config *HybridConfig) []*Ranked {
	if config == nil {
		config = DefaultHybridConfig()
	}

	byID := make(map[string]*Ranked)
	merge := func(docs []*schema.Document, weight float64, source string) {
		norm := normalizeScores(docs)
		for i, doc := range docs {
			if doc == nil {
				continue
			}
			r, ok := byID[doc.ID]
			if !ok {
				r = &Ranked{Document: doc}
				byID[doc.ID] = r
			}
			r.FinalScore += norm[i] * weight
			r.Sources = append(r.Sources, source)
		}
	}
	merge(vectorDocs, config.VectorWeight, SourceVector)
	merge(keywordDocs, config.KeywordWeight, SourceKeyword)

	results := make([]*Ranked, 0, len(byID))
	for _, r := range byID {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].FinalScore != results[j].FinalScore {
			return results[i].FinalScore > results[j].FinalScore
		}
		return results[i].ID < results[j].ID
	})
	if config.TopK > 0 && len(results) > config.TopK {
		results = results[:config.TopK]
	}
	return results
}

// normalizeScores maps scores to [0,1]. Equal scores all become 1.
func normalizeScores(docs []*schema.Document) []float64 {
	out := make([]float64, len(docs))
	first := true
	var lo, hi float64
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		s := doc.Score()
		if first {
			lo, hi, first = s, s, false
			continue
		}
		lo, hi = min(lo, s), max(hi, s)
	}
	for i, doc := range docs {
		switch {
		case doc == nil:
		case hi == lo:
			out[i] = 1
		default:
			out[i] = (doc.Score() - lo) / (hi - lo)
		}
	}
	return out
}
