package score

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(id string, score float64) *schema.Document {
	return (&schema.Document{ID: id}).WithScore(score)
}

func ids(docs []*schema.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func TestRerankerPutsBestAtEdges(t *testing.T) {
	r, err := NewReranker(context.Background(), nil)
	require.NoError(t, err)
	got, err := r.Transform(context.Background(), []*schema.Document{
		doc("c", 0.3), doc("a", 0.9), doc("e", 0.1), doc("b", 0.7), doc("d", 0.2),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "e", "d", "b"}, ids(got))
}

func TestRerankerMetadataKey(t *testing.T) {
	key := "fused"
	r, err := NewReranker(context.Background(), &Config{ScoreFieldKey: &key})
	require.NoError(t, err)
	lo := &schema.Document{ID: "lo", MetaData: map[string]any{key: 0.1}}
	hi := &schema.Document{ID: "hi", MetaData: map[string]any{key: 0.8}}
	none := &schema.Document{ID: "none"}
	got, err := r.Transform(context.Background(), []*schema.Document{lo, none, hi})
	require.NoError(t, err)
	assert.Equal(t, []string{"hi", "none", "lo"}, ids(got))
}

func TestHybridReranker(t *testing.T) {
	vector := []*schema.Document{doc("95220", 0.92), doc("95210", 0.80), doc("94111", 0.50)}
	keyword := []*schema.Document{doc("95210", 12.0), doc("95220", 4.0)}

	got := HybridReranker(vector, keyword, &HybridConfig{VectorWeight: 0.6, KeywordWeight: 0.4, TopK: 2})
	require.Len(t, got, 2)

	// 95210: 0.6*(0.30/0.42) + 0.4*1 ; 95220: 0.6*1 + 0.4*0
	assert.Equal(t, "95210", got[0].ID)
	assert.InDelta(t, 0.6*0.30/0.42+0.4, got[0].FinalScore, 1e-9)
	assert.Equal(t, []string{SourceVector, SourceKeyword}, got[0].Sources)
	assert.Equal(t, "95220", got[1].ID)
	assert.InDelta(t, 0.6, got[1].FinalScore, 1e-9)

	assert.InDelta(t, 12.0, keyword[0].Score(), 1e-9, "inputs untouched")
}

func TestHybridRerankerEqualScores(t *testing.T) {
	got := HybridReranker(nil, []*schema.Document{doc("b", 3), nil, doc("a", 3)}, nil)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.InDelta(t, 0.4, got[0].FinalScore, 1e-9)
	assert.Equal(t, []string{SourceKeyword}, got[1].Sources)
}
