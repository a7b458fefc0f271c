package processors

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor(t *testing.T) {
	got, err := Processor(context.Background(), []*schema.Document{
		{ID: "95220", Content: "  95220 주방\x00 보조원\n\t/ 가사  "},
		{ID: "95221", Content: " \x00 "},
		nil,
		{ID: "95220", Content: "중복"},
		{ID: "92230", Content: "음식 \xff배달원"},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "95220 주방 보조원 / 가사", got[0].Content)
	assert.Equal(t, "음식 배달원", got[1].Content)
}
