package processors

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"labor-contract/logger"
)

// Processor cleans catalog documents before indexing: null bytes and broken
// UTF-8 go, whitespace is collapsed, and empty or duplicate IDs are dropped.
func Processor(_ context.Context, src []*schema.Document) ([]*schema.Document, error) {
	seen := make(map[string]bool, len(src))
	cleanDocs := make([]*schema.Document, 0, len(src))
	for _, doc := range src {
		if doc == nil {
			continue
		}
		content := strings.ReplaceAll(doc.Content, "\x00", "")
		if !utf8.ValidString(content) {
			content = strings.ToValidUTF8(content, "")
		}
		content = strings.Join(strings.Fields(content), " ")

		// 空内容会让 Embedding 报错
		if content == "" {
			logger.L().Warn("skip empty catalog document", zap.String("id", doc.ID))
			continue
		}
		if seen[doc.ID] {
			logger.L().Warn("skip duplicate catalog document", zap.String("id", doc.ID))
			continue
		}
		seen[doc.ID] = true

		doc.Content = content
		cleanDocs = append(cleanDocs, doc)
	}
	return cleanDocs, nil
}
