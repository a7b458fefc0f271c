package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// CreateOpenAIChatModel also serves OpenAI-compatible endpoints when url is set.
func CreateOpenAIChatModel(ctx context.Context, url, apiKey, modelName string, timeout time.Duration) (model.ToolCallingChatModel, error) {
	cfg := &openai.ChatModelConfig{
		APIKey:  apiKey,
		Model:   modelName,
		Timeout: timeout,
	}
	if url != "" {
		cfg.BaseURL = url
	}
	chatModel, err := openai.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create openai chat model failed: %w", err)
	}
	return chatModel, nil
}
