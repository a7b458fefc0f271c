package chat

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"

	"labor-contract/vars"
)

// NewChatModel picks the provider named in cfg.
func NewChatModel(ctx context.Context, cfg vars.LLMConfig) (model.BaseChatModel, error) {
	switch cfg.Provider {
	case vars.PROVIDER_OLLAMA, "":
		return CreateOllamaChatModel(ctx, cfg.BaseURL, cfg.Model, cfg.Timeout)
	case vars.PROVIDER_OPENAI:
		return CreateOpenAIChatModel(ctx, cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Timeout)
	case vars.PROVIDER_GEMINI:
		m, err := CreateGeminiChatModel(ctx, cfg.APIKey, cfg.Model, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
}
