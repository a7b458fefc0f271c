package chat

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

// GeminiChatModel adapts the Gemini API to eino's chat model interface.
// System messages become the system instruction; the rest are sent as turns.
type GeminiChatModel struct {
	client *genai.Client
	model  string
}

var _ model.BaseChatModel = (*GeminiChatModel)(nil)

func CreateGeminiChatModel(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*GeminiChatModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client failed: %w", err)
	}
	return &GeminiChatModel{client: client, model: modelName}, nil
}

func (g *GeminiChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	o := model.GetCommonOptions(&model.Options{Model: &g.model}, opts...)
	contents, cfg := toGenAI(input)
	if o.Temperature != nil {
		cfg.Temperature = o.Temperature
	}
	if o.MaxTokens != nil {
		cfg.MaxOutputTokens = int32(*o.MaxTokens)
	}

	resp, err := g.client.Models.GenerateContent(ctx, *o.Model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate failed: %w", err)
	}
	return schema.AssistantMessage(resp.Text(), nil), nil
}

// Stream has no incremental output; it yields the full reply as one chunk.
func (g *GeminiChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := g.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func toGenAI(input []*schema.Message) ([]*genai.Content, *genai.GenerateContentConfig) {
	cfg := &genai.GenerateContentConfig{}
	var system []string
	contents := make([]*genai.Content, 0, len(input))
	for _, m := range input {
		switch m.Role {
		case schema.System:
			system = append(system, m.Content)
		case schema.Assistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	if len(system) > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}
	return contents, cfg
}
