package translate

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/voice_translator/internal/config"
)

type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	c := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(c),
		model:  cfg.Model,
	}
}

func (c *OpenAIClient) Translate(ctx context.Context, text, from, to string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(
					"Translate the user's message from language %q to language %q (ISO 639-1 codes). "+
						"Reply with the translation only, no quotes and no comments.", from, to),
			},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai translate (%s): %w", to, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai translate (%s): empty response", to)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
