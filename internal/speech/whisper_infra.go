package speech

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/voice_translator/internal/config"
)

type WhisperClient struct {
	client   *openai.Client
	language string
}

func NewWhisperClient(cfg config.OpenAIConfig, language string) *WhisperClient {
	c := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	return &WhisperClient{
		client:   openai.NewClientWithConfig(c),
		language: language,
	}
}

func (c *WhisperClient) Transcribe(ctx context.Context, filePath string) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filePath,
		Language: c.language,
	})
	if err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}
	return resp.Text, nil
}
