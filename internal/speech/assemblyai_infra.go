package speech

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/Vovarama1992/voice_translator/internal/config"
)

type AssemblyAIClient struct {
	client       *aai.Client
	pollInterval time.Duration
}

func NewAssemblyAIClient(cfg config.AssemblyAIConfig) *AssemblyAIClient {
	opts := []aai.ClientOption{aai.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, aai.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")))
	}
	return &AssemblyAIClient{
		client:       aai.NewClientWithOptions(opts...),
		pollInterval: cfg.PollInterval,
	}
}

// Transcribe: загрузка → постановка в очередь → опрос до completed/error.
// Ждём сколько потребуется, остановить можно только через ctx.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}
	defer f.Close()

	uploadURL, err := c.client.Upload(ctx, f)
	if err != nil {
		return "", fmt.Errorf("assemblyai upload: %w", err)
	}

	t, err := c.client.Transcripts.SubmitFromURL(ctx, uploadURL, nil)
	if err != nil {
		return "", fmt.Errorf("assemblyai submit: %w", err)
	}
	id := aai.ToString(t.ID)
	log.Printf("[assemblyai] transcript %s queued", id)

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		switch t.Status {
		case aai.TranscriptStatusCompleted:
			return aai.ToString(t.Text), nil
		case aai.TranscriptStatusError:
			// текст ошибки сервиса отдаём клиенту как есть
			if msg := aai.ToString(t.Error); msg != "" {
				return "", errors.New(msg)
			}
			return "", errors.New("assemblyai: transcription failed")
		case aai.TranscriptStatusQueued, aai.TranscriptStatusProcessing:
		default:
			return "", fmt.Errorf("assemblyai: unexpected status %q", t.Status)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		if t, err = c.client.Transcripts.Get(ctx, id); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", fmt.Errorf("assemblyai poll: %w", err)
		}
	}
}
