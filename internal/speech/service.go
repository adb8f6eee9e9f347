package speech

import (
	"context"
	"fmt"
	"io"

	"github.com/Vovarama1992/voice_translator/internal/config"
)

// === Единый сервис (и для стт и для ттс) ===

type Service struct {
	stt Transcriber
	tts Synthesizer
}

func NewService(stt Transcriber, tts Synthesizer) *Service {
	return &Service{
		stt: stt,
		tts: tts,
	}
}

// NewFromConfig собирает сервис по STT_PROVIDER; синтез всегда через ElevenLabs.
func NewFromConfig(cfg *config.Config) (*Service, error) {
	var stt Transcriber

	switch cfg.STTProvider {
	case "assemblyai":
		stt = NewAssemblyAIClient(cfg.AssemblyAI)
	case "deepgram":
		stt = NewDeepgramClient(cfg.Deepgram, cfg.SourceLanguage)
	case "whisper":
		stt = NewWhisperClient(cfg.OpenAI, cfg.SourceLanguage)
	default:
		return nil, fmt.Errorf("unknown stt provider %q", cfg.STTProvider)
	}

	return NewService(stt, NewElevenLabsClient(cfg.ElevenLabs)), nil
}

func (s *Service) Transcribe(ctx context.Context, filePath string) (string, error) {
	return s.stt.Transcribe(ctx, filePath)
}

func (s *Service) Synthesize(ctx context.Context, text string, w io.Writer) error {
	return s.tts.Synthesize(ctx, text, w)
}
