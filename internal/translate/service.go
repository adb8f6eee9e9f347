package translate

import (
	"context"
	"fmt"
	"log"

	"github.com/Vovarama1992/voice_translator/internal/config"
)

type Translation struct {
	Language config.Language
	Text     string
}

type Service struct {
	translator Translator
	source     string
}

func NewService(t Translator, source string) *Service {
	return &Service{translator: t, source: source}
}

func NewFromConfig(cfg *config.Config) (*Service, error) {
	var t Translator

	switch cfg.TranslateProvider {
	case "mymemory":
		t = NewMyMemoryClient(cfg.MyMemory)
	case "openai":
		t = NewOpenAIClient(cfg.OpenAI)
	default:
		return nil, fmt.Errorf("unknown translate provider %q", cfg.TranslateProvider)
	}

	return NewService(t, cfg.SourceLanguage), nil
}

// Translate: один язык, исходный язык фиксирован.
func (s *Service) Translate(ctx context.Context, text string, lang config.Language) (Translation, error) {
	out, err := s.translator.Translate(ctx, text, s.source, lang.Code)
	if err != nil {
		return Translation{}, err
	}
	return Translation{Language: lang, Text: out}, nil
}

// TranslateAll идёт по языкам по порядку; первая ошибка обрывает всё,
// уже готовые переводы выбрасываются.
func (s *Service) TranslateAll(ctx context.Context, text string, langs []config.Language) ([]Translation, error) {
	out := make([]Translation, 0, len(langs))

	for _, lang := range langs {
		tr, err := s.Translate(ctx, text, lang)
		if err != nil {
			log.Printf("[translate] %s fail: %v", lang.Label, err)
			return nil, err
		}
		out = append(out, tr)
	}

	return out, nil
}
