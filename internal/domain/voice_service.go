package domain

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Vovarama1992/voice_translator/internal/config"
	"github.com/Vovarama1992/voice_translator/internal/error_notificator"
	"github.com/Vovarama1992/voice_translator/internal/ports"
	"github.com/Vovarama1992/voice_translator/internal/speech"
	"github.com/Vovarama1992/voice_translator/internal/translate"
)

type voiceService struct {
	stt        speech.Transcriber
	tts        speech.Synthesizer
	translator *translate.Service
	store      ports.AudioStore
	langs      []config.Language
	parallel   bool
	notifier   error_notificator.Notificator
}

func NewVoiceService(
	stt speech.Transcriber,
	tts speech.Synthesizer,
	translator *translate.Service,
	store ports.AudioStore,
	langs []config.Language,
	parallel bool,
	n error_notificator.Notificator,
) ports.VoiceService {
	return &voiceService{
		stt:        stt,
		tts:        tts,
		translator: translator,
		store:      store,
		langs:      langs,
		parallel:   parallel,
		notifier:   n,
	}
}

// Process: любой сбой обрывает весь запрос, частичных результатов нет.
// Синтез не начинается, пока не готовы все переводы.
func (s *voiceService) Process(ctx context.Context, upload io.Reader) (*ports.VoiceResult, error) {
	start := time.Now()

	name, err := s.store.SaveUpload(ctx, upload)
	if err != nil {
		return nil, s.fail(ctx, "save upload", err)
	}
	path, err := s.store.Path(name)
	if err != nil {
		return nil, s.fail(ctx, "save upload", err)
	}

	// голос -> текст
	text, err := s.stt.Transcribe(ctx, path)
	if err != nil {
		return nil, s.fail(ctx, "transcribe "+name, err)
	}
	log.Printf("[voice] transcribed %s: %q", name, text)

	var translations []translate.Translation
	if s.parallel {
		translations, err = s.translateParallel(ctx, text)
	} else {
		translations, err = s.translator.TranslateAll(ctx, text, s.langs)
	}
	if err != nil {
		return nil, s.fail(ctx, "translate "+name, err)
	}
	log.Printf("[voice] translations done (%d)", len(translations))

	// перевод -> голос
	var audio []ports.AudioFile
	if s.parallel {
		audio, err = s.synthesizeParallel(ctx, translations)
	} else {
		audio, err = s.synthesizeAll(ctx, translations)
	}
	if err != nil {
		return nil, s.fail(ctx, "synthesize "+name, err)
	}

	log.Printf("[voice][%.1fs] done %s", time.Since(start).Seconds(), name)
	return &ports.VoiceResult{Transcript: text, Audio: audio}, nil
}

func (s *voiceService) synthesizeAll(ctx context.Context, translations []translate.Translation) ([]ports.AudioFile, error) {
	out := make([]ports.AudioFile, 0, len(translations))
	for _, tr := range translations {
		f, err := s.synthesize(ctx, tr)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *voiceService) translateParallel(ctx context.Context, text string) ([]translate.Translation, error) {
	out := make([]translate.Translation, len(s.langs))

	g, gctx := errgroup.WithContext(ctx)
	for i, lang := range s.langs {
		g.Go(func() error {
			tr, err := s.translator.Translate(gctx, text, lang)
			if err != nil {
				return err
			}
			out[i] = tr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *voiceService) synthesizeParallel(ctx context.Context, translations []translate.Translation) ([]ports.AudioFile, error) {
	out := make([]ports.AudioFile, len(translations))

	g, gctx := errgroup.WithContext(ctx)
	for i, tr := range translations {
		g.Go(func() error {
			f, err := s.synthesize(gctx, tr)
			if err != nil {
				return err
			}
			out[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// При ошибке уже записанный файл остаётся на диске.
func (s *voiceService) synthesize(ctx context.Context, tr translate.Translation) (ports.AudioFile, error) {
	log.Printf("[voice] synthesizing %s: %q", tr.Language.Label, tr.Text)

	name, w, err := s.store.Create(ctx, tr.Language.Label)
	if err != nil {
		return ports.AudioFile{}, err
	}

	err = s.tts.Synthesize(ctx, tr.Text, w)
	if cerr := w.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close audio file: %w", cerr)
	}
	if err != nil {
		return ports.AudioFile{}, err
	}

	log.Printf("[voice] saved speech %s", name)
	return ports.AudioFile{Label: tr.Language.Label, FileName: name}, nil
}

// fail: алерт уходит в фоне, ответ клиенту его не ждёт.
func (s *voiceService) fail(ctx context.Context, stage string, err error) error {
	log.Printf("[voice] %s fail: %v", stage, err)
	if s.notifier != nil {
		go func(ctx context.Context) {
			_ = s.notifier.Notify(ctx, err, "stage: "+stage)
		}(context.WithoutCancel(ctx))
	}
	return err
}
