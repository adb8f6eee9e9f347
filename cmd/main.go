package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/voice_translator/internal/config"
	"github.com/Vovarama1992/voice_translator/internal/delivery"
	"github.com/Vovarama1992/voice_translator/internal/domain"
	"github.com/Vovarama1992/voice_translator/internal/error_notificator"
	"github.com/Vovarama1992/voice_translator/internal/infra"
	"github.com/Vovarama1992/voice_translator/internal/speech"
	"github.com/Vovarama1992/voice_translator/internal/translate"

	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / CONFIG
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	store, err := infra.NewLocalAudioStore(cfg.OutputDir)
	if err != nil {
		log.Fatalf("failed to init output dir: %v", err)
	}

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	errInfra, err := error_notificator.NewTelegramInfra(cfg.Telegram)
	if err != nil {
		log.Fatalf("failed to init error notificator: %v", err)
	}
	errService := error_notificator.NewService(errInfra)

	// =========================================================================
	// CLIENTS (STT / TRANSLATE / TTS)
	// =========================================================================

	speechService, err := speech.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("failed to init speech: %v", err)
	}

	translateService, err := translate.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("failed to init translator: %v", err)
	}

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	voiceService := domain.NewVoiceService(
		speechService, // STT
		speechService, // ElevenLabs
		translateService,
		store,
		cfg.Languages,
		cfg.Parallel,
		errService,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	translateHandler := delivery.NewTranslateHandler(voiceService, cfg.PublicBaseURL, cfg.IncludeTranscript, zl)
	audioHandler := delivery.NewAudioHandler(store, zl)

	r := delivery.NewRouter(translateHandler, audioHandler, cfg.CORSOrigins)

	// =========================================================================
	// START SERVER
	// =========================================================================

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr + ", stt=" + cfg.STTProvider + ", translate=" + cfg.TranslateProvider,
		Service: "voice_translator",
	})

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
