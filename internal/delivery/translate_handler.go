package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/voice_translator/internal/ports"
)

const (
	maxMultipartMemory = 32 << 20
	serviceName        = "voice_translator"
)

type TranslateHandler struct {
	voiceService      ports.VoiceService
	publicBaseURL     string
	includeTranscript bool
	maxMemory         int64
	log               *logger.ZapLogger
}

func NewTranslateHandler(
	voiceService ports.VoiceService,
	publicBaseURL string,
	includeTranscript bool,
	log *logger.ZapLogger,
) *TranslateHandler {
	return &TranslateHandler{
		voiceService:      voiceService,
		publicBaseURL:     strings.TrimRight(publicBaseURL, "/"),
		includeTranscript: includeTranscript,
		maxMemory:         maxMultipartMemory,
		log:               log,
	}
}

// POST /translate
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	// размер и тип не проверяем, это забота сервиса распознавания
	// ошибки диска (временные файлы multipart) это 500, остальное 400
	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		h.uploadError(w, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.uploadError(w, err)
		return
	}
	defer file.Close()

	// обрыв соединения клиентом конвейер не останавливает
	ctx := context.WithoutCancel(r.Context())

	res, err := h.voiceService.Process(ctx, file)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "translate pipeline failed", Service: serviceName, Error: err})
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	base := h.baseURL(r)
	out := make(map[string]string, len(res.Audio)+1)
	for _, a := range res.Audio {
		out[a.Label] = base + "/audio/" + url.PathEscape(a.FileName)
	}
	if h.includeTranscript {
		out["transcript"] = res.Transcript
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *TranslateHandler) uploadError(w http.ResponseWriter, err error) {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		h.log.Log(logger.LogEntry{Level: "error", Message: "store multipart upload", Service: serviceName, Error: err})
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.log.Log(logger.LogEntry{Level: "warn", Message: "no file part", Service: serviceName, Error: err})
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file part"})
}

func (h *TranslateHandler) baseURL(r *http.Request) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}
	return scheme + "://" + r.Host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
