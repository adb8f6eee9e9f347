package delivery

import (
	"errors"
	"net/http"
	"os"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"

	"github.com/Vovarama1992/voice_translator/internal/ports"
)

type AudioHandler struct {
	store ports.AudioStore
	log   *logger.ZapLogger
}

func NewAudioHandler(store ports.AudioStore, log *logger.ZapLogger) *AudioHandler {
	return &AudioHandler{store: store, log: log}
}

// GET /audio/{filename}
func (h *AudioHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")

	path, err := h.store.Path(name)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			h.log.Log(logger.LogEntry{Level: "error", Message: "audio lookup failed", Service: serviceName, Error: err})
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": ports.ErrNotFound.Error()})
		return
	}

	f, err := os.Open(path)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": ports.ErrNotFound.Error()})
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	http.ServeContent(w, r, name, info.ModTime(), f)
}
