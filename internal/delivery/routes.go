package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func NewRouter(
	h *TranslateHandler,
	hAudio *AudioHandler,
	corsOrigins []string,
) chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	RegisterRoutes(r, h, hAudio)
	return r
}

func RegisterRoutes(
	r chi.Router,
	h *TranslateHandler,
	hAudio *AudioHandler,
) {
	r.Group(func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		pr.Post("/translate", h.Translate)
		pr.Get("/audio/{filename}", hAudio.Get)

		pr.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(200)
			w.Write([]byte("pong"))
		})
	})
}
