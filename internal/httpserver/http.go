package httpserver

import (
	"encoding/json"
	"net/http"

	"tx-mentions-bot/internal/handlers"
	"tx-mentions-bot/internal/mentions"

	"github.com/go-chi/chi/v5"
)

// NewServer creates the bot's HTTP surface: health, loop status, and the
// mentions webhook.
func NewServer(port string, h handlers.MentionsHandler, stats func() mentions.Stats) *http.Server {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(stats())
	})

	r.Post("/mentions", h.Handle)

	return &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
}
