package server

import (
	"net/http"

	"github.com/brightsmile/clinassist/internal/api"
	"github.com/brightsmile/clinassist/internal/api/handlers"
	"github.com/brightsmile/clinassist/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	ChatHandler      *handlers.ChatHandler
	BookingHandler   *handlers.BookingHandler
	KnowledgeHandler *handlers.KnowledgeHandler
	ClinicHandler    *handlers.ClinicHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/chat", cfg.ChatHandler.Chat)

	r.Route("/slots", func(r chi.Router) {
		r.Get("/", cfg.BookingHandler.List)
		r.Get("/dates", cfg.BookingHandler.Dates)
		r.Post("/{id}/book", cfg.BookingHandler.Book)
	})

	r.Route("/knowledge", func(r chi.Router) {
		r.Post("/", cfg.KnowledgeHandler.Append)
		r.Get("/stats", cfg.KnowledgeHandler.Stats)
	})

	r.Get("/faqs", cfg.ClinicHandler.FAQs)
	r.Get("/clinic", cfg.ClinicHandler.Info)

	return r
}
