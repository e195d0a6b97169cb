package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"flf-coach/internal/handlers"
	"flf-coach/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	systemHandler *handlers.SystemHandler,
	log zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS)

	r.Get("/health", systemHandler.Health)
	r.Get("/debug", systemHandler.Debug)
	r.Post("/chat", chatHandler.Chat)

	return r
}
