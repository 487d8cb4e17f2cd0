package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Ramsu24/D-Solar-sub001/cmd/dsolar-api/handlers"
	"github.com/Ramsu24/D-Solar-sub001/cmd/dsolar-api/middleware"
	"github.com/Ramsu24/D-Solar-sub001/internal/app"
	"github.com/Ramsu24/D-Solar-sub001/internal/conversation"
)

// NewRouter creates the API router with all routes configured.
func NewRouter(a *app.App) http.Handler {
	cfg := a.Config
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(a.Log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(chimiddleware.Timeout(requestTimeout(cfg.Server.RequestTimeout)))

	health := handlers.NewHealthHandler(cfg.Observability.ServiceName, a.Store)
	r.Get("/health", health.Health)
	r.Get("/ready", health.Ready)

	if a.Metrics != nil {
		r.Handle("/metrics", a.Metrics.Handler())
	}

	history := conversation.NewHistory(a.Cache, cfg.Messenger.HistoryTTL, cfg.Messenger.HistoryLimit)
	chatHandler := handlers.NewChatHandler(a.Log, a.Router, history)
	knowledgeHandler := handlers.NewKnowledgeHandler(a.Log, a.Store, a.Knowledge.Invalidate)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatHandler.Chat)
		r.Post("/messenger", chatHandler.Messenger)

		r.Route("/faqs", func(r chi.Router) {
			r.Get("/", knowledgeHandler.ListFAQs)
			r.Post("/", knowledgeHandler.CreateFAQ)
			r.Get("/{id}", knowledgeHandler.GetFAQ)
			r.Put("/{id}", knowledgeHandler.UpdateFAQ)
			r.Delete("/{id}", knowledgeHandler.DeleteFAQ)
		})

		r.Route("/packages", func(r chi.Router) {
			r.Get("/", knowledgeHandler.ListPackages)
			r.Post("/", knowledgeHandler.CreatePackage)
			r.Get("/{code}", knowledgeHandler.GetPackage)
			r.Put("/{code}", knowledgeHandler.UpdatePackage)
			r.Delete("/{code}", knowledgeHandler.DeletePackage)
		})
	})

	return r
}

func requestTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 55 * time.Second
	}
	return d
}
