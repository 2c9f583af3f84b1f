// Package server exposes the contract analysis engine over an HTTP API:
// search, similarity, duplicates, clusters, statistics, conflicts,
// expirations, question answering, and report runs.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/zeyadtarek/clm-sentinel/internal/config"
	"github.com/zeyadtarek/clm-sentinel/internal/notify"
	"github.com/zeyadtarek/clm-sentinel/internal/rag"
	"github.com/zeyadtarek/clm-sentinel/internal/report"
	"github.com/zeyadtarek/clm-sentinel/internal/similarity"
	"github.com/zeyadtarek/clm-sentinel/internal/vectordb"
)

// Server is the sentinel HTTP API server.
type Server struct {
	cfg        *config.Config
	engine     *similarity.Engine
	qa         *rag.Pipeline
	store      vectordb.Store
	reports    *report.Store
	mailer     *notify.Mailer
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all dependencies. reports and mailer may be
// nil; the corresponding routes then report the feature as unavailable.
func New(cfg *config.Config, engine *similarity.Engine, qa *rag.Pipeline, store vectordb.Store, reports *report.Store, mailer *notify.Mailer) *Server {
	s := &Server{
		cfg:     cfg,
		engine:  engine,
		qa:      qa,
		store:   store,
		reports: reports,
		mailer:  mailer,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/search", s.handleSearch)
		r.Get("/similar/{id}", s.handleSimilar)
		r.Get("/duplicates", s.handleDuplicates)
		r.Get("/clusters", s.handleClusters)
		r.Get("/stats", s.handleStats)
		r.Get("/matrix", s.handleMatrix)
		r.Get("/conflicts", s.handleConflicts)
		r.Get("/expiring", s.handleExpiring)
		r.Post("/ask", s.handleAsk)
		r.Post("/reports", s.handleRunReport)
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/{id}", s.handleGetReport)
		r.Post("/reindex", s.handleReindex)
	})

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured address. Blocks until the
// server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("sentinel server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
