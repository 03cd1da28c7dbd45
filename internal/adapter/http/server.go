// Package http exposes the service's HTTP surface: health and metrics
// endpoints, the llms.txt navigation document, and the catalog and per-feed
// JSON APIs.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/californiaroad/cwwp-catalog/internal/catalog"
	"github.com/californiaroad/cwwp-catalog/internal/domain"
	"github.com/californiaroad/cwwp-catalog/internal/feed"
)

// Server exposes the catalog over HTTP.
type Server struct {
	httpServer *http.Server
	store      *catalog.Store
	fetcher    catalog.Fetcher
	siteURL    string
	logger     *slog.Logger
}

// NewServer creates the HTTP server and wires its routes.
func NewServer(addr string, store *catalog.Store, fetcher catalog.Fetcher, siteURL string, logger *slog.Logger) *Server {
	s := &Server{
		store:   store,
		fetcher: fetcher,
		siteURL: siteURL,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/llms.txt", s.handleDocument)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/feeds/{type}/{district}", s.handleFeed)
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.store.CheckReadiness(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleDocument(w http.ResponseWriter, _ *http.Request) {
	cat, ok := s.store.Latest()
	if !ok {
		http.Error(w, "catalog not built yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(catalog.Document(cat, s.siteURL))) //nolint:errcheck
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	cat, ok := s.store.Latest()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "catalog not built yet"})
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// feedResponse is one (type, district) feed rendered for API consumers:
// priority-sorted, normalized items.
type feedResponse struct {
	Type     domain.DataType         `json:"type"`
	District int                     `json:"district"`
	Items    []domain.NormalizedItem `json:"items"`
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	ft, ok := domain.FeedTypeByID(domain.DataType(chi.URLParam(r, "type")))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown feed type"})
		return
	}

	district, err := strconv.Atoi(chi.URLParam(r, "district"))
	if err != nil || !registeredDistrict(ft, district) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "district not published for this feed"})
		return
	}

	env, err := s.fetcher.Pull(r.Context(), ft.ID, district)
	if err != nil {
		status := http.StatusBadGateway
		msg := "upstream feed unavailable"
		if errors.Is(err, feed.ErrParse) {
			msg = "upstream feed unparseable"
		}
		s.logger.Warn("feed request failed", "type", string(ft.ID), "district", district, "error", err)
		writeJSON(w, status, map[string]string{"error": msg})
		return
	}

	items := make([]domain.NormalizedItem, 0, len(env.Data))
	for _, it := range domain.SortItems(env.Data) {
		if norm, ok := domain.Normalize(it, district); ok {
			items = append(items, norm)
		}
	}

	writeJSON(w, http.StatusOK, feedResponse{
		Type:     ft.ID,
		District: district,
		Items:    items,
	})
}

func registeredDistrict(ft domain.FeedType, district int) bool {
	for _, d := range ft.Districts {
		if d == district {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
