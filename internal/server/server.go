// Package server exposes the scrape and extraction pipeline over HTTP,
// along with the single-page UI that drives it.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/KI-IAN/llm-web-scrapper/internal/config"
	"github.com/KI-IAN/llm-web-scrapper/internal/extract"
	"github.com/KI-IAN/llm-web-scrapper/internal/model"
	"github.com/KI-IAN/llm-web-scrapper/internal/scrape"
)

// Server serves the web UI and the JSON API.
type Server struct {
	port      int
	scraper   *scrape.Dispatcher
	extractor *extract.Service
}

// New creates a Server over the given pipeline components.
func New(cfg config.ServerConfig, scraper *scrape.Dispatcher, extractor *extract.Service) *Server {
	return &Server{
		port:      cfg.Port,
		scraper:   scraper,
		extractor: extractor,
	}
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Get("/api/models", s.handleModels)
	r.Post("/api/scrape", s.handleScrape)
	r.Post("/api/extract", s.handleExtract)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("starting server",
		zap.Int("port", s.port),
		zap.Any("backends", s.scraper.Available()),
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server listen")
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type modelsResponse struct {
	Models   []model.ModelChoice  `json:"models"`
	Backends []model.Backend      `json:"backends"`
	Formats  []model.OutputFormat `json:"formats"`
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, modelsResponse{
		Models:   s.extractor.Choices(),
		Backends: s.scraper.Available(),
		Formats:  model.Formats(),
	})
}

type scrapeRequest struct {
	URL     string `json:"url"`
	Backend string `json:"backend"`
}

type scrapeResponse struct {
	Success   bool   `json:"success"`
	Content   string `json:"content,omitempty"`
	Title     string `json:"title,omitempty"`
	Backend   string `json:"backend,omitempty"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	backend, err := model.ParseBackend(req.Backend)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.scraper.Scrape(r.Context(), model.ScrapeRequest{
		URL:     req.URL,
		Backend: backend,
	})
	if err != nil {
		zap.L().Warn("scrape request failed",
			zap.String("url", req.URL),
			zap.String("backend", req.Backend),
			zap.Error(err),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, scrapeResponse{
		Success:   true,
		Content:   result.Content,
		Title:     result.Title,
		Backend:   string(result.Backend),
		ElapsedMS: result.Elapsed.Milliseconds(),
	})
}

type extractRequest struct {
	Content  string `json:"content"`
	Query    string `json:"query"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Format   string `json:"format"`
}

type extractResponse struct {
	Success   bool   `json:"success"`
	Answer    string `json:"answer,omitempty"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	provider, err := model.ParseProvider(req.Provider)
	if err != nil {
		writeError(w, err)
		return
	}
	format, err := model.ParseFormat(req.Format)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.extractor.Extract(r.Context(), model.ExtractionRequest{
		Content:  req.Content,
		Query:    req.Query,
		Provider: provider,
		Model:    req.Model,
		Format:   format,
	})
	if err != nil {
		zap.L().Warn("extract request failed",
			zap.String("model", req.Model),
			zap.String("provider", req.Provider),
			zap.Error(err),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{
		Success:   true,
		Answer:    result.Answer,
		Provider:  string(result.Provider),
		Model:     result.Model,
		ElapsedMS: result.Elapsed.Milliseconds(),
	})
}
