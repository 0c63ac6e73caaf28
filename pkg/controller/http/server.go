package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zaphist/pkg/parser"
	"github.com/secmon-lab/zaphist/pkg/service/report"
	"github.com/secmon-lab/zaphist/pkg/usecase"
	"github.com/secmon-lab/zaphist/pkg/utils/apperr"
)

// Config holds HTTP server configuration
type Config struct {
	Addr             string
	MaxDocumentBytes int
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router   chi.Router
	reportUC usecase.ReportUseCase
	renderer *report.Renderer
	config   Config
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, config Config, reportUC usecase.ReportUseCase, renderer *report.Renderer) *Server {
	if config.MaxDocumentBytes <= 0 {
		config.MaxDocumentBytes = parser.DefaultMaxDocumentBytes
	}
	if renderer == nil {
		renderer = report.New()
	}

	router := chi.NewRouter()
	s := &Server{
		Server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:   router,
		reportUC: reportUC,
		renderer: renderer,
		config:   config,
	}

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)

	router.Route("/api", func(r chi.Router) {
		r.With(IngestionIDMiddleware).Post("/reports", s.handleIngest)
		r.Get("/snapshots", s.handleListSnapshots)
		r.Get("/snapshots/{id}", s.handleGetSnapshot)
		r.Get("/snapshots/{id}/comparison", s.handleComparison)
		r.Get("/project", s.handleGetProject)
	})

	return s
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "zaphist",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}

// statusOf maps an error to the HTTP status returned to the client
func statusOf(err error) int {
	switch apperr.Classify(err) {
	case apperr.ClassParse, apperr.ClassValidation, apperr.ClassDuplicateKey:
		return http.StatusBadRequest
	case apperr.ClassNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// handleUseCaseError logs err and writes the matching error response
func handleUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	apperr.Handle(r.Context(), err)
	writeError(w, err, statusOf(err))
}

// writeError writes an error response
func writeError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	var message string
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else {
		message = err.Error()
	}

	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"class": string(apperr.Classify(err)),
	}); err != nil {
		// Can't get context here, so use background context
		ctxlog.From(context.Background()).Error("Failed to encode error response", "error", err)
	}
}

// writeJSON writes v as a JSON response
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}
