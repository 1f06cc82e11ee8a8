// Package api exposes the HTTP interface for the analysis service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lexiscan/lexiscan/internal/engine"
	"github.com/lexiscan/lexiscan/internal/pipeline"
	"github.com/lexiscan/lexiscan/internal/report"
	"github.com/lexiscan/lexiscan/internal/source"
)

// Server wires HTTP handlers to the pipeline.
type Server struct {
	router   chi.Router
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
	timeout  time.Duration
}

// NewServer constructs a Server with middleware and routes.
func NewServer(p *pipeline.Pipeline, logger *zap.Logger, timeout time.Duration) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	s := &Server{pipeline: p, logger: logger, timeout: timeout}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(timeoutMiddleware(timeout))

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", s.analyze)
		r.Get("/languages", s.languages)
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) languages(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"languages": engine.SupportedLanguages()})
}

type analyzeRequest struct {
	Text             string   `json:"text"`
	Language         string   `json:"language"`
	Enabled          []string `json:"enabled"`
	Disabled         []string `json:"disabled"`
	EnableEmbeddings *bool    `json:"enable_embeddings"`
	EnableSentiment  *bool    `json:"enable_sentiment"`
	AutoInstall      bool     `json:"auto_install"`
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	cfg := pipeline.Config{
		Enabled:          req.Enabled,
		Disabled:         req.Disabled,
		EnableEmbeddings: req.EnableEmbeddings,
		EnableSentiment:  req.EnableSentiment,
		LanguageOverride: req.Language,
		AutoInstall:      req.AutoInstall,
	}
	run, err := s.pipeline.AnalyzeText(r.Context(), req.Text, cfg)
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}

	content := &source.Content{
		Text:      req.Text,
		FetchedAt: time.Now().UTC(),
		WordCount: len(strings.Fields(req.Text)),
		CharCount: len([]rune(req.Text)),
	}
	content.Language = run.Language.Code
	content.LanguageConfidence = run.Language.Confidence
	s.writeJSON(w, http.StatusOK, report.Build(content, run))
}

// statusFor maps pipeline failures onto HTTP status codes.
func statusFor(err error) int {
	var (
		unsupported  *engine.UnsupportedLanguageError
		notInstalled *engine.ModelNotInstalledError
		cancelled    *pipeline.PipelineCancelledError
	)
	switch {
	case errors.As(err, &unsupported), errors.As(err, &notInstalled):
		return http.StatusUnprocessableEntity
	case errors.As(err, &cancelled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.status),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

func recoverMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered", zap.Any("panic", rec))
					http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func timeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, "request timed out")
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

type requestIDKey struct{}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write JSON failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
