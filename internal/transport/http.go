package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/upkeep/internal/domain/board"
	"github.com/rpggio/upkeep/internal/domain/report"
	"github.com/rpggio/upkeep/internal/export"
)

// Exporter renders CSV downloads.
type Exporter interface {
	Export(ctx context.Context, req export.Request) (*export.File, error)
}

// Config wires the HTTP surface.
type Config struct {
	// MCP serves the streamable MCP endpoint. It authenticates on its own.
	MCP http.Handler
	// Exports backs the CSV download routes.
	Exports Exporter
	// Location interprets start and end dates. Nil means UTC.
	Location *time.Location
	// Auth guards the download routes when set.
	Auth   func(http.Handler) http.Handler
	Logger *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	exports  Exporter
	location *time.Location
	logger   *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(requestLogger(cfg.Logger))
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	srv := &Server{exports: cfg.Exports, location: loc, logger: cfg.Logger}

	r.Get("/health", srv.handleHealth)

	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	if cfg.Exports != nil {
		r.Group(func(r chi.Router) {
			if cfg.Auth != nil {
				r.Use(cfg.Auth)
			}
			r.Get("/export/backup.csv", srv.handleExport(export.KindBackup))
			r.Get("/export/report.csv", srv.handleExport(export.KindRange))
			r.Get("/export/compliance.csv", srv.handleExport(export.KindCompliance))
		})
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleExport(kind export.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		req := export.Request{Kind: kind, Quote: q.Get("quote") != "" && q.Get("quote") != "false"}

		if kind != export.KindBackup {
			scope, err := report.ParseScope(q.Get("scope"), q.Get("id"))
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			start, err := report.ParseDate(q.Get("start"), s.location)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			end, err := report.ParseDate(q.Get("end"), s.location)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			req.Range = report.RangeRequest{Scope: scope, Start: start, End: end}
		}

		file, err := s.exports.Export(r.Context(), req)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, board.ErrStoreUnavailable) {
				status = http.StatusServiceUnavailable
			}
			if s.logger != nil {
				s.logger.Error("export failed", "kind", kind, "error", err)
			}
			http.Error(w, http.StatusText(status), status)
			return
		}

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
		w.Header().Set("Content-Length", strconv.Itoa(len(file.Body)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(file.Body)
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
