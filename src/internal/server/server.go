// Package server serves a certificate directory over HTTP: the tidied page,
// its static files, and JSON endpoints backed by the citation panel and page
// viewer controllers.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"certview/src/internal/citation"
	"certview/src/internal/log"
	"certview/src/internal/metadata"
	"certview/src/internal/panel"
)

const shutdownTimeout = 5 * time.Second

// Config wires a Server.
type Config struct {
	// Dir is the certificate directory.
	Dir string
	// Pages is the ordered page set served by /api/pages.
	Pages []string
	// Resource is the metadata document name; empty uses metadata.DefaultResource.
	Resource string
	// Service resolves and formats citations.
	Service citation.Service
	// Source overrides the metadata source built from Dir and Resource.
	Source panel.MetadataSource
	Logger *slog.Logger
}

// Server is the HTTP certificate page.
type Server struct {
	cfg    Config
	router chi.Router
}

// New builds the router.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Discard()
	}
	if cfg.Source == nil {
		var opts []metadata.Option
		if cfg.Resource != "" {
			opts = append(opts, metadata.WithResource(cfg.Resource))
		}
		cfg.Source = metadata.NewClient(cfg.Dir, opts...)
	}
	s := &Server{cfg: cfg}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/", s.handleIndex)
	r.Get("/index.html", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Get("/citation", s.handleCitation)
		r.Get("/pages", s.handlePages)
	})
	r.Handle("/*", http.FileServer(http.Dir(cfg.Dir)))

	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.cfg.Logger.Info("listening", "addr", addr, "dir", s.cfg.Dir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.cfg.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()))
	})
}
