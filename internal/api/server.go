// Package api provides the nodeflow HTTP API.
//
// The server exposes the node-type catalog, graph storage, and the pipeline
// operations (validate, execute, render) over JSON. Errors carry the
// machine-readable codes from pkg/errors, mapped onto HTTP status codes.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/parametriclab/nodeflow/pkg/pipeline"
)

// Server is the HTTP API server. It delegates all graph work to a pipeline
// runner, so CLI and API behavior stay identical.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// NewServer creates an API server around the given runner. A nil runner gets
// the runner defaults (memory store, built-in kinds); a nil logger falls
// back to log.Default().
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/types", func(r chi.Router) {
			r.Get("/", s.handleListTypes)
			r.Get("/search", s.handleSearchTypes)
		})
		r.Route("/graphs", func(r chi.Router) {
			r.Get("/", s.handleListGraphs)
			r.Post("/", s.handleCreateGraph)
			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", s.handleGetGraph)
				r.Put("/", s.handlePutGraph)
				r.Delete("/", s.handleDeleteGraph)
				r.Post("/validate", s.handleValidateGraph)
				r.Post("/execute", s.handleExecuteGraph)
				r.Get("/render", s.handleRenderGraph)
			})
		})
	})

	return r
}

// logRequests logs one line per request through the server's logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

// Serve runs the HTTP server on addr until ctx is canceled, then shuts down
// gracefully with a short drain window.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
