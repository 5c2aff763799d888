// Package server exposes the layout operations as an HTTP JSON API.
//
// # Endpoints
//
//	GET  /healthz       build info
//	POST /v1/compact    compact a layout
//	POST /v1/move       move one widget and cascade
//	POST /v1/resize     resize one widget
//	POST /v1/remove     remove one widget
//	POST /v1/diff       widgets present in only one of two layouts
//	POST /v1/geometry   pixel rectangles, and pixel to grid conversion
//
// Operation requests carry the layout plus the operation fields of
// [pipeline.Options]:
//
//	{"layout": [{"id": "a", "x": 0, "y": 0, "width": 4, "height": 2}],
//	 "id": "a", "x": 4, "grid": {"columns": 12, "packing": true}}
//
// A request without a grid block uses the server's configured grid.
// Errors are reported as {"error": {"code", "message"}} with the status
// chosen by [httputil.StatusFor].
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/dashgrid/pkg/config"
	"github.com/matzehuels/dashgrid/pkg/observability"
	"github.com/matzehuels/dashgrid/pkg/pipeline"
)

// RequestTimeout bounds the time spent on one request.
const RequestTimeout = 30 * time.Second

// Server serves the layout API.
type Server struct {
	runner *pipeline.Runner
	grid   config.Grid
	logger *log.Logger
	router chi.Router
}

// New creates a server that runs operations with runner. Requests that do
// not specify a grid use g. A nil logger discards output.
func New(runner *pipeline.Runner, g config.Grid, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{runner: runner, grid: g, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/compact", s.handleOperation(pipeline.OpCompact))
		r.Post("/move", s.handleOperation(pipeline.OpMove))
		r.Post("/resize", s.handleOperation(pipeline.OpResize))
		r.Post("/remove", s.handleOperation(pipeline.OpRemove))
		r.Post("/diff", s.handleDiff)
		r.Post("/geometry", s.handleGeometry)
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != http.ErrServerClosed {
		return err
	}
	return nil
}

// observe logs each request and reports it to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
