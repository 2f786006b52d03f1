// Package server exposes the compiled report as a read-only JSON API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cleared-dev/rgs/internal/report"
)

type Server struct {
	source  report.Source
	builder *report.Builder
	router  chi.Router
	addr    string
	log     *slog.Logger
}

// New creates a Server that rebuilds the report from source on every
// request, so edits to the underlying catalog or balances show up without a
// restart.
func New(source report.Source, builder *report.Builder, addr string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	s := &Server{source: source, builder: builder, router: r, addr: addr, log: log}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/chart", s.listChart)
		r.Get("/chart/{code}", s.getAccount)
		r.Get("/tree", s.getTree)
		r.Get("/statements", s.listStatements)
		r.Get("/statements/{kind}", s.getStatement)
		r.Get("/audit", s.getAudit)
	})

	return s
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.router, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("rgs server listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}
