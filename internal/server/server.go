package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/vibe-gaming/geodirectory/internal/config"
)

type Server struct {
	httpServer *http.Server
}

func NewServer(cfg config.HttpServer, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: cfg.Timeout,
			ReadTimeout:       cfg.Timeout,
			WriteTimeout:      cfg.Timeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
	}
}

// Run blocks until the server fails or is stopped. A stop is not an error.
func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
