// Package http provides the REST API of the UOM service.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/config"
)

// Server represents the HTTP server.
type Server struct {
	server *http.Server
	config *config.ServerConfig
}

// NewServer wraps handler with CORS and creates the HTTP server.
func NewServer(cfg *config.Config, handler http.Handler) *Server {
	origins := cfg.CORS.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler(handler)

	return &Server{
		config: &cfg.Server,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler:           corsHandler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       cfg.Server.ReadTimeout,
			WriteTimeout:      cfg.Server.WriteTimeout,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Start serves until Stop is called. A graceful stop returns nil.
func (s *Server) Start() error {
	log.Info().
		Int("port", s.config.HTTPPort).
		Msg("HTTP server starting")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Stop stops the HTTP server gracefully.
func (s *Server) Stop(ctx context.Context) error {
	log.Info().Msg("HTTP server stopping...")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	log.Info().Msg("HTTP server stopped")
	return nil
}
