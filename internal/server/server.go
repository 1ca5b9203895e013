// Package server exposes the extractor and the download proxy over HTTP.
package server

import (
	"context"
	_ "embed"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"kwaigrab/internal/httputil"
	"kwaigrab/internal/provider"
)

//go:embed index.html
var indexHTML []byte

const shutdownTimeout = 10 * time.Second

// Server routes API requests to a provider and the download proxy.
type Server struct {
	provider provider.Provider
	client   *httputil.Client
	engine   *gin.Engine
}

// New builds the router. client is used for proxied downloads.
func New(p provider.Provider, client *httputil.Client) *Server {
	s := &Server{
		provider: p,
		client:   client,
		engine:   gin.New(),
	}

	s.engine.Use(requestLogger(), recovery(), cors.Default())

	s.engine.GET("/", s.handleIndex)
	api := s.engine.Group("/api")
	api.POST("/kwai", s.handleKwai)
	api.GET("/download", s.handleDownload)
	api.GET("/status", s.handleStatus)

	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
