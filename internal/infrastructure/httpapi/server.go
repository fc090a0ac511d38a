// Package httpapi exposes the explainer and briefing operations over HTTP.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eazyhealth/internal/usecase"
)

// Server hosts the REST API.
type Server struct {
	explainer *usecase.ExplainerService
	briefings *usecase.BriefingService
	logger    *slog.Logger
	http      *http.Server
}

// NewServer builds the router and wires the application services.
func NewServer(addr string, explainer *usecase.ExplainerService, briefings *usecase.BriefingService, logger *slog.Logger) *Server {
	s := &Server{
		explainer: explainer,
		briefings: briefings,
		logger:    logger,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	api.POST("/explain", s.handleExplain)
	api.GET("/briefings", s.handleListBriefings)
	api.GET("/briefings/:slug", s.handleGetBriefing)
	api.POST("/briefings/generate", s.handleGenerateBriefing)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}
