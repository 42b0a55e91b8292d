// Package server exposes sessions over HTTP: a JSON API, a small HTML chat
// page, Prometheus metrics and a health check.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/portfolioai/ai/agents/orchestrator"
	"github.com/hrygo/portfolioai/ai/metrics"
	"github.com/hrygo/portfolioai/ai/session"
	"github.com/hrygo/portfolioai/internal/profile"
)

// Dependencies are the services the server routes to.
type Dependencies struct {
	Registry *orchestrator.Registry
	Sessions *session.Manager
	// Metrics is optional; without it /metrics is not mounted.
	Metrics *metrics.PrometheusExporter
}

type Server struct {
	Profile  *profile.Profile
	Registry *orchestrator.Registry
	Sessions *session.Manager
	Metrics  *metrics.PrometheusExporter

	echoServer *echo.Echo
	cleanup    *session.CleanupJob
	pages      *pageRenderer
}

// NewServer builds the echo instance and registers every route.
func NewServer(_ context.Context, prof *profile.Profile, deps Dependencies) (*Server, error) {
	if deps.Registry == nil || deps.Sessions == nil {
		return nil, errors.New("server: registry and session manager are required")
	}
	pages, err := newPageRenderer()
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s := &Server{
		Profile:  prof,
		Registry: deps.Registry,
		Sessions: deps.Sessions,
		Metrics:  deps.Metrics,
		pages:    pages,
		cleanup: session.NewCleanupJob(deps.Sessions, session.CleanupConfig{
			IdleTimeout: time.Duration(prof.IdleTimeoutMinutes) * time.Minute,
		}),
	}

	e := echo.New()
	e.Debug = prof.IsDev()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("4M"))
	s.echoServer = e

	e.GET("/healthz", s.health)
	s.registerAPI(e.Group("/api"))
	s.registerChat(e)
	if s.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))
	}
	return s, nil
}

// Start begins listening and serving in the background. Listen errors are
// returned; serve errors are logged.
func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	s.echoServer.Listener = listener

	if err := s.cleanup.Start(ctx); err != nil {
		_ = listener.Close()
		return err
	}

	go func() {
		if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to serve", "error", err)
		}
	}()
	slog.Info("server started", "addr", listener.Addr().String())
	return nil
}

// Addr returns the bound listener address, or "" before Start.
func (s *Server) Addr() string {
	if s.echoServer.Listener == nil {
		return ""
	}
	return s.echoServer.Listener.Addr().String()
}

// Shutdown stops the cleanup job and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	s.cleanup.Stop()
	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()))
	}
	slog.Info("server stopped properly")
}

// ServeHTTP lets the server be mounted or tested without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echoServer.ServeHTTP(w, r)
}

func (s *Server) defaultWorkflow() string {
	if s.Profile.Workflow != "" {
		return s.Profile.Workflow
	}
	return orchestrator.WorkflowEvents
}

// httpError maps domain errors onto status codes.
func httpError(err error) error {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, err.Error())
	case errors.Is(err, session.ErrEmptyMessage), errors.Is(err, orchestrator.ErrUnknownWorkflow):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
