// Package server wires the echo HTTP server around the assistant pipeline.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/hearthside/hearth/internal/profile"
	"github.com/hearthside/hearth/plugin/ai"
	"github.com/hearthside/hearth/plugin/ai/router"
	"github.com/hearthside/hearth/plugin/ai/timeparse"
	"github.com/hearthside/hearth/server/middleware"
	apiv1 "github.com/hearthside/hearth/server/router/api/v1"
	"github.com/hearthside/hearth/server/service/assistant"
	"github.com/hearthside/hearth/server/service/schedule"
	"github.com/hearthside/hearth/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
}

// NewServer assembles the assistant pipeline and mounts it on echo. The
// language model is optional: without it the assistant runs entirely on the
// rule-based classifier.
func NewServer(ctx context.Context, profile *profile.Profile, storeInstance *store.Store) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.NewRateLimiter(5, 10).Middleware())

	var llm ai.LLMService
	if profile.IsAIEnabled() {
		svc, err := ai.NewOpenAIService(ai.ConfigFromProfile(profile))
		if err != nil {
			slog.Warn("llm disabled", "error", err)
		} else {
			llm = svc
			slog.Info("llm enabled", "provider", profile.AIProvider, "model", profile.AIModel)
		}
	}

	parser := timeparse.NewParser()
	if profile.Timezone != "" {
		loc, err := time.LoadLocation(profile.Timezone)
		if err != nil {
			slog.Warn("invalid timezone, using server local time", "timezone", profile.Timezone, "error", err)
		} else {
			parser = timeparse.NewParserIn(loc)
		}
	}
	classifier := router.NewService(llm, parser)
	detector := schedule.NewDetector(storeInstance)
	assistantService := assistant.NewService(storeInstance, classifier, detector, llm, parser)

	apiv1.NewAPIV1Service(profile, storeInstance, assistantService, detector).Register(e)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": profile.Version})
	})

	return &Server{
		Profile:    profile,
		Store:      storeInstance,
		echoServer: e,
	}, nil
}

// Start begins serving. It blocks until the listener fails or is shut down.
func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", "address", address, "mode", s.Profile.Mode)
	if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to start server")
	}
	return nil
}

// Shutdown drains in-flight requests and closes the store.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
	}
	slog.Info("server shutdown complete")
}
