package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/redline/internal/ai"
	"github.com/redline/internal/engine"
	"github.com/redline/internal/llm"
	"github.com/redline/internal/logging"
	"github.com/redline/internal/prompts"
	"github.com/redline/pkg/models"
)

// Server is a thin HTTP front for the resolution engine. Handlers only
// decode and encode the boundary types; all semantics live in the engine.
type Server struct {
	echo     *echo.Echo
	provider ai.Provider // nil when no model is configured
	log      zerolog.Logger
	port     int
}

// NewServer wires the routes. provider may be nil; /api/v1/suggest then
// answers 503 while /api/v1/resolve keeps working.
func NewServer(port int, provider ai.Provider, log zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:     e,
		provider: provider,
		log:      log,
		port:     port,
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	v1 := e.Group("/api/v1")
	v1.POST("/resolve", s.handleResolve)
	v1.POST("/suggest", s.handleSuggest)

	return s
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// handleResolve runs one batch of already-parsed proposed edits through the
// engine.
func (s *Server) handleResolve(c echo.Context) error {
	var req models.ResolveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
	}

	runLog, runID := logging.ForRun(s.log)
	result := engine.New(runLog).Resolve(req)

	c.Response().Header().Set("X-Redline-Run", runID)
	return c.JSON(http.StatusOK, result)
}

// handleSuggest drives the full loop: prompt, model call, response parsing,
// resolution.
func (s *Server) handleSuggest(c echo.Context) error {
	if s.provider == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "no model provider configured")
	}

	var req models.SuggestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
	}
	if len(req.Paragraphs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "paragraphs are required")
	}

	runLog, runID := logging.ForRun(s.log)
	c.Response().Header().Set("X-Redline-Run", runID)

	prompt, err := prompts.Build(req.Paragraphs, req.Comments, req.Instruction)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	raw, err := s.provider.Suggest(c.Request().Context(), prompt)
	if err != nil {
		runLog.Error().Err(err).Msg("model call failed")
		return echo.NewHTTPError(http.StatusBadGateway, fmt.Sprintf("model call failed: %v", err))
	}

	proposed, _, err := llm.ParseProposedEdits(raw, runLog)
	if err != nil {
		runLog.Error().Err(err).Msg("model response unparseable")
		return echo.NewHTTPError(http.StatusBadGateway, fmt.Sprintf("model response unparseable: %v", err))
	}

	result := engine.New(runLog).Resolve(models.ResolveRequest{
		Paragraphs:    req.Paragraphs,
		Comments:      req.Comments,
		ProposedEdits: proposed,
	})
	return c.JSON(http.StatusOK, result)
}

// Start serves until interrupted, then shuts down gracefully.
func (s *Server) Start() error {
	go func() {
		addr := fmt.Sprintf(":%d", s.port)
		s.log.Info().Str("addr", addr).Msg("api server listening")
		if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
			s.log.Fatal().Err(err).Msg("api server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(ctx)
}
