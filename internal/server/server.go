package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sotinhq/sotin/config"
	"github.com/sotinhq/sotin/internal/agent"
	"github.com/sotinhq/sotin/memory"
)

// Server exposes the chat pipeline and memory stores over HTTP.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	echo   *echo.Echo
}

// New builds the echo instance with middleware and routes. The pipeline and
// stores are injected so tests can swap them out.
func New(cfg *config.Config, logger *zap.Logger, ag *agent.Agent, turns memory.ConversationStore, answers memory.AnswerStore) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Unified HTTP error handler with structured JSON and logging.
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		logger.Warn("http error",
			zap.Int("status", code),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.String("remote", c.RealIP()),
			zap.Error(err),
		)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]any{"error": msg})
		}
	}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Cookie"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	ch := &ChatHandler{
		Agent:        ag,
		Turns:        turns,
		Answers:      answers,
		ContextTurns: cfg.Memory.ContextTurns,
		HistoryItems: cfg.Memory.HistoryItems,
		Logger:       logger,
	}
	ch.Register(e)

	th := &TranscriptHandler{Turns: turns, Answers: answers}
	th.Register(e)

	return &Server{cfg: cfg, logger: logger, echo: e}
}

// Start serves HTTP on the configured address, blocking until the listener
// fails.
func (s *Server) Start() error {
	addr := s.cfg.Server.Address()
	s.logger.Info("listening", zap.String("addr", addr))
	return s.echo.Start(addr)
}
