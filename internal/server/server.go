// Package server отдаёт инструменты, пресеты, ставки банков и историю
// расчётов по HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/fincalc-go/internal/config"
	"github.com/cloud-ru/fincalc-go/internal/history"
	"github.com/cloud-ru/fincalc-go/internal/identity"
	"github.com/cloud-ru/fincalc-go/internal/tools"
)

// Server HTTP-сервер калькулятора
type Server struct {
	cfg      *config.Config
	echo     *echo.Echo
	registry *tools.Registry
	history  *history.Service
	identity identity.Provider
	tracer   trace.Tracer
	limiter  *RateLimiter
}

// New создаёт сервер и регистрирует маршруты
func New(cfg *config.Config, registry *tools.Registry, historySvc *history.Service,
	provider identity.Provider, tracer trace.Tracer) *Server {

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler

	s := &Server{
		cfg:      cfg,
		echo:     e,
		registry: registry,
		history:  historySvc,
		identity: provider,
		tracer:   tracer,
		limiter:  NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst),
	}

	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		MaxAge:       86400,
	}))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(requestLogger())
	e.Use(echomiddleware.Recover())

	s.registerRoutes()

	return s
}

// Handler возвращает http.Handler сервера
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start запускает сервер и блокируется до остановки
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	log.Info().Str("addr", addr).Msg("Starting server")
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown останавливает сервер и фоновые задачи
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	return s.echo.Shutdown(ctx)
}
