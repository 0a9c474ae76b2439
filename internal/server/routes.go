package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	e := s.echo

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1", s.limiter.Middleware())

	api.GET("/tools", s.listTools)
	api.POST("/tools/:name", s.callTool)

	api.GET("/presets/loans", s.loanPresets)
	api.GET("/presets/deposits", s.depositPresets)
	api.GET("/rates", s.bankRates)

	auth := requireIdentity(s.identity)
	api.GET("/profile", s.profile, auth)
	api.GET("/calculations/:family", s.listCalculations, auth)
	api.POST("/calculations/:family", s.saveCalculation, auth)
	api.DELETE("/calculations/:family", s.clearCalculations, auth)
}
