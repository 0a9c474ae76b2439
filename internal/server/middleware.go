package server

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/cloud-ru/fincalc-go/internal/identity"
	"github.com/cloud-ru/fincalc-go/internal/metrics"
)

// requestLogger пишет запросы в zerolog и обновляет HTTP-метрики
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			latency := time.Since(start)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequests.WithLabelValues(req.Method, route, strconv.Itoa(res.Status)).Inc()
			metrics.HTTPDuration.WithLabelValues(req.Method, route).Observe(latency.Seconds())

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", latency).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}

// requireIdentity определяет пользователя по bearer-токену и кладёт его в контекст запроса
func requireIdentity(provider identity.Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := identity.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return NewUnauthorizedError(c, "missing or malformed authorization header")
			}

			who, err := provider.Identify(c.Request().Context(), token)
			if err != nil {
				log.Debug().Err(err).Msg("Identity lookup failed")
				return NewUnauthorizedError(c, "invalid token")
			}

			ctx := identity.WithIdentity(c.Request().Context(), who)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// currentIdentity пользователь, установленный requireIdentity
func currentIdentity(c echo.Context) *identity.Identity {
	who, _ := identity.FromContext(c.Request().Context())
	return who
}
