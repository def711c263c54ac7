package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"shareit/internal/metrics"
)

// RequestID tags every request with a UUID unless the caller sent one.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	})
}

// AccessLog writes one zerolog line per request and feeds the HTTP metrics.
// Errors are rendered here so the logged status is the one the client sees.
func AccessLog(logger *zerolog.Logger, tier string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			elapsed := time.Since(start)

			req := c.Request()
			res := c.Response()
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.ObserveHTTP(tier, req.Method, route, res.Status, elapsed)

			event := logger.Info()
			if res.Status >= 500 {
				event = logger.Error().Err(err)
			}
			event.
				Str("tier", tier).
				Str("method", req.Method).
				Str("route", route).
				Str("uri", req.RequestURI).
				Int("status", res.Status).
				Dur("latency", elapsed).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Str("ip", c.RealIP()).
				Msg("http request")
			return nil
		}
	}
}
