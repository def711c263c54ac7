package middleware

import (
	"net/http"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"shareit/internal/config"
	"shareit/internal/errors"
)

// RateLimiter keeps one token bucket per client key.
type RateLimiter struct {
	limiters sync.Map
	rps      rate.Limit
	burst    int
	header   string
}

// NewRateLimiter keys clients by the value of header, falling back to the
// client IP when the header is absent.
func NewRateLimiter(cfg config.RateLimitConfig, header string) *RateLimiter {
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}
	return &RateLimiter{rps: rate.Limit(cfg.RPS), burst: burst, header: header}
}

func (l *RateLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(l.rps, l.burst)
	actual, _ := l.limiters.LoadOrStore(key, lim)
	return actual.(*rate.Limiter)
}

func (l *RateLimiter) clientKey(c echo.Context) string {
	if v := strings.TrimSpace(c.Request().Header.Get(l.header)); v != "" {
		return "user:" + v
	}
	return "ip:" + c.RealIP()
}

// Middleware rejects requests over the limit with 429.
func (l *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.getLimiter(l.clientKey(c)).Allow() {
				return echo.NewHTTPError(http.StatusTooManyRequests, errors.ErrorResponse{
					Error: "rate limit exceeded",
					Code:  "RATE_LIMITED",
				})
			}
			return next(c)
		}
	}
}
