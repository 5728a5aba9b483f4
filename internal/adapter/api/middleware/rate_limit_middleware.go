package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"viva/internal/infrastructure/ratelimit"
	"viva/pkg/errors"
	"viva/pkg/logger"
	"viva/pkg/response"
)

// RateLimit rejects clients that exceed the limiter's budget with 429.
func RateLimit(limiter *ratelimit.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, wait := limiter.Allow(ip)
			if !allowed {
				logger.Warn("Rate limit exceeded for IP %s (retry in %v)", ip, wait)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded"))
			}

			return next(c)
		}
	}
}
