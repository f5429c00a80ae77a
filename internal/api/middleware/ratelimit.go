package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/aicv/cv-service/internal/api/metrics"
)

// AccountLimiter reports whether an account may issue another request in the
// current window.
type AccountLimiter interface {
	Allow(ctx context.Context, accountID string) (bool, error)
}

// RateLimit caps requests per account using the given limiter. Limiter
// errors fail open with a warning.
func RateLimit(limiter AccountLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accountID, _ := c.Get("account_id").(string)
			if accountID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			allowed, err := limiter.Allow(c.Request().Context(), accountID)
			if err != nil {
				log.Warn().Err(err).Str("account_id", accountID).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitedTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many generation requests, slow down")
			}
			return next(c)
		}
	}
}
