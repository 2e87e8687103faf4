package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimiter limits requests to perMinute for the routes it is applied to. It
// backs the mutating user API endpoints. Requests are counted per authenticated
// user, since the dashboard calls the API from the server's own address; only
// anonymous requests fall back to the client IP.
func RateLimiter(perMinute int) echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		// In-memory store, suitable for single-instance deployments.
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(float64(perMinute) / 60),
			Burst: perMinute,
		}),
		IdentifierExtractor: rateLimitKey,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{
				"code":    "rate_limited",
				"message": "Too many requests. Please try again later.",
			})
		},
	}
	return middleware.RateLimiterWithConfig(config)
}

func rateLimitKey(c echo.Context) (string, error) {
	if user, ok := CurrentUser(c); ok && user.IDString() != "" {
		return "user:" + user.IDString(), nil
	}
	return "ip:" + c.RealIP(), nil
}
