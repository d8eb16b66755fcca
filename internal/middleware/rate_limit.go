package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimitConfig holds rate limiting configuration for the general API limit
type RateLimitConfig struct {
	RequestLimit int
	Window       time.Duration
}

// DefaultAPIRateLimit returns the default general API limit (100 requests per 15 minutes)
func DefaultAPIRateLimit() RateLimitConfig {
	return RateLimitConfig{
		RequestLimit: 100,
		Window:       15 * time.Minute,
	}
}

// RateLimitByIP creates a middleware that rate limits requests by client IP
func RateLimitByIP(config RateLimitConfig) func(next http.Handler) http.Handler {
	return httprate.Limit(
		config.RequestLimit,
		config.Window,
		httprate.WithKeyByRealIP(),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate_limit_exceeded","message":"Too many requests, please try again later."}`))
		}),
	)
}
