package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robinclaw/robinclaw/internal/infrastructure"
	"github.com/sirupsen/logrus"
)

const defaultRateLimitPerSecond = 10

// RateLimitMiddleware caps requests per client IP per second using a redis
// counter with a one second expiry. When redis is unavailable the request is
// allowed through; market data is not worth failing closed for.
func RateLimitMiddleware(client *redis.Client, limit int) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = defaultRateLimitPerSecond
	}

	return func(next http.Handler) http.Handler {
		if client == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := infrastructure.ClientIPFromRequest(r)
			key := fmt.Sprintf("ratelimit:%s:%d", ip, time.Now().Unix())

			count, err := client.Incr(r.Context(), key).Result()
			if err != nil {
				logrus.Warnf("rate limit counter failed: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				client.Expire(r.Context(), key, time.Second)
			}

			if count > int64(limit) {
				w.Header().Set("Retry-After", "1")
				writeJSON(w, http.StatusTooManyRequests, map[string]any{"error": "rate limit exceeded"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
