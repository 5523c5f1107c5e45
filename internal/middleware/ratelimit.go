package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter provides rate limiting functionality
type RateLimiter struct {
	redis       *redis.Client
	maxRequests int
	window      time.Duration
	enabled     bool
}

// NewRateLimiter creates a new rate limiter. Disabled limiters let every
// request through, which keeps local development friction-free.
func NewRateLimiter(redis *redis.Client, maxRequests int, window time.Duration, enabled bool) *RateLimiter {
	return &RateLimiter{
		redis:       redis,
		maxRequests: maxRequests,
		window:      window,
		enabled:     enabled,
	}
}

// Limit returns a middleware that rate limits requests
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identifier := rl.getIdentifier(r)

		allowed, err := rl.checkRateLimit(r.Context(), identifier)
		if err != nil {
			http.Error(w, `{"error":"Rate limit check failed"}`, http.StatusInternalServerError)
			return
		}

		if !allowed {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprintf(w, `{"error":"Too many requests. Please try again later."}`)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getIdentifier returns the identifier for rate limiting: the caller's
// email when authenticated, the client IP otherwise.
func (rl *RateLimiter) getIdentifier(r *http.Request) string {
	if email, ok := GetUserEmailFromContext(r.Context()); ok {
		return fmt.Sprintf("user:%s", email)
	}

	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = r.RemoteAddr
	}
	return fmt.Sprintf("ip:%s", ip)
}

// checkRateLimit checks if the request should be allowed using a sliding
// window over a Redis sorted set.
func (rl *RateLimiter) checkRateLimit(ctx context.Context, identifier string) (bool, error) {
	if !rl.enabled {
		return true, nil
	}

	key := fmt.Sprintf("ratelimit:%s", identifier)
	now := time.Now().Unix()
	windowStart := now - int64(rl.window.Seconds())

	pipe := rl.redis.Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now),
		Member: fmt.Sprintf("%d", now),
	})
	pipe.Expire(ctx, key, rl.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	count := countCmd.Val()
	return count < int64(rl.maxRequests), nil
}
