package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"worklog/internal/transport/http/api"
)

type rateBucket struct {
	count int
	reset time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*rateBucket
}

// RateLimit caps requests per client IP inside a rolling window. Applied to
// the login endpoint to slow password guessing against the single owner
// account.
func RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	rl := &rateLimiter{limit: limit, window: window, clients: make(map[string]*rateBucket)}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(clientIP(r)) {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *rateLimiter) allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	bucket, ok := rl.clients[key]
	if !ok || now.After(bucket.reset) {
		rl.clients[key] = &rateBucket{count: 1, reset: now.Add(rl.window)}
		return true
	}
	if bucket.count >= rl.limit {
		return false
	}
	bucket.count++
	return true
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
