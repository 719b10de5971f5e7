// Package ratelimit implements a fixed-window request counter keyed by
// client IP.
package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type window struct {
	count   int
	resetAt time.Time
}

type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	period  time.Duration
	max     int
}

func New(period time.Duration, max int) *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		period:  period,
		max:     max,
	}
}

// Check records one request for key and reports whether it is allowed in the
// current window. Expired windows are pruned opportunistically.
func (l *Limiter) Check(key string) Result {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, w := range l.windows {
		if w.resetAt.Before(now) {
			delete(l.windows, k)
		}
	}

	w, ok := l.windows[key]
	if !ok {
		w = &window{resetAt: now.Add(l.period)}
		l.windows[key] = w
	}

	if w.count >= l.max {
		return Result{Allowed: false, Remaining: 0, ResetAt: w.resetAt}
	}

	w.count++
	return Result{Allowed: true, Remaining: l.max - w.count, ResetAt: w.resetAt}
}

// Middleware rejects requests over the limit with 429 and a Retry-After
// header. The key is the client IP (RealIP middleware should run first).
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := l.Check(clientIP(r))
		if !res.Allowed {
			retryAfter := int(time.Until(res.ResetAt).Seconds()) + 1
			log.Warn().Str("path", r.URL.Path).Str("remote", r.RemoteAddr).Msg("rate limit exceeded")
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"success":false,"message":"Too many requests. Please try again later."}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
