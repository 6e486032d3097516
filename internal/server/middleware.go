package server

import (
	"net"
	"net/http"
	"sync"
	"time"
)

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// rateLimiter is a sliding-window limiter keyed by client address. Clients
// idle for a whole window are forgotten.
type rateLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	now       func() time.Time
	hits      map[string][]time.Time
	lastSweep time.Time
}

func newRateLimiter(limit int, window time.Duration, now func() time.Time) *rateLimiter {
	return &rateLimiter{limit: limit, window: window, now: now, hits: map[string][]time.Time{}, lastSweep: now()}
}

func (l *rateLimiter) allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(now)
	}

	recent := l.recent(client, now)
	if len(recent) >= l.limit {
		l.hits[client] = recent
		return false
	}
	l.hits[client] = append(recent, now)
	return true
}

func (l *rateLimiter) recent(client string, now time.Time) []time.Time {
	recent := l.hits[client][:0]
	for _, t := range l.hits[client] {
		if now.Sub(t) < l.window {
			recent = append(recent, t)
		}
	}
	return recent
}

func (l *rateLimiter) sweep(now time.Time) {
	for client := range l.hits {
		if recent := l.recent(client, now); len(recent) > 0 {
			l.hits[client] = recent
		} else {
			delete(l.hits, client)
		}
	}
	l.lastSweep = now
}

// middleware limits requests per client. It runs after middleware.RealIP,
// so RemoteAddr already holds the forwarded client address when present.
func (l *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			next.ServeHTTP(w, r)
			return
		}
		if !l.allow(clientHost(r.RemoteAddr)) {
			writeError(w, http.StatusTooManyRequests, "RateLimited", "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
