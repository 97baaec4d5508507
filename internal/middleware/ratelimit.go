// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// limiterEntry is one client's current window.
type limiterEntry struct {
	count   int
	resetAt time.Time
}

// RateLimiter is a per-key fixed-window limiter. The first request from a
// key opens a window of the configured length; up to limit requests are
// admitted inside it, and the first request after it closes opens a new
// one. State is process-local and lost on restart.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*limiterEntry
	limit     int
	window    time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewRateLimiter creates a limiter admitting limit requests per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*limiterEntry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow records a request for key and reports whether it is admitted.
// Rejected requests do not extend the window.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	entry, ok := rl.clients[key]
	if !ok || now.After(entry.resetAt) {
		rl.clients[key] = &limiterEntry{count: 1, resetAt: now.Add(rl.window)}
		return true
	}
	if entry.count >= rl.limit {
		return false
	}
	entry.count++
	return true
}

// sweep drops closed windows, at most once per window length. Callers
// hold rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now
	for key, entry := range rl.clients {
		if now.After(entry.resetAt) {
			delete(rl.clients, key)
		}
	}
}

// Middleware rejects requests over the limit with 429, keyed by ClientKey.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(ClientKey(r)) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientKey identifies the client for rate limiting: the first
// X-Forwarded-For entry, else X-Real-IP, else "unknown". Requests with
// neither header share the "unknown" bucket; the connection address is
// not used because behind the hosting proxy it is always the proxy.
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return "unknown"
}
