package shield

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter enforces a per-client sliding window: at most limit requests
// within the trailing window. A rejected request does not consume a slot, so
// a client hammering the endpoint recovers as soon as old hits age out.
// A limit <= 0 disables the limiter entirely.
type RateLimiter struct {
	limit   int
	window  time.Duration
	exclude []string

	mu        sync.Mutex
	hits      map[string][]time.Time
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter creates a sliding-window limiter. A zero window defaults to
// one minute. Requests to paths matching excludePrefixes bypass the limiter.
func NewRateLimiter(limit int, window time.Duration, excludePrefixes ...string) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		limit:   limit,
		window:  window,
		exclude: excludePrefixes,
		hits:    make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Admit records a hit for key and reports whether it is within the limit.
// Hits strictly older than the window are evicted before counting.
func (rl *RateLimiter) Admit(key string) bool {
	if rl.limit <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)
	rl.sweep(now, cutoff)

	recent := rl.hits[key][:0]
	for _, ts := range rl.hits[key] {
		if ts.After(cutoff) || ts.Equal(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= rl.limit {
		rl.hits[key] = recent
		return false
	}

	rl.hits[key] = append(recent, now)
	return true
}

// sweep drops keys whose windows have fully aged out, so the map does not
// accumulate one entry per client IP ever seen. It runs at most once per
// window. Caller holds rl.mu.
func (rl *RateLimiter) sweep(now time.Time, cutoff time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now

	// Hits are appended in order, so a stale newest hit means the whole
	// slice is stale.
	for key, hits := range rl.hits {
		if len(hits) == 0 || hits[len(hits)-1].Before(cutoff) {
			delete(rl.hits, key)
		}
	}
}

// Middleware enforces the limit per client IP and answers 429 with a JSON
// body when exceeded.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, prefix := range rl.exclude {
			if strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}

		if rl.Admit(ExtractIP(r)) {
			next.ServeHTTP(w, r)
			return
		}
		rl.Reject(w, r)
	})
}

// Reject answers 429 with a JSON body and a Retry-After header.
func (rl *RateLimiter) Reject(w http.ResponseWriter, r *http.Request) {
	slog.Warn("ratelimit: request blocked", "ip", ExtractIP(r), "path", r.URL.Path)

	w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	json.NewEncoder(w).Encode(map[string]string{
		"error": "Rate limit exceeded. Try again shortly.",
	})
}

// ExtractIP returns the client IP from X-Forwarded-For or RemoteAddr.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return strings.TrimSpace(xff[:i])
			}
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
