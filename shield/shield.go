// Package shield provides the HTTP middleware in front of the search
// service: security headers, body limits, request tracing, and the
// sliding-window rate limiter that protects the scrape fan-out from abuse.
//
// Usage:
//
//	rl := shield.NewRateLimiter(30, time.Minute)
//	r := chi.NewRouter()
//	for _, mw := range shield.DefaultStack(rl) {
//	    r.Use(mw)
//	}
package shield

import (
	"context"
	"log/slog"
	"net/http"
)

type contextKey string

const (
	// LoggerKey is the context key for the per-request structured logger.
	LoggerKey contextKey = "shield_logger"

	// TraceIDKey is the context key for the request trace ID.
	TraceIDKey contextKey = "shield_trace_id"
)

// DefaultStack returns the standard middleware stack for the service.
// Middleware is ordered: HeadToGet → SecurityHeaders → MaxFormBody → TraceID → RateLimiter.
// A nil limiter yields a stack without rate limiting.
func DefaultStack(rl *RateLimiter) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		HeadToGet,
		SecurityHeaders(DefaultHeaders()),
		MaxFormBody(64 * 1024),
		TraceID,
	}
	if rl != nil {
		stack = append(stack, rl.Middleware)
	}
	return stack
}

// GetLogger retrieves the per-request logger from the context, falling back
// to slog.Default when no middleware set one.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(LoggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
