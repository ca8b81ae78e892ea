// Package server exposes the search orchestrator over HTTP: a JSON search
// endpoint, a Server-Sent Events stream, and a CSV export.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hazyhaar/dealscout/export"
	"github.com/hazyhaar/dealscout/observability"
	"github.com/hazyhaar/dealscout/product"
	"github.com/hazyhaar/dealscout/scrape"
	"github.com/hazyhaar/dealscout/shield"
	"github.com/hazyhaar/dealscout/source"
)

// Searcher is the orchestrator surface the handlers need.
type Searcher interface {
	Search(ctx context.Context, req scrape.Request) ([]product.Product, []scrape.Result)
	SearchStream(ctx context.Context, req scrape.Request) <-chan scrape.Event
	Sources() []source.Source
}

// Config configures the HTTP server.
type Config struct {
	// MaxQueryLength caps the normalized query, in runes. Default 120.
	MaxQueryLength int

	// DefaultLimit is the per-source item cap when the client sends none.
	// Default 35. Client values are clamped to [5, 120].
	DefaultLimit int

	// Events, when set, records completed searches. Best-effort.
	Events *observability.EventLogger

	// Limiter, when set, rate-limits the search endpoints per client IP.
	// It runs after request validation, so a malformed request answers
	// 400 without consuming a slot.
	Limiter *shield.RateLimiter
}

// Server carries the handler state.
type Server struct {
	searcher     Searcher
	events       *observability.EventLogger
	limiter      *shield.RateLimiter
	maxQueryLen  int
	defaultLimit int
	started      time.Time
}

// New creates a Server over the given orchestrator.
func New(searcher Searcher, cfg Config) *Server {
	if cfg.MaxQueryLength <= 0 {
		cfg.MaxQueryLength = 120
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 35
	}
	return &Server{
		searcher:     searcher,
		events:       cfg.Events,
		limiter:      cfg.Limiter,
		maxQueryLen:  cfg.MaxQueryLength,
		defaultLimit: cfg.DefaultLimit,
		started:      time.Now(),
	}
}

// Routes registers all endpoints on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/search", s.handleSearch)
	r.Get("/api/search/stream", s.handleStream)
	r.Get("/api/search/export", s.handleExport)
	r.Get("/health", s.handleHealth)
	r.Get("/robots.txt", s.handleRobots)
}

// Handler returns a standalone chi router with the routes registered.
// Middleware is the caller's concern.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

var errEmptyQuery = errors.New("Query is required")

// admit applies the rate limit after validation, so a request that would
// answer 400 never consumes a slot. Reports whether the handler may proceed.
func (s *Server) admit(w http.ResponseWriter, r *http.Request) bool {
	if s.limiter == nil || s.limiter.Admit(shield.ExtractIP(r)) {
		return true
	}
	s.limiter.Reject(w, r)
	return false
}

// parseRequest builds a scrape request from query parameters.
func (s *Server) parseRequest(r *http.Request) (scrape.Request, error) {
	q := r.URL.Query()
	query := s.normalizeQuery(q.Get("q"))
	if query == "" {
		return scrape.Request{}, errEmptyQuery
	}
	return scrape.Request{
		Query:             query,
		MaxItemsPerSource: clampInt(q.Get("limit"), s.defaultLimit, 5, 120),
		IncludeAuctions:   parseBoolFlag(q.Get("auctions"), true),
		SortBy:            product.NormalizeSort(q.Get("sort")),
	}, nil
}

// normalizeQuery collapses internal whitespace, trims, and caps the length.
func (s *Server) normalizeQuery(raw string) string {
	query := strings.Join(strings.Fields(raw), " ")
	runes := []rune(query)
	if len(runes) > s.maxQueryLen {
		query = strings.TrimSpace(string(runes[:s.maxQueryLen]))
	}
	return query
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !s.admit(w, r) {
		return
	}

	start := time.Now()
	products, _ := s.searcher.Search(r.Context(), req)
	s.recordEvent(r, req, len(products), time.Since(start))

	writeJSON(w, http.StatusOK, map[string]any{"results": products})
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !s.admit(w, r) {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, _ := w.(http.Flusher)
	start := time.Now()

	for event := range s.searcher.SearchStream(r.Context(), req) {
		data, err := json.Marshal(event)
		if err != nil {
			shield.GetLogger(r.Context()).Warn("stream: marshal event", "error", err)
			continue
		}
		if _, err := w.Write(append(append([]byte("data: "), data...), '\n', '\n')); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
		if done, ok := event.(scrape.Done); ok {
			s.recordEvent(r, req, len(done.Results), time.Since(start))
		}
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !s.admit(w, r) {
		return
	}

	start := time.Now()
	products, _ := s.searcher.Search(r.Context(), req)
	s.recordEvent(r, req, len(products), time.Since(start))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="deals.csv"`)
	if err := export.WriteCSV(w, products); err != nil {
		shield.GetLogger(r.Context()).Warn("export: write csv", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"uptime_sec": int(time.Since(s.started).Seconds()),
	})
}

func (s *Server) handleRobots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	lines := []string{
		"User-agent: *",
		"Disallow: /api/search",
		"Disallow: /api/search/stream",
	}
	w.Write([]byte(strings.Join(lines, "\n")))
}

func (s *Server) recordEvent(r *http.Request, req scrape.Request, results int, elapsed time.Duration) {
	if s.events == nil {
		return
	}
	traceID, _ := r.Context().Value(shield.TraceIDKey).(string)
	// Detached context: the event write must survive client disconnects.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.events.LogSearch(ctx, observability.SearchEvent{
		Query:           req.Query,
		SortBy:          req.SortBy,
		IncludeAuctions: req.IncludeAuctions,
		SourceCount:     len(s.searcher.Sources()),
		ResultCount:     results,
		Elapsed:         elapsed,
		ClientIP:        shield.ExtractIP(r),
		TraceID:         traceID,
	})
}

// clampInt parses raw as an int, falling back to def, and clamps to [lo, hi].
func clampInt(raw string, def, lo, hi int) int {
	v := def
	if raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return def
		}
		v = parsed
	}
	return max(lo, min(hi, v))
}

// parseBoolFlag treats "0", "false", "False", "no" and "off" as false;
// anything else present is true. Absent uses def.
func parseBoolFlag(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	switch raw {
	case "0", "false", "False", "no", "off":
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
