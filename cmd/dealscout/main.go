package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/dealscout/dbopen"
	"github.com/hazyhaar/dealscout/observability"
	"github.com/hazyhaar/dealscout/scrape"
	"github.com/hazyhaar/dealscout/server"
	"github.com/hazyhaar/dealscout/shield"
	"github.com/hazyhaar/dealscout/source"
)

func main() {
	port := env("PORT", "8080")
	logLevel := env("LOG_LEVEL", "info")

	settleMS := envInt("DEFAULT_SETTLE_MS", 1600, 500, 10000)
	navTimeoutMS := envInt("NAV_TIMEOUT_MS", 35000, 10000, 60000)
	waitTimeoutMS := envInt("WAIT_FOR_SELECTOR_TIMEOUT_MS", 12000, 2000, 30000)
	workers := envInt("MAX_CONCURRENT_PROVIDERS", 6, 1, 16)
	maxItems := envInt("MAX_ITEMS_PER_SITE", 35, 5, 120)
	maxQueryLength := envInt("MAX_QUERY_LENGTH", 120, 10, 300)
	rateLimit := envInt("RATE_LIMIT_PER_MINUTE", 30, 1, 120)
	headless := os.Getenv("HEADLESS") != "0"
	sourcesFile := os.Getenv("SOURCES_FILE")
	eventsDB := env("EVENTS_DB", "db/events.db")
	retentionDays := envInt("EVENTS_RETENTION_DAYS", 30, 0, 3650)

	// Logging.
	var lvl slog.Level
	switch logLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Source catalog.
	sources, err := source.Defaults()
	if err != nil {
		slog.Error("default sources", "error", err)
		os.Exit(1)
	}
	if sourcesFile != "" {
		loaded, err := source.LoadFile(sourcesFile)
		if err != nil {
			slog.Error("load sources", "path", sourcesFile, "error", err)
			os.Exit(1)
		}
		sources = loaded
		slog.Info("sources loaded from file", "path", sourcesFile, "count", len(sources))
	}

	// Event log.
	db, err := dbopen.Open(eventsDB,
		dbopen.WithMkdirAll(),
		dbopen.WithSchema(observability.Schema))
	if err != nil {
		slog.Error("events db", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	events := observability.NewEventLogger(db)

	// Event retention sweep, daily.
	go func() {
		tick := time.NewTicker(24 * time.Hour)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				if err := observability.Cleanup(ctx, db, retentionDays); err != nil {
					slog.Warn("event cleanup", "error", err)
				}
			}
		}
	}()

	// Browser engine.
	engine, err := scrape.NewRodEngine(scrape.RodConfig{
		Headless: headless,
		Logger:   logger,
	})
	if err != nil {
		slog.Error("browser engine", "error", err)
		os.Exit(1)
	}
	defer engine.Close()

	orch := scrape.New(engine, nil, scrape.Config{
		Sources: sources,
		Workers: workers,
		Timeouts: scrape.Timeouts{
			Nav:           time.Duration(navTimeoutMS) * time.Millisecond,
			WaitSelector:  time.Duration(waitTimeoutMS) * time.Millisecond,
			DefaultSettle: time.Duration(settleMS) * time.Millisecond,
		},
		Logger: logger,
	})

	// The limiter is enforced inside the search handlers, after query
	// validation, so health, robots and malformed requests never burn a
	// slot.
	svc := server.New(orch, server.Config{
		MaxQueryLength: maxQueryLength,
		DefaultLimit:   maxItems,
		Events:         events,
		Limiter:        shield.NewRateLimiter(rateLimit, time.Minute),
	})

	r := chi.NewRouter()
	for _, mw := range shield.DefaultStack(nil) {
		r.Use(mw)
	}
	svc.Routes(r)

	// HTTP server. WriteTimeout stays off: a full fan-out over a slow
	// browser can hold an SSE stream open for minutes.
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", port, "sources", len(sources), "workers", workers)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt reads an integer environment variable, clamped to [lo, hi].
// Unset or malformed values fall back to def.
func envInt(key string, def, lo, hi int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return max(lo, min(hi, v))
}
