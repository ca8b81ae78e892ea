// Package observability records completed searches into a local SQLite event
// log. Recording is best-effort: a failing event store never blocks or fails
// a search.
package observability

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazyhaar/dealscout/dbopen"
	"github.com/hazyhaar/dealscout/idgen"
)

// SearchEvent describes one completed search fan-out.
type SearchEvent struct {
	Query           string
	SortBy          string
	IncludeAuctions bool
	SourceCount     int
	ResultCount     int
	Elapsed         time.Duration
	ClientIP        string
	TraceID         string
}

// EventLogger writes search events and manages retention cleanup.
type EventLogger struct {
	db    *sql.DB
	newID idgen.Generator
}

// EventLoggerOption configures an EventLogger.
type EventLoggerOption func(*EventLogger)

// WithEventIDGenerator sets a custom ID generator for event IDs.
func WithEventIDGenerator(gen idgen.Generator) EventLoggerOption {
	return func(l *EventLogger) { l.newID = gen }
}

// NewEventLogger creates a logger backed by the given event database.
func NewEventLogger(db *sql.DB, opts ...EventLoggerOption) *EventLogger {
	l := &EventLogger{
		db:    db,
		newID: idgen.Prefixed("evt_", idgen.Default),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// LogSearch records a completed search. Errors are logged via slog but do
// not propagate.
func (l *EventLogger) LogSearch(ctx context.Context, event SearchEvent) {
	auctions := 0
	if event.IncludeAuctions {
		auctions = 1
	}
	_, err := dbopen.Exec(ctx, l.db, `
		INSERT INTO search_events (
			event_id, query, sort_by, include_auctions, source_count,
			result_count, elapsed_ms, client_ip, trace_id, created_at
		) VALUES (?,?,?,?,?,?,?,?,?,?)`,
		l.newID(), event.Query, event.SortBy, auctions, event.SourceCount,
		event.ResultCount, event.Elapsed.Milliseconds(), event.ClientIP,
		event.TraceID, time.Now().Unix())
	if err != nil {
		slog.Warn("observability: search event log failed", "error", err, "query", event.Query)
	}
}

// Cleanup deletes events older than days. Zero or negative days is a no-op.
func Cleanup(ctx context.Context, db *sql.DB, days int) error {
	if days <= 0 {
		return nil
	}
	cutoff := time.Now().Unix() - int64(days)*86400
	if _, err := db.ExecContext(ctx, `DELETE FROM search_events WHERE created_at < ?`, cutoff); err != nil {
		return fmt.Errorf("observability: cleanup: %w", err)
	}
	return nil
}
