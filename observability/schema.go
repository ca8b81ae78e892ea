package observability

import "database/sql"

// Schema contains the DDL for the search event log.
// Call Init(db) to apply it, or pass the constant to dbopen.WithSchema.
const Schema = `
CREATE TABLE IF NOT EXISTS search_events (
    event_id TEXT PRIMARY KEY,
    query TEXT NOT NULL,
    sort_by TEXT NOT NULL,
    include_auctions INTEGER NOT NULL DEFAULT 1,
    source_count INTEGER NOT NULL,
    result_count INTEGER NOT NULL,
    elapsed_ms INTEGER NOT NULL,
    client_ip TEXT,
    trace_id TEXT,
    created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
);
CREATE INDEX IF NOT EXISTS idx_search_events_time
    ON search_events(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_search_events_query
    ON search_events(query, created_at DESC);
`

// Init applies the event log schema to the given database.
func Init(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
