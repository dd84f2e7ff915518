// Package sqlite provides SQLite-backed datasources, typically the
// persistent tier behind a memory cache. The three entity sources for one
// database file share a single DB handle.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"plotter/pkg/datasource"
)

// SourceType is the type tag strategies match on for the persistent tier.
const SourceType = "Database"

// DB is a shared handle to one SQLite database file. Opening is lazy and
// idempotent; the owner (usually the factory) closes it once.
type DB struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

// NewDB creates a handle for the given database path without opening it.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// ensure opens the database on first use, enabling foreign keys and WAL
// journaling and applying the schema.
func (d *DB) ensure(ctx context.Context) (*sql.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil {
		return d.db, nil
	}

	db, err := sql.Open("sqlite", d.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", d.path, err)
	}

	for _, pragma := range []string{"PRAGMA foreign_keys = ON", "PRAGMA journal_mode = WAL"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	d.db = db
	return db, nil
}

// Close closes the underlying database. Idempotent.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// source carries the identity, lifecycle and metrics shared by the three
// entity sources.
type source struct {
	name     string
	priority int
	db       *DB

	mu        sync.RWMutex
	connected bool

	tracker datasource.Tracker
}

// Name returns the source identifier.
func (s *source) Name() string { return s.name }

// Type returns the "Database" type tag.
func (s *source) Type() string { return SourceType }

// Priority returns the routing priority.
func (s *source) Priority() int { return s.priority }

// IsAvailable reports whether the source is connected.
func (s *source) IsAvailable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Connect opens the shared database if needed and marks the source
// available. Idempotent.
func (s *source) Connect(ctx context.Context) error {
	if _, err := s.db.ensure(ctx); err != nil {
		return datasource.NewSourceError(s.name, "connect", "", err)
	}

	s.mu.Lock()
	s.connected = true
	s.mu.Unlock()
	return nil
}

// Disconnect marks the source unavailable. The shared database stays open
// for sibling sources; the factory closes it. Idempotent.
func (s *source) Disconnect() error {
	s.mu.Lock()
	s.connected = false
	s.mu.Unlock()
	return nil
}

// CheckHealth pings the database. It never fails; problems are reported in
// the result.
func (s *source) CheckHealth(ctx context.Context) datasource.HealthCheckResult {
	result := datasource.HealthCheckResult{
		Metrics:   s.tracker.Snapshot(),
		CheckTime: time.Now(),
	}

	if !s.IsAvailable() {
		result.Status = datasource.StatusUnhealthy
		result.Message = "not connected"
		return result
	}

	db, err := s.db.ensure(ctx)
	if err == nil {
		err = db.PingContext(ctx)
	}
	if err != nil {
		result.Status = datasource.StatusUnhealthy
		result.Message = err.Error()
		return result
	}

	result.Status = datasource.StatusHealthy
	return result
}

// Metrics returns a snapshot of the request counters.
func (s *source) Metrics() datasource.Metrics {
	return s.tracker.Snapshot()
}

// handle returns the open database or a contextualized error when the source
// cannot serve the operation.
func (s *source) handle(ctx context.Context, op, id string) (*sql.DB, error) {
	if !s.IsAvailable() {
		return nil, datasource.NewSourceError(s.name, op, id, datasource.ErrNotConnected)
	}
	db, err := s.db.ensure(ctx)
	if err != nil {
		return nil, datasource.NewSourceError(s.name, op, id, err)
	}
	return db, nil
}

// nullable maps an empty string to NULL so foreign keys stay satisfied for
// records without a parent.
func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}

// orEmpty unwraps a nullable text column.
func orEmpty(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}
