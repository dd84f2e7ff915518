// Package datasource defines the contract every storage backend implements:
// identity and priority for routing, an idempotent connect/disconnect
// lifecycle, health and metrics reporting, and record-level CRUD.
package datasource

import (
	"context"

	"plotter/pkg/record"
)

// DataSource is the base contract shared by all backends regardless of the
// entity they store.
type DataSource interface {
	// Name returns the identifier of this source, unique within a router.
	Name() string

	// Type returns the source kind, e.g. "Database", "Memory", "FileSystem".
	// Cache-aware routing strategies match on this tag.
	Type() string

	// Priority returns the routing priority. Higher is preferred.
	Priority() int

	// IsAvailable reports whether the source can currently serve requests.
	IsAvailable() bool

	// Connect establishes the source. Calling Connect on a connected source
	// is a no-op.
	Connect(ctx context.Context) error

	// Disconnect releases the source. Calling Disconnect on a disconnected
	// source is a no-op.
	Disconnect() error

	// CheckHealth probes the source. It never returns an error: internal
	// failures are reported as an UNHEALTHY result with a message.
	CheckHealth(ctx context.Context) HealthCheckResult

	// Metrics returns a snapshot of the source's request counters.
	Metrics() Metrics
}

// Store is the record-level CRUD contract for a single entity kind. Every
// operation that cannot be honored fails with an error wrapping
// ErrSourceFailure; a source never silently returns a wrong answer. The one
// exception is Exists, which reports false instead of failing.
type Store[R any] interface {
	DataSource

	// Save persists the record and returns its ID.
	Save(ctx context.Context, rec R) (string, error)

	// FindByID returns the record and true if present, the zero record and
	// false on a clean miss.
	FindByID(ctx context.Context, id string) (R, bool, error)

	// FindAll returns every stored record.
	FindAll(ctx context.Context) ([]R, error)

	// Update replaces an existing record. It returns false if no record with
	// that ID exists.
	Update(ctx context.Context, rec R) (bool, error)

	// DeleteByID removes a record. It returns false if no record with that
	// ID exists.
	DeleteByID(ctx context.Context, id string) (bool, error)

	// Exists reports whether a record with the given ID is stored. It must
	// not fail: internal errors are swallowed and reported as false.
	Exists(ctx context.Context, id string) bool

	// Clear removes all records and returns how many were removed. Used by
	// cache resets and tests.
	Clear(ctx context.Context) (int, error)
}

// ProjectSource stores project records.
type ProjectSource interface {
	Store[record.ProjectRecord]
}

// FolderSource stores folder records and answers parent-relationship queries.
type FolderSource interface {
	Store[record.FolderRecord]

	// FindByProjectID returns the folders hanging directly off a project.
	FindByProjectID(ctx context.Context, projectID string) ([]record.FolderRecord, error)

	// FindByParentFolderID returns the direct subfolders of a folder.
	FindByParentFolderID(ctx context.Context, folderID string) ([]record.FolderRecord, error)
}

// NoteSource stores note records and answers parent-relationship queries.
type NoteSource interface {
	Store[record.NoteRecord]

	// FindByParentFolderID returns the notes inside a folder.
	FindByParentFolderID(ctx context.Context, folderID string) ([]record.NoteRecord, error)
}
