// Package memory provides map-backed datasources, typically registered as
// the cache tier in front of a persistent backend.
package memory

import (
	"context"
	"sync"
	"time"

	"plotter/pkg/datasource"
	"plotter/pkg/record"
)

// SourceType is the type tag cache-aware strategies match on.
const SourceType = "Memory"

// store is the shared map-backed implementation behind the three entity
// sources.
type store[R any] struct {
	name     string
	priority int
	idOf     func(R) string

	mu        sync.RWMutex
	connected bool
	records   map[string]R

	tracker datasource.Tracker
}

func newStore[R any](name string, priority int, idOf func(R) string) store[R] {
	return store[R]{
		name:     name,
		priority: priority,
		idOf:     idOf,
		records:  make(map[string]R),
	}
}

// Name returns the source identifier.
func (s *store[R]) Name() string { return s.name }

// Type returns the "Memory" type tag.
func (s *store[R]) Type() string { return SourceType }

// Priority returns the routing priority.
func (s *store[R]) Priority() int { return s.priority }

// IsAvailable reports whether the source is connected.
func (s *store[R]) IsAvailable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Connect marks the source available. Idempotent.
func (s *store[R]) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records == nil {
		s.records = make(map[string]R)
	}
	s.connected = true
	return nil
}

// Disconnect marks the source unavailable. Records are kept so a reconnect
// resumes with a warm cache. Idempotent.
func (s *store[R]) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	return nil
}

// CheckHealth reports healthy while connected.
func (s *store[R]) CheckHealth(ctx context.Context) datasource.HealthCheckResult {
	result := datasource.HealthCheckResult{
		Metrics:   s.tracker.Snapshot(),
		CheckTime: time.Now(),
	}
	if !s.IsAvailable() {
		result.Status = datasource.StatusUnhealthy
		result.Message = "not connected"
		return result
	}
	result.Status = datasource.StatusHealthy
	return result
}

// Metrics returns a snapshot of the request counters.
func (s *store[R]) Metrics() datasource.Metrics {
	return s.tracker.Snapshot()
}

func (s *store[R]) guard(op, id string) error {
	if !s.IsAvailable() {
		return datasource.NewSourceError(s.name, op, id, datasource.ErrNotConnected)
	}
	return nil
}

// Save stores the record, replacing any previous record with the same ID.
func (s *store[R]) Save(ctx context.Context, rec R) (string, error) {
	start := time.Now()
	id := s.idOf(rec)

	if err := s.guard("save", id); err != nil {
		s.tracker.Observe(start, err)
		return "", err
	}

	s.mu.Lock()
	s.records[id] = rec
	s.mu.Unlock()

	s.tracker.Observe(start, nil)
	return id, nil
}

// FindByID returns the stored record, or false on a miss.
func (s *store[R]) FindByID(ctx context.Context, id string) (R, bool, error) {
	start := time.Now()
	var zero R

	if err := s.guard("findById", id); err != nil {
		s.tracker.Observe(start, err)
		return zero, false, err
	}

	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()

	s.tracker.Observe(start, nil)
	if !ok {
		return zero, false, nil
	}
	return rec, true, nil
}

// FindAll returns every stored record.
func (s *store[R]) FindAll(ctx context.Context) ([]R, error) {
	start := time.Now()

	if err := s.guard("findAll", ""); err != nil {
		s.tracker.Observe(start, err)
		return nil, err
	}

	s.mu.RLock()
	out := make([]R, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	s.mu.RUnlock()

	s.tracker.Observe(start, nil)
	return out, nil
}

// Update replaces an existing record, reporting false when absent.
func (s *store[R]) Update(ctx context.Context, rec R) (bool, error) {
	start := time.Now()
	id := s.idOf(rec)

	if err := s.guard("update", id); err != nil {
		s.tracker.Observe(start, err)
		return false, err
	}

	s.mu.Lock()
	_, ok := s.records[id]
	if ok {
		s.records[id] = rec
	}
	s.mu.Unlock()

	s.tracker.Observe(start, nil)
	return ok, nil
}

// DeleteByID removes a record, reporting false when absent.
func (s *store[R]) DeleteByID(ctx context.Context, id string) (bool, error) {
	start := time.Now()

	if err := s.guard("deleteById", id); err != nil {
		s.tracker.Observe(start, err)
		return false, err
	}

	s.mu.Lock()
	_, ok := s.records[id]
	delete(s.records, id)
	s.mu.Unlock()

	s.tracker.Observe(start, nil)
	return ok, nil
}

// Exists reports record presence. Failures, including being disconnected,
// are reported as false.
func (s *store[R]) Exists(ctx context.Context, id string) bool {
	start := time.Now()

	if err := s.guard("exists", id); err != nil {
		s.tracker.Observe(start, err)
		return false
	}

	s.mu.RLock()
	_, ok := s.records[id]
	s.mu.RUnlock()

	s.tracker.Observe(start, nil)
	return ok
}

// Clear drops every record and returns how many were dropped.
func (s *store[R]) Clear(ctx context.Context) (int, error) {
	start := time.Now()

	if err := s.guard("clear", ""); err != nil {
		s.tracker.Observe(start, err)
		return 0, err
	}

	s.mu.Lock()
	n := len(s.records)
	s.records = make(map[string]R)
	s.mu.Unlock()

	s.tracker.Observe(start, nil)
	return n, nil
}

// ProjectSource is an in-memory project store.
type ProjectSource struct {
	store[record.ProjectRecord]
}

// NewProjectSource creates an in-memory project source.
func NewProjectSource(name string, priority int) *ProjectSource {
	return &ProjectSource{
		store: newStore(name, priority, func(r record.ProjectRecord) string { return r.ID }),
	}
}

// FolderSource is an in-memory folder store.
type FolderSource struct {
	store[record.FolderRecord]
}

// NewFolderSource creates an in-memory folder source.
func NewFolderSource(name string, priority int) *FolderSource {
	return &FolderSource{
		store: newStore(name, priority, func(r record.FolderRecord) string { return r.ID }),
	}
}

// FindByProjectID returns the folders hanging directly off a project.
func (s *FolderSource) FindByProjectID(ctx context.Context, projectID string) ([]record.FolderRecord, error) {
	return s.filter("findByProjectId", func(r record.FolderRecord) bool {
		return r.ParentProjectID == projectID
	})
}

// FindByParentFolderID returns the direct subfolders of a folder.
func (s *FolderSource) FindByParentFolderID(ctx context.Context, folderID string) ([]record.FolderRecord, error) {
	return s.filter("findByParentFolderId", func(r record.FolderRecord) bool {
		return r.ParentFolderID == folderID
	})
}

func (s *FolderSource) filter(op string, keep func(record.FolderRecord) bool) ([]record.FolderRecord, error) {
	start := time.Now()

	if err := s.guard(op, ""); err != nil {
		s.tracker.Observe(start, err)
		return nil, err
	}

	s.mu.RLock()
	var out []record.FolderRecord
	for _, rec := range s.records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	s.mu.RUnlock()

	s.tracker.Observe(start, nil)
	return out, nil
}

// NoteSource is an in-memory note store.
type NoteSource struct {
	store[record.NoteRecord]
}

// NewNoteSource creates an in-memory note source.
func NewNoteSource(name string, priority int) *NoteSource {
	return &NoteSource{
		store: newStore(name, priority, func(r record.NoteRecord) string { return r.ID }),
	}
}

// FindByParentFolderID returns the notes inside a folder.
func (s *NoteSource) FindByParentFolderID(ctx context.Context, folderID string) ([]record.NoteRecord, error) {
	start := time.Now()

	if err := s.guard("findByParentFolderId", ""); err != nil {
		s.tracker.Observe(start, err)
		return nil, err
	}

	s.mu.RLock()
	var out []record.NoteRecord
	for _, rec := range s.records {
		if rec.ParentFolderID == folderID {
			out = append(out, rec)
		}
	}
	s.mu.RUnlock()

	s.tracker.Observe(start, nil)
	return out, nil
}
