// Package fs provides filesystem-backed datasources. Projects and folders
// are directories keyed by ID carrying a JSON metadata dotfile; notes are
// markdown files with a sibling metadata file. Everything lives under one
// configured root.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"plotter/pkg/datasource"
)

// SourceType is the type tag strategies match on for the filesystem tier.
const SourceType = "FileSystem"

const (
	projectsDir = "projects"
	foldersDir  = "folders"
	notesDir    = "notes"

	projectMetaFile = ".plotter_project"
	folderMetaFile  = ".plotter_folder"
	noteMetaSuffix  = ".plotter_meta"
	noteFileSuffix  = ".md"
)

// source carries the identity, lifecycle and metrics shared by the three
// entity sources.
type source struct {
	name     string
	priority int
	root     string

	mu        sync.RWMutex
	connected bool

	tracker datasource.Tracker
}

// Name returns the source identifier.
func (s *source) Name() string { return s.name }

// Type returns the "FileSystem" type tag.
func (s *source) Type() string { return SourceType }

// Priority returns the routing priority.
func (s *source) Priority() int { return s.priority }

// IsAvailable reports whether the source is connected.
func (s *source) IsAvailable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Connect creates the root layout and marks the source available. Idempotent.
func (s *source) Connect(ctx context.Context) error {
	for _, dir := range []string{projectsDir, foldersDir, notesDir} {
		if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
			return datasource.NewSourceError(s.name, "connect", "", err)
		}
	}

	s.mu.Lock()
	s.connected = true
	s.mu.Unlock()
	return nil
}

// Disconnect marks the source unavailable. Files stay on disk. Idempotent.
func (s *source) Disconnect() error {
	s.mu.Lock()
	s.connected = false
	s.mu.Unlock()
	return nil
}

// CheckHealth verifies the root directory is reachable. It never fails;
// problems are reported in the result.
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

	info, err := os.Stat(s.root)
	if err != nil {
		result.Status = datasource.StatusUnhealthy
		result.Message = err.Error()
		return result
	}
	if !info.IsDir() {
		result.Status = datasource.StatusUnhealthy
		result.Message = fmt.Sprintf("root %q is not a directory", s.root)
		return result
	}

	result.Status = datasource.StatusHealthy
	return result
}

// Metrics returns a snapshot of the request counters.
func (s *source) Metrics() datasource.Metrics {
	return s.tracker.Snapshot()
}

func (s *source) guard(op, id string) error {
	if !s.IsAvailable() {
		return datasource.NewSourceError(s.name, op, id, datasource.ErrNotConnected)
	}
	return nil
}

// readMeta loads a JSON metadata file. A missing file is a clean miss.
func readMeta[T any](path string) (T, bool, error) {
	var v T
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, fmt.Errorf("failed to decode %q: %w", path, err)
	}
	return v, true, nil
}

// writeMeta writes a JSON metadata file through a temp file and rename so a
// crash never leaves a half-written dotfile behind.
func writeMeta(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// subdirs lists the entry directories under one of the layout roots.
func subdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
