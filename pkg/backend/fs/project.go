package fs

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"plotter/pkg/datasource"
	"plotter/pkg/record"
)

// ProjectSource stores each project as a directory under projects/ carrying
// a .plotter_project metadata file.
type ProjectSource struct {
	source
}

// NewProjectSource creates a filesystem project source rooted at root.
func NewProjectSource(name string, priority int, root string) *ProjectSource {
	return &ProjectSource{source: source{name: name, priority: priority, root: root}}
}

func (s *ProjectSource) dir(id string) string {
	return filepath.Join(s.root, projectsDir, id)
}

func (s *ProjectSource) metaPath(id string) string {
	return filepath.Join(s.dir(id), projectMetaFile)
}

// Save writes the project directory and its metadata dotfile.
func (s *ProjectSource) Save(ctx context.Context, rec record.ProjectRecord) (string, error) {
	start := time.Now()

	if err := s.guard("save", rec.ID); err != nil {
		s.tracker.Observe(start, err)
		return "", err
	}

	if err := os.MkdirAll(s.dir(rec.ID), 0o755); err != nil {
		err = datasource.NewSourceError(s.name, "save", rec.ID, err)
		s.tracker.Observe(start, err)
		return "", err
	}
	if err := writeMeta(s.metaPath(rec.ID), rec); err != nil {
		err = datasource.NewSourceError(s.name, "save", rec.ID, err)
		s.tracker.Observe(start, err)
		return "", err
	}

	s.tracker.Observe(start, nil)
	return rec.ID, nil
}

// FindByID reads one project's metadata, or reports a miss.
func (s *ProjectSource) FindByID(ctx context.Context, id string) (record.ProjectRecord, bool, error) {
	start := time.Now()
	var zero record.ProjectRecord

	if err := s.guard("findById", id); err != nil {
		s.tracker.Observe(start, err)
		return zero, false, err
	}

	rec, ok, err := readMeta[record.ProjectRecord](s.metaPath(id))
	if err != nil {
		err = datasource.NewSourceError(s.name, "findById", id, err)
		s.tracker.Observe(start, err)
		return zero, false, err
	}

	s.tracker.Observe(start, nil)
	return rec, ok, nil
}

// FindAll reads every project directory's metadata. Directories without a
// dotfile are skipped.
func (s *ProjectSource) FindAll(ctx context.Context) ([]record.ProjectRecord, error) {
	start := time.Now()

	if err := s.guard("findAll", ""); err != nil {
		s.tracker.Observe(start, err)
		return nil, err
	}

	ids, err := subdirs(filepath.Join(s.root, projectsDir))
	if err != nil {
		err = datasource.NewSourceError(s.name, "findAll", "", err)
		s.tracker.Observe(start, err)
		return nil, err
	}

	var out []record.ProjectRecord
	for _, id := range ids {
		rec, ok, err := readMeta[record.ProjectRecord](s.metaPath(id))
		if err != nil {
			err = datasource.NewSourceError(s.name, "findAll", id, err)
			s.tracker.Observe(start, err)
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}

	s.tracker.Observe(start, nil)
	return out, nil
}

// Update rewrites an existing project's metadata, reporting false when absent.
func (s *ProjectSource) Update(ctx context.Context, rec record.ProjectRecord) (bool, error) {
	start := time.Now()

	if err := s.guard("update", rec.ID); err != nil {
		s.tracker.Observe(start, err)
		return false, err
	}

	_, ok, err := readMeta[record.ProjectRecord](s.metaPath(rec.ID))
	if err != nil {
		err = datasource.NewSourceError(s.name, "update", rec.ID, err)
		s.tracker.Observe(start, err)
		return false, err
	}
	if !ok {
		s.tracker.Observe(start, nil)
		return false, nil
	}

	if err := writeMeta(s.metaPath(rec.ID), rec); err != nil {
		err = datasource.NewSourceError(s.name, "update", rec.ID, err)
		s.tracker.Observe(start, err)
		return false, err
	}

	s.tracker.Observe(start, nil)
	return true, nil
}

// DeleteByID removes the project directory, reporting false when absent.
func (s *ProjectSource) DeleteByID(ctx context.Context, id string) (bool, error) {
	start := time.Now()

	if err := s.guard("deleteById", id); err != nil {
		s.tracker.Observe(start, err)
		return false, err
	}

	if _, err := os.Stat(s.dir(id)); os.IsNotExist(err) {
		s.tracker.Observe(start, nil)
		return false, nil
	}
	if err := os.RemoveAll(s.dir(id)); err != nil {
		err = datasource.NewSourceError(s.name, "deleteById", id, err)
		s.tracker.Observe(start, err)
		return false, err
	}

	s.tracker.Observe(start, nil)
	return true, nil
}

// Exists reports project presence, swallowing failures as false.
func (s *ProjectSource) Exists(ctx context.Context, id string) bool {
	start := time.Now()

	if err := s.guard("exists", id); err != nil {
		s.tracker.Observe(start, err)
		return false
	}

	_, err := os.Stat(s.metaPath(id))
	s.tracker.Observe(start, nil)
	return err == nil
}

// Clear removes every project directory and returns the count.
func (s *ProjectSource) Clear(ctx context.Context) (int, error) {
	start := time.Now()

	if err := s.guard("clear", ""); err != nil {
		s.tracker.Observe(start, err)
		return 0, err
	}

	ids, err := subdirs(filepath.Join(s.root, projectsDir))
	if err != nil {
		err = datasource.NewSourceError(s.name, "clear", "", err)
		s.tracker.Observe(start, err)
		return 0, err
	}

	for _, id := range ids {
		if err := os.RemoveAll(s.dir(id)); err != nil {
			err = datasource.NewSourceError(s.name, "clear", id, err)
			s.tracker.Observe(start, err)
			return 0, err
		}
	}

	s.tracker.Observe(start, nil)
	return len(ids), nil
}
