package fs

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"plotter/pkg/datasource"
	"plotter/pkg/record"
)

// FolderSource stores each folder as a directory under folders/ carrying a
// .plotter_folder metadata file.
type FolderSource struct {
	source
}

// NewFolderSource creates a filesystem folder source rooted at root.
func NewFolderSource(name string, priority int, root string) *FolderSource {
	return &FolderSource{source: source{name: name, priority: priority, root: root}}
}

func (s *FolderSource) dir(id string) string {
	return filepath.Join(s.root, foldersDir, id)
}

func (s *FolderSource) metaPath(id string) string {
	return filepath.Join(s.dir(id), folderMetaFile)
}

// Save writes the folder directory and its metadata dotfile.
func (s *FolderSource) Save(ctx context.Context, rec record.FolderRecord) (string, error) {
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

// FindByID reads one folder's metadata, or reports a miss.
func (s *FolderSource) FindByID(ctx context.Context, id string) (record.FolderRecord, bool, error) {
	start := time.Now()
	var zero record.FolderRecord

	if err := s.guard("findById", id); err != nil {
		s.tracker.Observe(start, err)
		return zero, false, err
	}

	rec, ok, err := readMeta[record.FolderRecord](s.metaPath(id))
	if err != nil {
		err = datasource.NewSourceError(s.name, "findById", id, err)
		s.tracker.Observe(start, err)
		return zero, false, err
	}

	s.tracker.Observe(start, nil)
	return rec, ok, nil
}

// FindAll reads every folder directory's metadata.
func (s *FolderSource) FindAll(ctx context.Context) ([]record.FolderRecord, error) {
	return s.scan(ctx, "findAll", func(record.FolderRecord) bool { return true })
}

// FindByProjectID returns the folders hanging directly off a project.
func (s *FolderSource) FindByProjectID(ctx context.Context, projectID string) ([]record.FolderRecord, error) {
	return s.scan(ctx, "findByProjectId", func(r record.FolderRecord) bool {
		return r.ParentProjectID == projectID
	})
}

// FindByParentFolderID returns the direct subfolders of a folder.
func (s *FolderSource) FindByParentFolderID(ctx context.Context, folderID string) ([]record.FolderRecord, error) {
	return s.scan(ctx, "findByParentFolderId", func(r record.FolderRecord) bool {
		return r.ParentFolderID == folderID
	})
}

func (s *FolderSource) scan(ctx context.Context, op string, keep func(record.FolderRecord) bool) ([]record.FolderRecord, error) {
	start := time.Now()

	if err := s.guard(op, ""); err != nil {
		s.tracker.Observe(start, err)
		return nil, err
	}

	ids, err := subdirs(filepath.Join(s.root, foldersDir))
	if err != nil {
		err = datasource.NewSourceError(s.name, op, "", err)
		s.tracker.Observe(start, err)
		return nil, err
	}

	var out []record.FolderRecord
	for _, id := range ids {
		rec, ok, err := readMeta[record.FolderRecord](s.metaPath(id))
		if err != nil {
			err = datasource.NewSourceError(s.name, op, id, err)
			s.tracker.Observe(start, err)
			return nil, err
		}
		if ok && keep(rec) {
			out = append(out, rec)
		}
	}

	s.tracker.Observe(start, nil)
	return out, nil
}

// Update rewrites an existing folder's metadata, reporting false when absent.
func (s *FolderSource) Update(ctx context.Context, rec record.FolderRecord) (bool, error) {
	start := time.Now()

	if err := s.guard("update", rec.ID); err != nil {
		s.tracker.Observe(start, err)
		return false, err
	}

	_, ok, err := readMeta[record.FolderRecord](s.metaPath(rec.ID))
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

// DeleteByID removes the folder directory, reporting false when absent.
func (s *FolderSource) DeleteByID(ctx context.Context, id string) (bool, error) {
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

// Exists reports folder presence, swallowing failures as false.
func (s *FolderSource) Exists(ctx context.Context, id string) bool {
	start := time.Now()

	if err := s.guard("exists", id); err != nil {
		s.tracker.Observe(start, err)
		return false
	}

	_, err := os.Stat(s.metaPath(id))
	s.tracker.Observe(start, nil)
	return err == nil
}

// Clear removes every folder directory and returns the count.
func (s *FolderSource) Clear(ctx context.Context) (int, error) {
	start := time.Now()

	if err := s.guard("clear", ""); err != nil {
		s.tracker.Observe(start, err)
		return 0, err
	}

	ids, err := subdirs(filepath.Join(s.root, foldersDir))
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
