package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"plotter/pkg/datasource"
	"plotter/pkg/record"
)

// NoteSource stores each note as an id.md content file under notes/ with a
// sibling id.plotter_meta metadata file. Content lives only in the markdown
// file, not in the metadata.
type NoteSource struct {
	source
}

// noteMeta is the metadata dotfile payload. Content is kept out so the
// markdown file stays the single copy.
type noteMeta struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Path           string    `json:"path"`
	ParentFolderID string    `json:"parent_folder_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewNoteSource creates a filesystem note source rooted at root.
func NewNoteSource(name string, priority int, root string) *NoteSource {
	return &NoteSource{source: source{name: name, priority: priority, root: root}}
}

func (s *NoteSource) contentPath(id string) string {
	return filepath.Join(s.root, notesDir, id+noteFileSuffix)
}

func (s *NoteSource) metaPath(id string) string {
	return filepath.Join(s.root, notesDir, id+noteMetaSuffix)
}

func toMeta(rec record.NoteRecord) noteMeta {
	return noteMeta{
		ID:             rec.ID,
		Name:           rec.Name,
		Path:           rec.Path,
		ParentFolderID: rec.ParentFolderID,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}

func (m noteMeta) toRecord(content string) record.NoteRecord {
	return record.NoteRecord{
		ID:             m.ID,
		Name:           m.Name,
		Path:           m.Path,
		Content:        content,
		ParentFolderID: m.ParentFolderID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func (s *NoteSource) write(rec record.NoteRecord) error {
	if err := os.WriteFile(s.contentPath(rec.ID), []byte(rec.Content), 0o644); err != nil {
		return err
	}
	return writeMeta(s.metaPath(rec.ID), toMeta(rec))
}

// Save writes the note's content file and metadata.
func (s *NoteSource) Save(ctx context.Context, rec record.NoteRecord) (string, error) {
	start := time.Now()

	if err := s.guard("save", rec.ID); err != nil {
		s.tracker.Observe(start, err)
		return "", err
	}

	if err := s.write(rec); err != nil {
		err = datasource.NewSourceError(s.name, "save", rec.ID, err)
		s.tracker.Observe(start, err)
		return "", err
	}

	s.tracker.Observe(start, nil)
	return rec.ID, nil
}

// FindByID reads one note's metadata and content, or reports a miss.
func (s *NoteSource) FindByID(ctx context.Context, id string) (record.NoteRecord, bool, error) {
	start := time.Now()
	var zero record.NoteRecord

	if err := s.guard("findById", id); err != nil {
		s.tracker.Observe(start, err)
		return zero, false, err
	}

	rec, ok, err := s.read(id)
	if err != nil {
		err = datasource.NewSourceError(s.name, "findById", id, err)
		s.tracker.Observe(start, err)
		return zero, false, err
	}

	s.tracker.Observe(start, nil)
	return rec, ok, nil
}

func (s *NoteSource) read(id string) (record.NoteRecord, bool, error) {
	meta, ok, err := readMeta[noteMeta](s.metaPath(id))
	if err != nil || !ok {
		return record.NoteRecord{}, false, err
	}

	content, err := os.ReadFile(s.contentPath(id))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return record.NoteRecord{}, false, err
	}
	return meta.toRecord(string(content)), true, nil
}

// FindAll reads every note.
func (s *NoteSource) FindAll(ctx context.Context) ([]record.NoteRecord, error) {
	return s.scan(ctx, "findAll", func(record.NoteRecord) bool { return true })
}

// FindByParentFolderID returns the notes inside a folder.
func (s *NoteSource) FindByParentFolderID(ctx context.Context, folderID string) ([]record.NoteRecord, error) {
	return s.scan(ctx, "findByParentFolderId", func(r record.NoteRecord) bool {
		return r.ParentFolderID == folderID
	})
}

func (s *NoteSource) scan(ctx context.Context, op string, keep func(record.NoteRecord) bool) ([]record.NoteRecord, error) {
	start := time.Now()

	if err := s.guard(op, ""); err != nil {
		s.tracker.Observe(start, err)
		return nil, err
	}

	ids, err := s.ids()
	if err != nil {
		err = datasource.NewSourceError(s.name, op, "", err)
		s.tracker.Observe(start, err)
		return nil, err
	}

	var out []record.NoteRecord
	for _, id := range ids {
		rec, ok, err := s.read(id)
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

// ids lists note IDs from the metadata files present under notes/.
func (s *NoteSource) ids() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, notesDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), noteMetaSuffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), noteMetaSuffix))
	}
	return ids, nil
}

// Update rewrites an existing note, reporting false when absent.
func (s *NoteSource) Update(ctx context.Context, rec record.NoteRecord) (bool, error) {
	start := time.Now()

	if err := s.guard("update", rec.ID); err != nil {
		s.tracker.Observe(start, err)
		return false, err
	}

	_, ok, err := readMeta[noteMeta](s.metaPath(rec.ID))
	if err != nil {
		err = datasource.NewSourceError(s.name, "update", rec.ID, err)
		s.tracker.Observe(start, err)
		return false, err
	}
	if !ok {
		s.tracker.Observe(start, nil)
		return false, nil
	}

	if err := s.write(rec); err != nil {
		err = datasource.NewSourceError(s.name, "update", rec.ID, err)
		s.tracker.Observe(start, err)
		return false, err
	}

	s.tracker.Observe(start, nil)
	return true, nil
}

// DeleteByID removes the note's files, reporting false when absent.
func (s *NoteSource) DeleteByID(ctx context.Context, id string) (bool, error) {
	start := time.Now()

	if err := s.guard("deleteById", id); err != nil {
		s.tracker.Observe(start, err)
		return false, err
	}

	if _, err := os.Stat(s.metaPath(id)); os.IsNotExist(err) {
		s.tracker.Observe(start, nil)
		return false, nil
	}

	for _, path := range []string{s.metaPath(id), s.contentPath(id)} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			err = datasource.NewSourceError(s.name, "deleteById", id, err)
			s.tracker.Observe(start, err)
			return false, err
		}
	}

	s.tracker.Observe(start, nil)
	return true, nil
}

// Exists reports note presence, swallowing failures as false.
func (s *NoteSource) Exists(ctx context.Context, id string) bool {
	start := time.Now()

	if err := s.guard("exists", id); err != nil {
		s.tracker.Observe(start, err)
		return false
	}

	_, err := os.Stat(s.metaPath(id))
	s.tracker.Observe(start, nil)
	return err == nil
}

// Clear removes every note and returns the count.
func (s *NoteSource) Clear(ctx context.Context) (int, error) {
	start := time.Now()

	if err := s.guard("clear", ""); err != nil {
		s.tracker.Observe(start, err)
		return 0, err
	}

	ids, err := s.ids()
	if err != nil {
		err = datasource.NewSourceError(s.name, "clear", "", err)
		s.tracker.Observe(start, err)
		return 0, err
	}

	for _, id := range ids {
		for _, path := range []string{s.metaPath(id), s.contentPath(id)} {
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				err = datasource.NewSourceError(s.name, "clear", id, err)
				s.tracker.Observe(start, err)
				return 0, err
			}
		}
	}

	s.tracker.Observe(start, nil)
	return len(ids), nil
}
