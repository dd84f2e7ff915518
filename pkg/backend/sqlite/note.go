package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"plotter/pkg/datasource"
	"plotter/pkg/record"
)

// NoteSource stores note records, content included, in the notes table.
type NoteSource struct {
	source
}

// NewNoteSource creates a SQLite note source over the shared database.
func NewNoteSource(name string, priority int, db *DB) *NoteSource {
	return &NoteSource{source: source{name: name, priority: priority, db: db}}
}

// Save upserts the note row.
func (s *NoteSource) Save(ctx context.Context, rec record.NoteRecord) (string, error) {
	start := time.Now()

	db, err := s.handle(ctx, "save", rec.ID)
	if err != nil {
		s.tracker.Observe(start, err)
		return "", err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO notes (id, name, path, content, parent_folder_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			path = excluded.path,
			content = excluded.content,
			parent_folder_id = excluded.parent_folder_id,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Name, rec.Path, rec.Content, nullable(rec.ParentFolderID),
		rec.CreatedAt.UnixMilli(), rec.UpdatedAt.UnixMilli())
	if err != nil {
		err = datasource.NewSourceError(s.name, "save", rec.ID, err)
		s.tracker.Observe(start, err)
		return "", err
	}

	s.tracker.Observe(start, nil)
	return rec.ID, nil
}

// FindByID reads one note.
func (s *NoteSource) FindByID(ctx context.Context, id string) (record.NoteRecord, bool, error) {
	start := time.Now()
	var zero record.NoteRecord

	db, err := s.handle(ctx, "findById", id)
	if err != nil {
		s.tracker.Observe(start, err)
		return zero, false, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT id, name, path, content, parent_folder_id, created_at, updated_at
		FROM notes WHERE id = ?`, id)
	rec, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		s.tracker.Observe(start, nil)
		return zero, false, nil
	}
	if err != nil {
		err = datasource.NewSourceError(s.name, "findById", id, err)
		s.tracker.Observe(start, err)
		return zero, false, err
	}

	s.tracker.Observe(start, nil)
	return rec, true, nil
}

func scanNote(row rowScanner) (record.NoteRecord, error) {
	var rec record.NoteRecord
	var path, content, parentFolder sql.NullString
	var createdAt, updatedAt int64

	if err := row.Scan(&rec.ID, &rec.Name, &path, &content, &parentFolder,
		&createdAt, &updatedAt); err != nil {
		return rec, err
	}
	rec.Path = orEmpty(path)
	rec.Content = orEmpty(content)
	rec.ParentFolderID = orEmpty(parentFolder)
	rec.CreatedAt = time.UnixMilli(createdAt)
	rec.UpdatedAt = time.UnixMilli(updatedAt)
	return rec, nil
}

// FindAll reads every note.
func (s *NoteSource) FindAll(ctx context.Context) ([]record.NoteRecord, error) {
	return s.query(ctx, "findAll", `
		SELECT id, name, path, content, parent_folder_id, created_at, updated_at
		FROM notes ORDER BY created_at`)
}

// FindByParentFolderID returns the notes inside a folder.
func (s *NoteSource) FindByParentFolderID(ctx context.Context, folderID string) ([]record.NoteRecord, error) {
	return s.query(ctx, "findByParentFolderId", `
		SELECT id, name, path, content, parent_folder_id, created_at, updated_at
		FROM notes WHERE parent_folder_id = ? ORDER BY created_at`, folderID)
}

func (s *NoteSource) query(ctx context.Context, op, query string, args ...any) ([]record.NoteRecord, error) {
	start := time.Now()

	db, err := s.handle(ctx, op, "")
	if err != nil {
		s.tracker.Observe(start, err)
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		err = datasource.NewSourceError(s.name, op, "", err)
		s.tracker.Observe(start, err)
		return nil, err
	}
	defer rows.Close()

	var out []record.NoteRecord
	for rows.Next() {
		rec, err := scanNote(rows)
		if err != nil {
			err = datasource.NewSourceError(s.name, op, "", err)
			s.tracker.Observe(start, err)
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		err = datasource.NewSourceError(s.name, op, "", err)
		s.tracker.Observe(start, err)
		return nil, err
	}

	s.tracker.Observe(start, nil)
	return out, nil
}

// Update rewrites an existing note row, reporting false when absent.
func (s *NoteSource) Update(ctx context.Context, rec record.NoteRecord) (bool, error) {
	start := time.Now()

	db, err := s.handle(ctx, "update", rec.ID)
	if err != nil {
		s.tracker.Observe(start, err)
		return false, err
	}

	res, err := db.ExecContext(ctx, `
		UPDATE notes SET name = ?, path = ?, content = ?, parent_folder_id = ?, updated_at = ?
		WHERE id = ?`,
		rec.Name, rec.Path, rec.Content, nullable(rec.ParentFolderID),
		rec.UpdatedAt.UnixMilli(), rec.ID)
	if err != nil {
		err = datasource.NewSourceError(s.name, "update", rec.ID, err)
		s.tracker.Observe(start, err)
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		err = datasource.NewSourceError(s.name, "update", rec.ID, err)
		s.tracker.Observe(start, err)
		return false, err
	}

	s.tracker.Observe(start, nil)
	return affected > 0, nil
}

// DeleteByID removes a note row, reporting false when absent.
func (s *NoteSource) DeleteByID(ctx context.Context, id string) (bool, error) {
	start := time.Now()

	db, err := s.handle(ctx, "deleteById", id)
	if err != nil {
		s.tracker.Observe(start, err)
		return false, err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		err = datasource.NewSourceError(s.name, "deleteById", id, err)
		s.tracker.Observe(start, err)
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		err = datasource.NewSourceError(s.name, "deleteById", id, err)
		s.tracker.Observe(start, err)
		return false, err
	}

	s.tracker.Observe(start, nil)
	return affected > 0, nil
}

// Exists reports note presence, swallowing failures as false.
func (s *NoteSource) Exists(ctx context.Context, id string) bool {
	start := time.Now()

	db, err := s.handle(ctx, "exists", id)
	if err != nil {
		s.tracker.Observe(start, err)
		return false
	}

	var one int
	err = db.QueryRowContext(ctx, `SELECT 1 FROM notes WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		s.tracker.Observe(start, nil)
		return false
	}
	if err != nil {
		s.tracker.Observe(start, datasource.NewSourceError(s.name, "exists", id, err))
		return false
	}

	s.tracker.Observe(start, nil)
	return true
}

// Clear removes every note and returns the count.
func (s *NoteSource) Clear(ctx context.Context) (int, error) {
	start := time.Now()

	db, err := s.handle(ctx, "clear", "")
	if err != nil {
		s.tracker.Observe(start, err)
		return 0, err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM notes`)
	if err != nil {
		err = datasource.NewSourceError(s.name, "clear", "", err)
		s.tracker.Observe(start, err)
		return 0, err
	}

	affected, _ := res.RowsAffected()
	s.tracker.Observe(start, nil)
	return int(affected), nil
}
