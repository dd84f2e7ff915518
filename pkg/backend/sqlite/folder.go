package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"plotter/pkg/datasource"
	"plotter/pkg/record"
)

// FolderSource stores folder records in the folders table. Note and
// subfolder IDs are reconstructed from the notes and folders tables on read.
type FolderSource struct {
	source
}

// NewFolderSource creates a SQLite folder source over the shared database.
func NewFolderSource(name string, priority int, db *DB) *FolderSource {
	return &FolderSource{source: source{name: name, priority: priority, db: db}}
}

// Save upserts the folder row.
func (s *FolderSource) Save(ctx context.Context, rec record.FolderRecord) (string, error) {
	start := time.Now()

	db, err := s.handle(ctx, "save", rec.ID)
	if err != nil {
		s.tracker.Observe(start, err)
		return "", err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO folders (id, name, description, parent_project_id, parent_folder_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			parent_project_id = excluded.parent_project_id,
			parent_folder_id = excluded.parent_folder_id,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Name, rec.Description,
		nullable(rec.ParentProjectID), nullable(rec.ParentFolderID),
		rec.CreatedAt.UnixMilli(), rec.UpdatedAt.UnixMilli())
	if err != nil {
		err = datasource.NewSourceError(s.name, "save", rec.ID, err)
		s.tracker.Observe(start, err)
		return "", err
	}

	s.tracker.Observe(start, nil)
	return rec.ID, nil
}

// FindByID reads one folder with its note and subfolder IDs.
func (s *FolderSource) FindByID(ctx context.Context, id string) (record.FolderRecord, bool, error) {
	start := time.Now()
	var zero record.FolderRecord

	db, err := s.handle(ctx, "findById", id)
	if err != nil {
		s.tracker.Observe(start, err)
		return zero, false, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT id, name, description, parent_project_id, parent_folder_id, created_at, updated_at
		FROM folders WHERE id = ?`, id)
	rec, err := s.scanFolder(ctx, db, row)
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

// rowScanner covers sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *FolderSource) scanFolder(ctx context.Context, db *sql.DB, row rowScanner) (record.FolderRecord, error) {
	var rec record.FolderRecord
	var description, parentProject, parentFolder sql.NullString
	var createdAt, updatedAt int64

	if err := row.Scan(&rec.ID, &rec.Name, &description, &parentProject, &parentFolder,
		&createdAt, &updatedAt); err != nil {
		return rec, err
	}
	rec.Description = orEmpty(description)
	rec.ParentProjectID = orEmpty(parentProject)
	rec.ParentFolderID = orEmpty(parentFolder)
	rec.CreatedAt = time.UnixMilli(createdAt)
	rec.UpdatedAt = time.UnixMilli(updatedAt)

	noteIDs, err := childIDs(ctx, db, `SELECT id FROM notes WHERE parent_folder_id = ? ORDER BY created_at`, rec.ID)
	if err != nil {
		return rec, err
	}
	rec.NoteIDs = noteIDs

	subfolderIDs, err := childIDs(ctx, db, `SELECT id FROM folders WHERE parent_folder_id = ? ORDER BY created_at`, rec.ID)
	if err != nil {
		return rec, err
	}
	rec.SubfolderIDs = subfolderIDs
	return rec, nil
}

func childIDs(ctx context.Context, db *sql.DB, query, parentID string) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FindAll reads every folder.
func (s *FolderSource) FindAll(ctx context.Context) ([]record.FolderRecord, error) {
	return s.query(ctx, "findAll", `
		SELECT id, name, description, parent_project_id, parent_folder_id, created_at, updated_at
		FROM folders ORDER BY created_at`)
}

// FindByProjectID returns the folders hanging directly off a project.
func (s *FolderSource) FindByProjectID(ctx context.Context, projectID string) ([]record.FolderRecord, error) {
	return s.query(ctx, "findByProjectId", `
		SELECT id, name, description, parent_project_id, parent_folder_id, created_at, updated_at
		FROM folders WHERE parent_project_id = ? ORDER BY created_at`, projectID)
}

// FindByParentFolderID returns the direct subfolders of a folder.
func (s *FolderSource) FindByParentFolderID(ctx context.Context, folderID string) ([]record.FolderRecord, error) {
	return s.query(ctx, "findByParentFolderId", `
		SELECT id, name, description, parent_project_id, parent_folder_id, created_at, updated_at
		FROM folders WHERE parent_folder_id = ? ORDER BY created_at`, folderID)
}

func (s *FolderSource) query(ctx context.Context, op, query string, args ...any) ([]record.FolderRecord, error) {
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

	var out []record.FolderRecord
	for rows.Next() {
		rec, err := s.scanFolder(ctx, db, rows)
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

// Update rewrites an existing folder row, reporting false when absent.
func (s *FolderSource) Update(ctx context.Context, rec record.FolderRecord) (bool, error) {
	start := time.Now()

	db, err := s.handle(ctx, "update", rec.ID)
	if err != nil {
		s.tracker.Observe(start, err)
		return false, err
	}

	res, err := db.ExecContext(ctx, `
		UPDATE folders SET name = ?, description = ?, parent_project_id = ?, parent_folder_id = ?, updated_at = ?
		WHERE id = ?`,
		rec.Name, rec.Description, nullable(rec.ParentProjectID), nullable(rec.ParentFolderID),
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

// DeleteByID removes a folder row, reporting false when absent. Child notes
// and subfolders cascade.
func (s *FolderSource) DeleteByID(ctx context.Context, id string) (bool, error) {
	start := time.Now()

	db, err := s.handle(ctx, "deleteById", id)
	if err != nil {
		s.tracker.Observe(start, err)
		return false, err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
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

// Exists reports folder presence, swallowing failures as false.
func (s *FolderSource) Exists(ctx context.Context, id string) bool {
	start := time.Now()

	db, err := s.handle(ctx, "exists", id)
	if err != nil {
		s.tracker.Observe(start, err)
		return false
	}

	var one int
	err = db.QueryRowContext(ctx, `SELECT 1 FROM folders WHERE id = ?`, id).Scan(&one)
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

// Clear removes every folder and returns the count.
func (s *FolderSource) Clear(ctx context.Context) (int, error) {
	start := time.Now()

	db, err := s.handle(ctx, "clear", "")
	if err != nil {
		s.tracker.Observe(start, err)
		return 0, err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM folders`)
	if err != nil {
		err = datasource.NewSourceError(s.name, "clear", "", err)
		s.tracker.Observe(start, err)
		return 0, err
	}

	affected, _ := res.RowsAffected()
	s.tracker.Observe(start, nil)
	return int(affected), nil
}
