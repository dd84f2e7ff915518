package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"plotter/pkg/datasource"
	"plotter/pkg/record"
)

// ProjectSource stores project records in the projects table. Folder IDs are
// reconstructed from the folders table on read.
type ProjectSource struct {
	source
}

// NewProjectSource creates a SQLite project source over the shared database.
func NewProjectSource(name string, priority int, db *DB) *ProjectSource {
	return &ProjectSource{source: source{name: name, priority: priority, db: db}}
}

// Save upserts the project row.
func (s *ProjectSource) Save(ctx context.Context, rec record.ProjectRecord) (string, error) {
	start := time.Now()

	db, err := s.handle(ctx, "save", rec.ID)
	if err != nil {
		s.tracker.Observe(start, err)
		return "", err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO projects (id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Name, rec.Description, rec.CreatedAt.UnixMilli(), rec.UpdatedAt.UnixMilli())
	if err != nil {
		err = datasource.NewSourceError(s.name, "save", rec.ID, err)
		s.tracker.Observe(start, err)
		return "", err
	}

	s.tracker.Observe(start, nil)
	return rec.ID, nil
}

// FindByID reads one project and its folder IDs.
func (s *ProjectSource) FindByID(ctx context.Context, id string) (record.ProjectRecord, bool, error) {
	start := time.Now()
	var zero record.ProjectRecord

	db, err := s.handle(ctx, "findById", id)
	if err != nil {
		s.tracker.Observe(start, err)
		return zero, false, err
	}

	rec, err := s.scanProject(ctx, db, id)
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

func (s *ProjectSource) scanProject(ctx context.Context, db *sql.DB, id string) (record.ProjectRecord, error) {
	var rec record.ProjectRecord
	var description sql.NullString
	var createdAt, updatedAt int64

	row := db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM projects WHERE id = ?`, id)
	if err := row.Scan(&rec.ID, &rec.Name, &description, &createdAt, &updatedAt); err != nil {
		return rec, err
	}
	rec.Description = orEmpty(description)
	rec.CreatedAt = time.UnixMilli(createdAt)
	rec.UpdatedAt = time.UnixMilli(updatedAt)

	folderIDs, err := s.folderIDs(ctx, db, rec.ID)
	if err != nil {
		return rec, err
	}
	rec.FolderIDs = folderIDs
	return rec, nil
}

func (s *ProjectSource) folderIDs(ctx context.Context, db *sql.DB, projectID string) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id FROM folders WHERE parent_project_id = ? ORDER BY created_at`, projectID)
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

// FindAll reads every project.
func (s *ProjectSource) FindAll(ctx context.Context) ([]record.ProjectRecord, error) {
	start := time.Now()

	db, err := s.handle(ctx, "findAll", "")
	if err != nil {
		s.tracker.Observe(start, err)
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT id FROM projects ORDER BY created_at`)
	if err != nil {
		err = datasource.NewSourceError(s.name, "findAll", "", err)
		s.tracker.Observe(start, err)
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			err = datasource.NewSourceError(s.name, "findAll", "", err)
			s.tracker.Observe(start, err)
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		err = datasource.NewSourceError(s.name, "findAll", "", err)
		s.tracker.Observe(start, err)
		return nil, err
	}

	out := make([]record.ProjectRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := s.scanProject(ctx, db, id)
		if err != nil {
			err = datasource.NewSourceError(s.name, "findAll", id, err)
			s.tracker.Observe(start, err)
			return nil, err
		}
		out = append(out, rec)
	}

	s.tracker.Observe(start, nil)
	return out, nil
}

// Update rewrites an existing project row, reporting false when absent.
func (s *ProjectSource) Update(ctx context.Context, rec record.ProjectRecord) (bool, error) {
	start := time.Now()

	db, err := s.handle(ctx, "update", rec.ID)
	if err != nil {
		s.tracker.Observe(start, err)
		return false, err
	}

	res, err := db.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		rec.Name, rec.Description, rec.UpdatedAt.UnixMilli(), rec.ID)
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

// DeleteByID removes a project row, reporting false when absent. Child
// folders and notes cascade.
func (s *ProjectSource) DeleteByID(ctx context.Context, id string) (bool, error) {
	start := time.Now()

	db, err := s.handle(ctx, "deleteById", id)
	if err != nil {
		s.tracker.Observe(start, err)
		return false, err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
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

// Exists reports project presence, swallowing failures as false.
func (s *ProjectSource) Exists(ctx context.Context, id string) bool {
	start := time.Now()

	db, err := s.handle(ctx, "exists", id)
	if err != nil {
		s.tracker.Observe(start, err)
		return false
	}

	var one int
	err = db.QueryRowContext(ctx, `SELECT 1 FROM projects WHERE id = ?`, id).Scan(&one)
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

// Clear removes every project and returns the count.
func (s *ProjectSource) Clear(ctx context.Context) (int, error) {
	start := time.Now()

	db, err := s.handle(ctx, "clear", "")
	if err != nil {
		s.tracker.Observe(start, err)
		return 0, err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM projects`)
	if err != nil {
		err = datasource.NewSourceError(s.name, "clear", "", err)
		s.tracker.Observe(start, err)
		return 0, err
	}

	affected, _ := res.RowsAffected()
	s.tracker.Observe(start, nil)
	return int(affected), nil
}
