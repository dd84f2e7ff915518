package repository

import (
	"plotter/pkg/entity"
	"plotter/pkg/record"
)

// Mapper converts between a domain entity and its stored record form. Records
// are plain values: ToEntity consumes the record it is given and ToRecord
// allocates a fresh one, so no ownership is shared across the boundary.
type Mapper[E any, R any] interface {
	ToRecord(e E) R
	ToEntity(r R) E
}

// ProjectMapper maps projects to project records.
type ProjectMapper struct{}

// ToRecord converts a project entity to its record form.
func (ProjectMapper) ToRecord(p *entity.Project) record.ProjectRecord {
	return record.ProjectRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		FolderIDs:   append([]string(nil), p.FolderIDs...),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToEntity converts a project record back to the domain entity.
func (ProjectMapper) ToEntity(r record.ProjectRecord) *entity.Project {
	return &entity.Project{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		FolderIDs:   append([]string(nil), r.FolderIDs...),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// FolderMapper maps folders to folder records.
type FolderMapper struct{}

// ToRecord converts a folder entity to its record form.
func (FolderMapper) ToRecord(f *entity.Folder) record.FolderRecord {
	return record.FolderRecord{
		ID:              f.ID,
		Name:            f.Name,
		Description:     f.Description,
		ParentProjectID: f.ParentProjectID,
		ParentFolderID:  f.ParentFolderID,
		NoteIDs:         append([]string(nil), f.NoteIDs...),
		SubfolderIDs:    append([]string(nil), f.SubfolderIDs...),
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// ToEntity converts a folder record back to the domain entity.
func (FolderMapper) ToEntity(r record.FolderRecord) *entity.Folder {
	return &entity.Folder{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		ParentProjectID: r.ParentProjectID,
		ParentFolderID:  r.ParentFolderID,
		NoteIDs:         append([]string(nil), r.NoteIDs...),
		SubfolderIDs:    append([]string(nil), r.SubfolderIDs...),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// NoteMapper maps notes to note records.
type NoteMapper struct{}

// ToRecord converts a note entity to its record form.
func (NoteMapper) ToRecord(n *entity.Note) record.NoteRecord {
	return record.NoteRecord{
		ID:             n.ID,
		Name:           n.Name,
		Path:           n.Path,
		Content:        n.Content,
		ParentFolderID: n.ParentFolderID,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}

// ToEntity converts a note record back to the domain entity.
func (NoteMapper) ToEntity(r record.NoteRecord) *entity.Note {
	return &entity.Note{
		ID:             r.ID,
		Name:           r.Name,
		Path:           r.Path,
		Content:        r.Content,
		ParentFolderID: r.ParentFolderID,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
