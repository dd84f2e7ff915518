package repository

import (
	"context"

	"plotter/pkg/datasource"
	"plotter/pkg/entity"
	"plotter/pkg/record"
	"plotter/pkg/router"
)

// ProjectRepository is the multi-source repository for projects.
type ProjectRepository struct {
	*Repository[datasource.ProjectSource, record.ProjectRecord, *entity.Project]
}

// NewProjectRepository creates a project repository over the given router.
func NewProjectRepository(rt *router.Router[datasource.ProjectSource]) *ProjectRepository {
	return &ProjectRepository{
		Repository: New[datasource.ProjectSource, record.ProjectRecord, *entity.Project](
			"project", rt, ProjectMapper{}, func(p *entity.Project) string { return p.ID },
		),
	}
}

// FolderRepository is the multi-source repository for folders.
type FolderRepository struct {
	*Repository[datasource.FolderSource, record.FolderRecord, *entity.Folder]
}

// NewFolderRepository creates a folder repository over the given router.
func NewFolderRepository(rt *router.Router[datasource.FolderSource]) *FolderRepository {
	return &FolderRepository{
		Repository: New[datasource.FolderSource, record.FolderRecord, *entity.Folder](
			"folder", rt, FolderMapper{}, func(f *entity.Folder) string { return f.ID },
		),
	}
}

// FindByProjectID returns the folders hanging directly off a project, from
// the first source that answers.
func (r *FolderRepository) FindByProjectID(ctx context.Context, projectID string) ([]*entity.Folder, error) {
	recs, err := router.ExecuteRead(ctx, r.router,
		func(ctx context.Context, ds datasource.FolderSource) ([]record.FolderRecord, error) {
			return ds.FindByProjectID(ctx, projectID)
		})
	if err != nil {
		return nil, r.wrap("findByProjectId", projectID, err)
	}
	return r.mapAll(recs), nil
}

// FindByParentFolderID returns the direct subfolders of a folder.
func (r *FolderRepository) FindByParentFolderID(ctx context.Context, folderID string) ([]*entity.Folder, error) {
	recs, err := router.ExecuteRead(ctx, r.router,
		func(ctx context.Context, ds datasource.FolderSource) ([]record.FolderRecord, error) {
			return ds.FindByParentFolderID(ctx, folderID)
		})
	if err != nil {
		return nil, r.wrap("findByParentFolderId", folderID, err)
	}
	return r.mapAll(recs), nil
}

func (r *FolderRepository) mapAll(recs []record.FolderRecord) []*entity.Folder {
	folders := make([]*entity.Folder, 0, len(recs))
	for _, rec := range recs {
		folders = append(folders, r.mapper.ToEntity(rec))
	}
	return folders
}

// NoteRepository is the multi-source repository for notes.
type NoteRepository struct {
	*Repository[datasource.NoteSource, record.NoteRecord, *entity.Note]
}

// NewNoteRepository creates a note repository over the given router.
func NewNoteRepository(rt *router.Router[datasource.NoteSource]) *NoteRepository {
	return &NoteRepository{
		Repository: New[datasource.NoteSource, record.NoteRecord, *entity.Note](
			"note", rt, NoteMapper{}, func(n *entity.Note) string { return n.ID },
		),
	}
}

// FindByParentFolderID returns the notes inside a folder, from the first
// source that answers.
func (r *NoteRepository) FindByParentFolderID(ctx context.Context, folderID string) ([]*entity.Note, error) {
	recs, err := router.ExecuteRead(ctx, r.router,
		func(ctx context.Context, ds datasource.NoteSource) ([]record.NoteRecord, error) {
			return ds.FindByParentFolderID(ctx, folderID)
		})
	if err != nil {
		return nil, r.wrap("findByParentFolderId", folderID, err)
	}

	notes := make([]*entity.Note, 0, len(recs))
	for _, rec := range recs {
		notes = append(notes, r.mapper.ToEntity(rec))
	}
	return notes, nil
}
