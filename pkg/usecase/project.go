package usecase

import (
	"context"
	"fmt"

	"plotter/pkg/entity"
	"plotter/pkg/executor"
)

// CreateProjectRequest creates a new empty project.
type CreateProjectRequest struct {
	Name        string `validate:"required,max=255"`
	Description string `validate:"max=2048"`
}

// CreateProject persists a new project and returns it.
func (u *UseCases) CreateProject(ctx context.Context, req CreateProjectRequest) executor.Response[*entity.Project] {
	return executor.Execute(ctx, u.cfg, "createProject",
		func() error { return u.validateRequest(req) },
		func(ctx context.Context) (*entity.Project, error) {
			p := entity.NewProject(newID(), req.Name, req.Description)
			if _, err := u.projects.Save(ctx, p); err != nil {
				return nil, err
			}
			return p, nil
		})
}

// GetProjectRequest fetches one project and its top-level folders.
type GetProjectRequest struct {
	ID string `validate:"required"`
}

// ProjectWithFolders is a project together with its resolved top-level
// folders.
type ProjectWithFolders struct {
	Project *entity.Project
	Folders []*entity.Folder
}

// GetProject returns a project and its top-level folders. A missing project
// is a business rule failure, not a repository one, so it is never retried.
func (u *UseCases) GetProject(ctx context.Context, req GetProjectRequest) executor.Response[ProjectWithFolders] {
	return executor.Execute(ctx, u.cfg, "getProject",
		func() error { return u.validateRequest(req) },
		func(ctx context.Context) (ProjectWithFolders, error) {
			p, ok, err := u.projects.FindByID(ctx, req.ID)
			if err != nil {
				return ProjectWithFolders{}, err
			}
			if !ok {
				return ProjectWithFolders{}, executor.NewBusinessRuleError(
					fmt.Sprintf("project %q not found", req.ID))
			}

			folders, err := u.folders.FindByProjectID(ctx, p.ID)
			if err != nil {
				return ProjectWithFolders{}, err
			}
			return ProjectWithFolders{Project: p, Folders: folders}, nil
		})
}

// ListProjects returns every project.
func (u *UseCases) ListProjects(ctx context.Context) executor.Response[[]*entity.Project] {
	return executor.Execute(ctx, u.cfg, "listProjects", nil,
		func(ctx context.Context) ([]*entity.Project, error) {
			return u.projects.FindAll(ctx)
		})
}

// DeleteProjectRequest deletes a project. Force removes the project together
// with its folder tree and notes; without it a non-empty project is refused.
type DeleteProjectRequest struct {
	ID    string `validate:"required"`
	Force bool
}

// DeleteProject removes a project, refusing non-empty projects unless forced.
func (u *UseCases) DeleteProject(ctx context.Context, req DeleteProjectRequest) executor.Response[bool] {
	return executor.Execute(ctx, u.cfg, "deleteProject",
		func() error { return u.validateRequest(req) },
		func(ctx context.Context) (bool, error) {
			p, ok, err := u.projects.FindByID(ctx, req.ID)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, executor.NewBusinessRuleError(
					fmt.Sprintf("project %q not found", req.ID))
			}

			if len(p.FolderIDs) > 0 {
				if !req.Force {
					return false, executor.NewBusinessRuleError(
						fmt.Sprintf("project %q still has %d folders; pass force to delete anyway",
							req.ID, len(p.FolderIDs)))
				}
				folders, err := u.folders.FindByProjectID(ctx, p.ID)
				if err != nil {
					return false, err
				}
				for _, f := range folders {
					if err := u.deleteFolderTree(ctx, f); err != nil {
						return false, err
					}
				}
			}

			return u.projects.DeleteByID(ctx, req.ID)
		})
}

// deleteFolderTree removes a folder, its notes and its subfolders, depth
// first.
func (u *UseCases) deleteFolderTree(ctx context.Context, f *entity.Folder) error {
	subfolders, err := u.folders.FindByParentFolderID(ctx, f.ID)
	if err != nil {
		return err
	}
	for _, sub := range subfolders {
		if err := u.deleteFolderTree(ctx, sub); err != nil {
			return err
		}
	}

	notes, err := u.notes.FindByParentFolderID(ctx, f.ID)
	if err != nil {
		return err
	}
	for _, n := range notes {
		if _, err := u.notes.DeleteByID(ctx, n.ID); err != nil {
			return err
		}
	}

	_, err = u.folders.DeleteByID(ctx, f.ID)
	return err
}
