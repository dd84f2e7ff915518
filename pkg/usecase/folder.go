package usecase

import (
	"context"
	"fmt"

	"plotter/pkg/entity"
	"plotter/pkg/executor"
)

// CreateFolderRequest creates a folder under exactly one parent: a project
// for top-level folders or another folder for nesting.
type CreateFolderRequest struct {
	Name            string `validate:"required,max=255"`
	Description     string `validate:"max=2048"`
	ParentProjectID string
	ParentFolderID  string
}

// CreateFolder persists a new folder and links it into its parent.
func (u *UseCases) CreateFolder(ctx context.Context, req CreateFolderRequest) executor.Response[*entity.Folder] {
	return executor.Execute(ctx, u.cfg, "createFolder",
		func() error { return u.validateRequest(req) },
		func(ctx context.Context) (*entity.Folder, error) {
			if (req.ParentProjectID == "") == (req.ParentFolderID == "") {
				return nil, executor.NewBusinessRuleError(
					"a folder needs exactly one parent, either a project or a folder")
			}

			f := entity.NewFolder(newID(), req.Name, req.Description,
				req.ParentProjectID, req.ParentFolderID)

			if req.ParentProjectID != "" {
				parent, ok, err := u.projects.FindByID(ctx, req.ParentProjectID)
				if err != nil {
					return nil, err
				}
				if !ok {
					return nil, executor.NewBusinessRuleError(
						fmt.Sprintf("parent project %q not found", req.ParentProjectID))
				}
				if _, err := u.folders.Save(ctx, f); err != nil {
					return nil, err
				}
				parent.AddFolderID(f.ID)
				return f, u.projects.Update(ctx, parent)
			}

			parent, ok, err := u.folders.FindByID(ctx, req.ParentFolderID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, executor.NewBusinessRuleError(
					fmt.Sprintf("parent folder %q not found", req.ParentFolderID))
			}
			if _, err := u.folders.Save(ctx, f); err != nil {
				return nil, err
			}
			parent.AddSubfolderID(f.ID)
			return f, u.folders.Update(ctx, parent)
		})
}

// MoveFolderRequest reparents a folder under a new project or folder.
// Exactly one target must be set.
type MoveFolderRequest struct {
	FolderID        string `validate:"required"`
	TargetProjectID string
	TargetFolderID  string
}

// MoveFolder reparents a folder. Moving a folder into itself or into any of
// its descendants is refused.
func (u *UseCases) MoveFolder(ctx context.Context, req MoveFolderRequest) executor.Response[*entity.Folder] {
	return executor.Execute(ctx, u.cfg, "moveFolder",
		func() error { return u.validateRequest(req) },
		func(ctx context.Context) (*entity.Folder, error) {
			if (req.TargetProjectID == "") == (req.TargetFolderID == "") {
				return nil, executor.NewBusinessRuleError(
					"a move needs exactly one target, either a project or a folder")
			}
			if req.TargetFolderID == req.FolderID {
				return nil, executor.NewBusinessRuleError("cannot move a folder into itself")
			}

			f, ok, err := u.folders.FindByID(ctx, req.FolderID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, executor.NewBusinessRuleError(
					fmt.Sprintf("folder %q not found", req.FolderID))
			}

			if req.TargetFolderID != "" {
				if err := u.checkNoCycle(ctx, req.FolderID, req.TargetFolderID); err != nil {
					return nil, err
				}
			}

			if err := u.unlinkFolder(ctx, f); err != nil {
				return nil, err
			}

			if req.TargetProjectID != "" {
				target, ok, err := u.projects.FindByID(ctx, req.TargetProjectID)
				if err != nil {
					return nil, err
				}
				if !ok {
					return nil, executor.NewBusinessRuleError(
						fmt.Sprintf("target project %q not found", req.TargetProjectID))
				}
				target.AddFolderID(f.ID)
				if err := u.projects.Update(ctx, target); err != nil {
					return nil, err
				}
				f.ParentProjectID = req.TargetProjectID
				f.ParentFolderID = ""
			} else {
				target, ok, err := u.folders.FindByID(ctx, req.TargetFolderID)
				if err != nil {
					return nil, err
				}
				if !ok {
					return nil, executor.NewBusinessRuleError(
						fmt.Sprintf("target folder %q not found", req.TargetFolderID))
				}
				target.AddSubfolderID(f.ID)
				if err := u.folders.Update(ctx, target); err != nil {
					return nil, err
				}
				f.ParentProjectID = ""
				f.ParentFolderID = req.TargetFolderID
			}

			return f, u.folders.Update(ctx, f)
		})
}

// checkNoCycle walks up from the target folder; finding the moved folder
// among the target's ancestors means the move would create a cycle.
func (u *UseCases) checkNoCycle(ctx context.Context, folderID, targetID string) error {
	for current := targetID; current != ""; {
		if current == folderID {
			return executor.NewBusinessRuleError(
				fmt.Sprintf("moving folder %q under %q would create a cycle", folderID, targetID))
		}
		f, ok, err := u.folders.FindByID(ctx, current)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		current = f.ParentFolderID
	}
	return nil
}

// unlinkFolder detaches the folder from whichever parent currently lists it.
func (u *UseCases) unlinkFolder(ctx context.Context, f *entity.Folder) error {
	if f.ParentProjectID != "" {
		parent, ok, err := u.projects.FindByID(ctx, f.ParentProjectID)
		if err != nil {
			return err
		}
		if ok && parent.RemoveFolderID(f.ID) {
			return u.projects.Update(ctx, parent)
		}
		return nil
	}
	if f.ParentFolderID != "" {
		parent, ok, err := u.folders.FindByID(ctx, f.ParentFolderID)
		if err != nil {
			return err
		}
		if ok && parent.RemoveSubfolderID(f.ID) {
			return u.folders.Update(ctx, parent)
		}
	}
	return nil
}
