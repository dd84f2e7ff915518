package usecase

import (
	"context"
	"fmt"

	"plotter/pkg/entity"
	"plotter/pkg/executor"
)

// CreateNoteRequest creates a note inside a folder. Path is optional; when
// empty a notes/<id>.md path is derived.
type CreateNoteRequest struct {
	Name           string `validate:"required,max=255"`
	Content        string
	Path           string `validate:"max=1024"`
	ParentFolderID string `validate:"required"`
}

// CreateNote persists a new note and links it into its folder.
func (u *UseCases) CreateNote(ctx context.Context, req CreateNoteRequest) executor.Response[*entity.Note] {
	return executor.Execute(ctx, u.cfg, "createNote",
		func() error { return u.validateRequest(req) },
		func(ctx context.Context) (*entity.Note, error) {
			folder, ok, err := u.folders.FindByID(ctx, req.ParentFolderID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, executor.NewBusinessRuleError(
					fmt.Sprintf("folder %q not found", req.ParentFolderID))
			}

			id := newID()
			path := req.Path
			if path == "" {
				path = fmt.Sprintf("notes/%s.md", id)
			}

			n := entity.NewNote(id, req.Name, path, req.ParentFolderID)
			n.SetContent(req.Content)
			if _, err := u.notes.Save(ctx, n); err != nil {
				return nil, err
			}

			folder.AddNoteID(n.ID)
			return n, u.folders.Update(ctx, folder)
		})
}

// MoveNoteRequest reparents a note into another folder.
type MoveNoteRequest struct {
	NoteID         string `validate:"required"`
	TargetFolderID string `validate:"required"`
}

// MoveNote reparents a note, relinking both folders.
func (u *UseCases) MoveNote(ctx context.Context, req MoveNoteRequest) executor.Response[*entity.Note] {
	return executor.Execute(ctx, u.cfg, "moveNote",
		func() error { return u.validateRequest(req) },
		func(ctx context.Context) (*entity.Note, error) {
			n, ok, err := u.notes.FindByID(ctx, req.NoteID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, executor.NewBusinessRuleError(
					fmt.Sprintf("note %q not found", req.NoteID))
			}

			target, ok, err := u.folders.FindByID(ctx, req.TargetFolderID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, executor.NewBusinessRuleError(
					fmt.Sprintf("target folder %q not found", req.TargetFolderID))
			}

			if n.ParentFolderID != "" && n.ParentFolderID != req.TargetFolderID {
				source, ok, err := u.folders.FindByID(ctx, n.ParentFolderID)
				if err != nil {
					return nil, err
				}
				if ok && source.RemoveNoteID(n.ID) {
					if err := u.folders.Update(ctx, source); err != nil {
						return nil, err
					}
				}
			}

			target.AddNoteID(n.ID)
			if err := u.folders.Update(ctx, target); err != nil {
				return nil, err
			}

			n.Move(req.TargetFolderID)
			return n, u.notes.Update(ctx, n)
		})
}

// GetNoteContentRequest fetches a note's body.
type GetNoteContentRequest struct {
	NoteID string `validate:"required"`
}

// GetNoteContent returns the note's content.
func (u *UseCases) GetNoteContent(ctx context.Context, req GetNoteContentRequest) executor.Response[string] {
	return executor.Execute(ctx, u.cfg, "getNoteContent",
		func() error { return u.validateRequest(req) },
		func(ctx context.Context) (string, error) {
			n, ok, err := u.notes.FindByID(ctx, req.NoteID)
			if err != nil {
				return "", err
			}
			if !ok {
				return "", executor.NewBusinessRuleError(
					fmt.Sprintf("note %q not found", req.NoteID))
			}
			return n.Content, nil
		})
}
