// Package usecase implements the application operations on top of the
// repositories. Every operation validates its request, runs through the
// executor and reports failures through its category taxonomy.
package usecase

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"plotter/pkg/executor"
	"plotter/pkg/repository"
)

// UseCases bundles the application operations over the three repositories.
type UseCases struct {
	projects *repository.ProjectRepository
	folders  *repository.FolderRepository
	notes    *repository.NoteRepository

	cfg      executor.Config
	validate *validator.Validate
}

// New creates the use case layer. cfg applies to every operation.
func New(
	projects *repository.ProjectRepository,
	folders *repository.FolderRepository,
	notes *repository.NoteRepository,
	cfg executor.Config,
) *UseCases {
	return &UseCases{
		projects: projects,
		folders:  folders,
		notes:    notes,
		cfg:      cfg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// validateRequest runs struct validation and converts failures into
// validation errors the executor recognizes.
func (u *UseCases) validateRequest(req any) error {
	if err := u.validate.Struct(req); err != nil {
		return executor.NewValidationError(err.Error())
	}
	return nil
}

// newID mints an entity identifier.
func newID() string {
	return uuid.NewString()
}
