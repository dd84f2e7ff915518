package executor

import (
	"context"
	"errors"

	"plotter/pkg/datasource"
	"plotter/pkg/repository"
	"plotter/pkg/router"
)

// ValidationError marks a failure caused by bad input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation failure with the given message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// BusinessRuleError marks a violated domain invariant.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

// NewBusinessRuleError creates a business rule failure with the given
// message.
func NewBusinessRuleError(message string) error {
	return &BusinessRuleError{Message: message}
}

// Categorize assigns the failure taxonomy. The executor is the only layer
// that does this; lower layers just wrap errors with context.
func Categorize(err error) Category {
	if err == nil {
		return CategoryNone
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return CategoryValidation
	}
	var berr *BusinessRuleError
	if errors.As(err, &berr) {
		return CategoryBusinessRule
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}
	if errors.Is(err, datasource.ErrSourceFailure) ||
		errors.Is(err, router.ErrAllSourcesFailed) ||
		errors.Is(err, router.ErrNoSourcesAvailable) ||
		errors.Is(err, repository.ErrNoSources) ||
		errors.Is(err, repository.ErrNotFoundAnywhere) {
		return CategoryRepository
	}
	return CategorySystem
}
