package datasource

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceFailure is the root of every error a source returns when it
	// cannot honor a request.
	ErrSourceFailure = errors.New("datasource failure")

	// ErrNotConnected is returned when an operation is attempted on a source
	// that has not been connected.
	ErrNotConnected = errors.New("datasource not connected")

	// ErrDuplicateID is returned when saving a record whose ID is already
	// stored.
	ErrDuplicateID = errors.New("record id already exists")
)

// SourceError annotates a failure with the source name, the operation and the
// entity ID involved so operators can localize faults without log
// correlation.
type SourceError struct {
	Source   string
	Op       string
	EntityID string
	Err      error
}

func (e *SourceError) Error() string {
	if e.EntityID == "" {
		return fmt.Sprintf("datasource %q: %s: %v", e.Source, e.Op, e.Err)
	}
	return fmt.Sprintf("datasource %q: %s %q: %v", e.Source, e.Op, e.EntityID, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError wraps err with source, operation and entity context. The
// result unwraps to err and matches ErrSourceFailure via errors.Is.
func NewSourceError(source, op, entityID string, err error) *SourceError {
	if !errors.Is(err, ErrSourceFailure) {
		err = fmt.Errorf("%w: %w", ErrSourceFailure, err)
	}
	return &SourceError{Source: source, Op: op, EntityID: entityID, Err: err}
}
