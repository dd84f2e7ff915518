package factory

import "errors"

var (
	// ErrUnknownSourceType is returned for a source config with a type no
	// backend implements.
	ErrUnknownSourceType = errors.New("unknown source type")
	// ErrUnknownStrategy is returned for a routing config naming no known
	// strategy.
	ErrUnknownStrategy = errors.New("unknown routing strategy")
	// ErrMissingParam is returned when a backend param a source type needs is
	// absent.
	ErrMissingParam = errors.New("missing source param")
)
