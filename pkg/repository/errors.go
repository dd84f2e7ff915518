package repository

import "errors"

var (
	// ErrNoSources is returned when an operation needs at least one write
	// target and the router selected none. This is a configuration problem,
	// not a data problem.
	ErrNoSources = errors.New("no datasource available for operation")

	// ErrNotFoundAnywhere is returned when an update or delete completed on
	// at least one source but no source held the record.
	ErrNotFoundAnywhere = errors.New("record not found in any datasource")

	// errSourceMiss marks a clean not-found from a single source inside a
	// read fallback loop. It never escapes the repository.
	errSourceMiss = errors.New("record not present in source")
)
