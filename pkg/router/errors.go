package router

import "errors"

var (
	// ErrNoSourcesAvailable is returned when an operation has no available
	// source to run against.
	ErrNoSourcesAvailable = errors.New("no datasource available")

	// ErrAllSourcesFailed is returned when every attempted source failed.
	ErrAllSourcesFailed = errors.New("all datasources failed")

	// ErrDuplicateSource is returned when registering a source whose name is
	// already taken.
	ErrDuplicateSource = errors.New("datasource name already registered")
)
