package models

import "errors"

var (
	// ErrInvalidPriority is returned for priority values outside Priorities().
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrDummyProject is returned when a task would be moved into a computed project.
	ErrDummyProject = errors.New("project is a computed view")
)
