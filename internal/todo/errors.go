package todo

import "errors"

var (
	ErrNotReady           = errors.New("registry not initialized")
	ErrAlreadyInitialized = errors.New("registry already initialized")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")

	// ErrProjectPreserved is returned when renaming or removing a built-in project.
	ErrProjectPreserved = errors.New("project is built-in")

	// ErrUseChangeActive is returned when an update tries to set the active flag directly.
	ErrUseChangeActive = errors.New("active project must be changed with ChangeActiveProject")

	// ErrFlagsReadOnly is returned when an update tries to change preserve or dummy flags.
	ErrFlagsReadOnly = errors.New("project flags are read-only")

	// ErrInvalidTask and ErrInvalidProject are returned for nil arguments.
	ErrInvalidTask    = errors.New("task is nil")
	ErrInvalidProject = errors.New("project is nil")

	// ErrNoDefaultProject is returned by Init when the snapshot lacks a default project.
	ErrNoDefaultProject = errors.New("snapshot has no default project")
)
