package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrConfig indicates a missing, malformed, or invalid configuration file.
	ErrConfig = errors.New("configuration error")

	// ErrDiscovery indicates a search root could not be traversed.
	ErrDiscovery = errors.New("discovery error")

	// ErrResolution indicates malformed module filter arguments.
	ErrResolution = errors.New("module resolution error")

	// ErrInvalidPath indicates a path that cannot be resolved to a module directory.
	ErrInvalidPath = errors.New("invalid path")

	// ErrCommand indicates an external command failed to start or exited non-zero.
	ErrCommand = errors.New("external command failed")

	// ErrLocked indicates another run holds the workspace lock.
	ErrLocked = errors.New("workspace locked")
)
