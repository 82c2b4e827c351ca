package cli

import "errors"

var (
	// ErrNoTerm is returned when a search term is missing.
	ErrNoTerm = errors.New("no search term specified")

	// ErrPackageNotFound is returned when no record matches the requested name.
	ErrPackageNotFound = errors.New("package not found")

	// ErrAborted is returned when the user declines a confirmation prompt.
	ErrAborted = errors.New("operation aborted by user")
)
