package store

import "context"

// Backend is the adapter interface every package backend implements.
// Query methods degrade gracefully: a backend that cannot answer returns
// an empty slice and an error, and the catalog treats the listing as empty.
type Backend interface {
	// Name returns the source tag for records produced by this backend.
	Name() Source

	// DisplayName returns a human-readable name (e.g. "Pacman (system)").
	DisplayName() string

	// IsAvailable returns true if the backend's binary is installed.
	IsAvailable() bool

	// ListInstalled returns all installed packages known to this backend.
	ListInstalled(ctx context.Context) ([]PackageRecord, error)

	// CheckUpdates returns packages with pending updates, each described
	// with a human-readable "update available" summary.
	CheckUpdates(ctx context.Context) ([]PackageRecord, error)

	// Search queries the backend's remote catalog for the term.
	Search(ctx context.Context, term string) ([]PackageRecord, error)

	// Install installs the record's target package, relaying progress
	// events to emit as they become derivable from the backend's output.
	Install(ctx context.Context, rec PackageRecord, emit EmitFunc) OperationOutcome

	// Uninstall removes the record's target package, relaying progress.
	Uninstall(ctx context.Context, rec PackageRecord, emit EmitFunc) OperationOutcome
}
