// Package flatpak adapts the Flatpak application distributor to the
// store's Backend interface.
package flatpak

import (
	"context"
	"os/exec"

	"github.com/Pomilon/linux-software-store/internal/executor"
	"github.com/Pomilon/linux-software-store/pkg/store"
)

const binary = "flatpak"

// DefaultRemote is the remote applications are installed from when the
// configuration does not name one.
const DefaultRemote = "flathub"

// Backend drives flatpak. Flatpak manages its own privilege elevation
// through polkit, so commands never go through the escalation helper.
type Backend struct {
	exec   *executor.Executor
	remote string
}

// New creates a flatpak backend installing from the given remote.
func New(exec *executor.Executor, remote string) *Backend {
	if remote == "" {
		remote = DefaultRemote
	}
	return &Backend{exec: exec, remote: remote}
}

// Name returns the source tag for flatpak records.
func (b *Backend) Name() store.Source {
	return store.SourceFlatpak
}

// DisplayName returns the human-readable backend name.
func (b *Backend) DisplayName() string {
	return "Flatpak (sandboxed apps)"
}

// IsAvailable returns true if the flatpak binary is on PATH.
func (b *Backend) IsAvailable() bool {
	_, err := exec.LookPath(binary)
	return err == nil
}

// ListInstalled queries the installed application list as tab-separated
// columns.
func (b *Backend) ListInstalled(ctx context.Context) ([]store.PackageRecord, error) {
	output, err := b.exec.Output(ctx, binary, "list", "--app", "--columns=application,version,description")
	if err != nil {
		return nil, err
	}
	return parseList(output), nil
}

// CheckUpdates dry-runs an update to discover pending application
// updates. --assumeno answers every prompt with no, so nothing changes.
func (b *Backend) CheckUpdates(ctx context.Context) ([]store.PackageRecord, error) {
	output, err := b.exec.Output(ctx, binary, "update", "--app", "--assumeno")
	if err != nil {
		return nil, err
	}
	return parseUpdates(output), nil
}

// Search queries the configured remotes.
func (b *Backend) Search(ctx context.Context, term string) ([]store.PackageRecord, error) {
	output, err := b.exec.Output(ctx, binary, "search", "--columns=application,version,description", term)
	if err != nil {
		return nil, err
	}
	return parseSearch(output), nil
}

// Install installs the application from the configured remote, streaming
// progress to emit.
func (b *Backend) Install(ctx context.Context, rec store.PackageRecord, emit store.EmitFunc) store.OperationOutcome {
	argv := []string{binary, "install", "-y", b.remote, rec.TargetID()}
	return b.stream(ctx, argv, rec, store.OpInstall, emit)
}

// Uninstall removes the application.
func (b *Backend) Uninstall(ctx context.Context, rec store.PackageRecord, emit store.EmitFunc) store.OperationOutcome {
	argv := []string{binary, "uninstall", "-y", rec.TargetID()}
	return b.stream(ctx, argv, rec, store.OpUninstall, emit)
}

func (b *Backend) stream(ctx context.Context, argv []string, rec store.PackageRecord, kind store.OperationKind, emit store.EmitFunc) store.OperationOutcome {
	id := rec.TargetID()
	outcome := b.exec.Stream(ctx, argv, func(status string, percent int) {
		emit(store.ProgressEvent{
			ID:      id,
			Name:    rec.Name,
			Kind:    kind,
			Status:  status,
			Percent: percent,
		})
	})
	return store.OperationOutcome{Success: outcome.Success, Message: outcome.Message}
}
