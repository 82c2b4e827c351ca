// Package pacman adapts the Arch system package manager to the store's
// Backend interface.
package pacman

import (
	"context"
	"os/exec"

	"github.com/Pomilon/linux-software-store/internal/executor"
	"github.com/Pomilon/linux-software-store/pkg/store"
)

const binary = "pacman"

// Backend drives pacman. Mutating operations run through the executor's
// privilege-escalation helper; queries do not.
type Backend struct {
	exec *executor.Executor
}

// New creates a pacman backend using the given executor.
func New(exec *executor.Executor) *Backend {
	return &Backend{exec: exec}
}

// Name returns the source tag for pacman records.
func (b *Backend) Name() store.Source {
	return store.SourcePacman
}

// DisplayName returns the human-readable backend name.
func (b *Backend) DisplayName() string {
	return "Pacman (system packages)"
}

// IsAvailable returns true if the pacman binary is on PATH.
func (b *Backend) IsAvailable() bool {
	_, err := exec.LookPath(binary)
	return err == nil
}

// ListInstalled queries pacman -Qi and parses the key/value blocks.
func (b *Backend) ListInstalled(ctx context.Context) ([]store.PackageRecord, error) {
	output, err := b.exec.Output(ctx, binary, "-Qi")
	if err != nil {
		return nil, err
	}
	return parseInstalled(output), nil
}

// CheckUpdates queries pacman -Qu for pending upgrades.
func (b *Backend) CheckUpdates(ctx context.Context) ([]store.PackageRecord, error) {
	output, err := b.exec.Output(ctx, binary, "-Qu")
	if err != nil {
		return nil, err
	}
	return parseUpdates(output), nil
}

// Search queries the sync repositories with pacman -Ss.
func (b *Backend) Search(ctx context.Context, term string) ([]store.PackageRecord, error) {
	output, err := b.exec.Output(ctx, binary, "-Ss", term)
	if err != nil {
		return nil, err
	}
	return parseSearch(output), nil
}

// Install installs the package through the escalation helper, streaming
// progress to emit.
func (b *Backend) Install(ctx context.Context, rec store.PackageRecord, emit store.EmitFunc) store.OperationOutcome {
	argv := b.exec.Privileged([]string{binary, "-S", "--noconfirm", rec.TargetID()})
	return b.stream(ctx, argv, rec, store.OpInstall, emit)
}

// Uninstall removes the package through the escalation helper.
func (b *Backend) Uninstall(ctx context.Context, rec store.PackageRecord, emit store.EmitFunc) store.OperationOutcome {
	argv := b.exec.Privileged([]string{binary, "-R", "--noconfirm", rec.TargetID()})
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
