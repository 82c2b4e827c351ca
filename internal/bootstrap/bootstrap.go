// Package bootstrap performs the one-time prerequisite check: detect
// the system package manager and install any missing required tools.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Pomilon/linux-software-store/internal/executor"
	"github.com/Pomilon/linux-software-store/pkg/store/detector"
)

// RequiredPackages are the tools the store needs beyond the system
// package manager itself.
var RequiredPackages = []string{"flatpak"}

// State answers whether the prerequisite check already ran, and records
// that it did. Owned by the startup sequence and injected here.
type State interface {
	Done() bool
	MarkDone() error
}

// FileState marks completion by creating a file.
type FileState struct {
	Path string
}

// Done reports whether the marker file exists.
func (f *FileState) Done() bool {
	_, err := os.Stat(f.Path)
	return err == nil
}

// MarkDone creates the marker file.
func (f *FileState) MarkDone() error {
	return os.WriteFile(f.Path, []byte("done\n"), 0644)
}

// ReportFunc receives human-readable progress lines during the check.
type ReportFunc func(message string)

// ConfirmFunc asks the user to approve an installation.
type ConfirmFunc func(prompt string) bool

// Checker runs the prerequisite check.
type Checker struct {
	State   State
	Exec    *executor.Executor
	Report  ReportFunc
	Confirm ConfirmFunc

	// Variant is swappable for tests; defaults to detector.SystemVariant.
	Variant func() detector.Variant
	// HasBinary is swappable for tests; defaults to detector.HasBinary.
	HasBinary func(name string) bool
}

// NewChecker wires a checker with the standard detector probes.
func NewChecker(state State, exec *executor.Executor, report ReportFunc, confirm ConfirmFunc) *Checker {
	return &Checker{
		State:     state,
		Exec:      exec,
		Report:    report,
		Confirm:   confirm,
		Variant:   detector.SystemVariant,
		HasBinary: detector.HasBinary,
	}
}

// Run performs the check unless it already succeeded once. It detects
// the system package manager, installs missing required tools through
// the escalation helper, and marks the state done on success.
func (c *Checker) Run(ctx context.Context) error {
	if c.State.Done() {
		return nil
	}

	c.report("Starting initial system check...")

	variant := c.Variant()
	if variant == detector.VariantUnknown {
		return fmt.Errorf("no supported package manager (apt, yum, dnf, pacman) found on this system")
	}
	c.report(fmt.Sprintf("Detected system package manager: %s", variant))

	var missing []string
	for _, pkg := range RequiredPackages {
		if !c.HasBinary(pkg) {
			missing = append(missing, pkg)
		}
	}

	if len(missing) == 0 {
		c.report("All required tools are already installed.")
		return c.markDone()
	}

	for _, pkg := range missing {
		if c.Confirm != nil && !c.Confirm(fmt.Sprintf("'%s' is not installed. Install it using %s?", pkg, variant)) {
			return fmt.Errorf("installation of %q declined", pkg)
		}
		if err := c.installPackage(ctx, variant, pkg); err != nil {
			return fmt.Errorf("installing %s: %w", pkg, err)
		}
		c.report(fmt.Sprintf("Installed %s.", pkg))
	}

	c.report("Initial system check finished successfully.")
	return c.markDone()
}

func (c *Checker) installPackage(ctx context.Context, variant detector.Variant, pkg string) error {
	argv := installCommand(variant, pkg)
	if argv == nil {
		return fmt.Errorf("installation via %q is not supported", variant)
	}
	argv = c.Exec.Privileged(argv)
	c.report(fmt.Sprintf("Running: %s (you may be prompted for authentication)", strings.Join(argv, " ")))

	// Package manager transactions run well past the query timeout, so
	// stream them under the operation timeout like any other install.
	outcome := c.Exec.Stream(ctx, argv, func(status string, _ int) {
		c.report(status)
	})
	if !outcome.Success {
		return fmt.Errorf("%s", outcome.Message)
	}
	return nil
}

// installCommand builds the per-variant install invocation. The caller
// wraps it with the escalation helper.
func installCommand(variant detector.Variant, pkg string) []string {
	switch variant {
	case detector.VariantApt, detector.VariantYum, detector.VariantDnf:
		return []string{string(variant), "install", "-y", pkg}
	case detector.VariantPacman:
		return []string{string(variant), "-S", "--noconfirm", pkg}
	}
	return nil
}

func (c *Checker) markDone() error {
	if err := c.State.MarkDone(); err != nil {
		return fmt.Errorf("recording bootstrap state: %w", err)
	}
	return nil
}

func (c *Checker) report(message string) {
	if c.Report != nil {
		c.Report(message)
	}
}
