package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/Pomilon/linux-software-store/internal/dispatch"
	"github.com/Pomilon/linux-software-store/internal/history"
	"github.com/Pomilon/linux-software-store/internal/ui"
	"github.com/Pomilon/linux-software-store/pkg/store"

	"github.com/spf13/cobra"
)

var (
	installSource   string
	uninstallSource string
)

var installCmd = &cobra.Command{
	Use:   "install <name>",
	Short: "Install a package with live progress",
	Long: `Install a package. The name is resolved against both backends'
remote catalogs; use --source to restrict resolution to one backend.
System packages go through the privilege escalation helper.

Examples:
  softstore install vim
  softstore install firefox --source flatpak
  softstore install -y htop`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(store.OpInstall, strings.Join(args, " "), installSource)
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <name>",
	Short: "Remove an installed package",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(store.OpUninstall, strings.Join(args, " "), uninstallSource)
	},
}

func init() {
	installCmd.Flags().StringVarP(&installSource, "source", "s", "", "backend to install from (pacman or flatpak)")
	uninstallCmd.Flags().StringVarP(&uninstallSource, "source", "s", "", "backend to uninstall from (pacman or flatpak)")
}

// runOperation resolves the target record, confirms, then drives the
// dispatcher and renders its event stream.
func runOperation(kind store.OperationKind, name, source string) error {
	ctx := context.Background()

	rec, err := resolveRecord(ctx, kind, name, source)
	if err != nil {
		return err
	}

	verb := "Install"
	if kind == store.OpUninstall {
		verb = "Uninstall"
	}
	if !cfg.General.AutoConfirm {
		ok, err := ui.Confirm(fmt.Sprintf("%s %s [%s]?", verb, rec.Name, rec.Source), true)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}

	var recorder dispatch.Recorder
	if hist := openHistory(); hist != nil {
		defer hist.Close()
		recorder = hist
	}

	d := dispatch.New(catalog, recorder, 64)
	switch kind {
	case store.OpInstall:
		d.Install(ctx, *rec)
	case store.OpUninstall:
		d.Uninstall(ctx, *rec)
	}
	go d.Close()

	sp := ui.NewSpinner(fmt.Sprintf("%sing %s...", verb, rec.Name))
	sp.Start()

	outcome := store.Failed("no completion event received")
	for ev := range d.Events() {
		switch ev.Response {
		case dispatch.RespOperationProgress:
			percent := 0
			if ev.Progress != nil {
				percent = *ev.Progress
			}
			sp.Progress(ev.Status, percent)
		case dispatch.RespOperationCompleted:
			success := ev.Success != nil && *ev.Success
			outcome = store.OperationOutcome{Success: success, Message: ev.Message}
		}
	}

	if !outcome.Success {
		sp.Error(fmt.Sprintf("%s of %s failed: %s", verb, rec.Name, outcome.Message))
		return fmt.Errorf("%s failed: %s", kind, outcome.Message)
	}
	sp.Success(fmt.Sprintf("%s of %s finished", verb, rec.Name))
	return nil
}

// resolveRecord finds the package record to operate on: installed
// listings for uninstall, remote catalogs for install.
func resolveRecord(ctx context.Context, kind store.OperationKind, name, source string) (*store.PackageRecord, error) {
	scope := store.ScopeExplore
	if kind == store.OpUninstall {
		scope = store.ScopeInstalled
	}

	sp := ui.NewSpinner(fmt.Sprintf("Resolving %q...", name))
	sp.Start()
	candidates := catalog.Search(ctx, name, scope)
	sp.Stop()

	if source != "" {
		candidates = filterBySource(candidates, store.Source(source))
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, name)
	}

	// An exact name or ID match short-circuits the picker.
	for i := range candidates {
		c := candidates[i]
		if strings.EqualFold(c.Name, name) || (c.RawName != "" && strings.EqualFold(c.RawName, name)) {
			return &c, nil
		}
	}

	if cfg.General.AutoConfirm {
		return &candidates[0], nil
	}
	return ui.SelectPackage(candidates, fmt.Sprintf("Select package to %s", kind))
}

func filterBySource(records []store.PackageRecord, source store.Source) []store.PackageRecord {
	var matched []store.PackageRecord
	for _, rec := range records {
		if rec.Source == source {
			matched = append(matched, rec)
		}
	}
	return matched
}

// openHistory opens the operation log, degrading to no persistence if
// the database is unavailable.
func openHistory() *history.Store {
	hist, err := history.Open()
	if err != nil {
		ui.WarningMsg("History unavailable: %v", err)
		return nil
	}
	return hist
}
