package cli

import (
	"context"
	"os"

	"github.com/Pomilon/linux-software-store/internal/bootstrap"
	"github.com/Pomilon/linux-software-store/internal/config"
	"github.com/Pomilon/linux-software-store/internal/ui"

	"github.com/spf13/cobra"
)

var setupForce bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Run the one-time prerequisite check",
	Long: `Detect the system package manager and install the tools the store
needs (currently flatpak). The check records completion and is skipped
on subsequent runs unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.EnsureDataDir(); err != nil {
			return err
		}

		state := &bootstrap.FileState{Path: config.BootstrapStatePath()}
		if setupForce {
			if err := os.Remove(state.Path); err != nil && !os.IsNotExist(err) {
				return err
			}
		}

		confirm := func(prompt string) bool {
			if cfg.General.AutoConfirm {
				return true
			}
			ok, err := ui.Confirm(prompt, true)
			return err == nil && ok
		}

		checker := bootstrap.NewChecker(state, exec, func(msg string) {
			ui.InfoMsg("%s", msg)
		}, confirm)

		if err := checker.Run(context.Background()); err != nil {
			return err
		}
		ui.SuccessMsg("Setup complete")
		return nil
	},
}

func init() {
	setupCmd.Flags().BoolVar(&setupForce, "force", false, "re-run even if setup already completed")
}
