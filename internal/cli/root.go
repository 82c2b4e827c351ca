// Package cli implements the command-line interface for the software store.
package cli

import (
	"github.com/Pomilon/linux-software-store/internal/config"
	"github.com/Pomilon/linux-software-store/internal/executor"
	"github.com/Pomilon/linux-software-store/internal/ui"
	"github.com/Pomilon/linux-software-store/pkg/store"
	"github.com/Pomilon/linux-software-store/pkg/store/flatpak"
	"github.com/Pomilon/linux-software-store/pkg/store/pacman"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	yes     bool
	verbose bool
	noColor bool

	// Global state
	cfg     *config.Config
	exec    *executor.Executor
	catalog *store.Catalog
)

// Build metadata - set at build time via ldflags
var (
	Version   = "0.1.0-dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "softstore",
	Short: "Unified software store for pacman and flatpak",
	Long: `Softstore aggregates the system package manager (pacman) and the
sandboxed application distributor (flatpak) behind one catalog with
unified install, uninstall, search and update operations.

Examples:
  softstore list                     # Installed packages from both backends
  softstore updates                  # Pending updates from both backends
  softstore search firefox           # Search the remote catalogs
  softstore install vim              # Install with live progress
  softstore uninstall org.gimp.GIMP  # Remove a flatpak app
  softstore serve                    # JSON event bridge for UI front-ends`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeApp()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "assume yes to all prompts")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(updatesCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initializeApp sets up configuration, the executor and the catalog.
func initializeApp() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	// Apply global flag overrides
	if yes {
		cfg.General.AutoConfirm = true
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if noColor {
		cfg.Output.Color = false
	}

	ui.Init(cfg.ShouldUseColor(), cfg.Output.Unicode)

	exec = executor.New(executor.Options{
		QueryTimeout:     cfg.QueryTimeout(),
		OperationTimeout: cfg.OperationTimeout(),
		EscalationHelper: cfg.General.EscalationHelper,
		Verbose:          cfg.Output.Verbose,
	})

	catalog = store.NewCatalog(
		pacman.New(exec),
		flatpak.New(exec, cfg.Flatpak.DefaultRemote),
	)

	return nil
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print softstore version",
	Run: func(cmd *cobra.Command, args []string) {
		ui.InfoMsg("softstore version %s", Version)
		if Commit != "unknown" {
			ui.MutedMsg("  Commit: %s", Commit)
		}
		if BuildTime != "unknown" {
			ui.MutedMsg("  Built:  %s", BuildTime)
		}
	},
}
