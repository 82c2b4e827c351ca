package cli

import (
	"context"

	"github.com/Pomilon/linux-software-store/internal/ui"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed packages from both backends",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sp := ui.NewSpinner("Querying installed packages...")
		sp.Start()
		records := catalog.Installed(context.Background())
		sp.Stop()

		ui.PrintPackages(records)
		return nil
	},
}

var updatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "Show packages with pending updates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sp := ui.NewSpinner("Checking for updates...")
		sp.Start()
		records := catalog.Updates(context.Background())
		sp.Stop()

		if len(records) == 0 {
			ui.SuccessMsg("Everything is up to date")
			return nil
		}
		ui.PrintPackages(records)
		return nil
	},
}

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Browse the curated application catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.PrintPackages(catalog.Explore())
		return nil
	},
}
