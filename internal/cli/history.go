package cli

import (
	"github.com/Pomilon/linux-software-store/internal/history"
	"github.com/Pomilon/linux-software-store/internal/ui"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent install and uninstall operations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		hist, err := history.Open()
		if err != nil {
			return err
		}
		defer hist.Close()

		entries, err := hist.List(historyLimit)
		if err != nil {
			return err
		}
		ui.PrintHistory(entries)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum entries to show (0 for all)")
}
