package cli

import (
	"github.com/Pomilon/linux-software-store/internal/dispatch"
	"github.com/Pomilon/linux-software-store/internal/tui"

	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and manage packages interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var recorder dispatch.Recorder
		if hist := openHistory(); hist != nil {
			defer hist.Close()
			recorder = hist
		}

		d := dispatch.New(catalog, recorder, 64)
		defer d.Close()

		return tui.Run(catalog, d)
	},
}
