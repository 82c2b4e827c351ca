package cli

import (
	"github.com/Pomilon/linux-software-store/internal/ui"
	"github.com/Pomilon/linux-software-store/pkg/store/detector"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check backend and helper availability",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.HeaderMsg("Environment")

		variant := detector.SystemVariant()
		if variant == detector.VariantUnknown {
			ui.ErrorMsg("No supported system package manager found (apt, yum, dnf, pacman)")
		} else {
			ui.SuccessMsg("System package manager: %s", variant)
		}

		ui.HeaderMsg("Backends")
		for _, b := range []struct {
			name   string
			binary string
		}{
			{"Pacman (system)", "pacman"},
			{"Flatpak (sandbox)", "flatpak"},
		} {
			if detector.HasBinary(b.binary) {
				ui.SuccessMsg("%s: available", b.name)
			} else {
				ui.WarningMsg("%s: not found, its listings will be empty", b.name)
			}
		}

		ui.HeaderMsg("Privilege escalation")
		helper := cfg.General.EscalationHelper
		if detector.HasBinary(helper) {
			ui.SuccessMsg("%s: available", helper)
		} else {
			ui.ErrorMsg("%s: not found, system installs and removals will fail", helper)
		}

		return nil
	},
}
