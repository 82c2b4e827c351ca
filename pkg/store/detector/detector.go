// Package detector identifies which package-manager binaries are present
// on the host.
package detector

import "os/exec"

// Variant names a system package-manager flavor. The store's backend
// contract targets pacman; the other variants only matter to the
// bootstrap prerequisite check.
type Variant string

const (
	VariantApt     Variant = "apt"
	VariantYum     Variant = "yum"
	VariantDnf     Variant = "dnf"
	VariantPacman  Variant = "pacman"
	VariantUnknown Variant = ""
)

// systemVariants is the probe order for the native package manager.
var systemVariants = []Variant{VariantApt, VariantYum, VariantDnf, VariantPacman}

// lookPath is swappable for tests.
var lookPath = exec.LookPath

// SystemVariant returns the first system package manager found on PATH,
// or VariantUnknown when none of the known ones is present.
func SystemVariant() Variant {
	for _, v := range systemVariants {
		if _, err := lookPath(string(v)); err == nil {
			return v
		}
	}
	return VariantUnknown
}

// HasBinary reports whether the named executable is on PATH.
func HasBinary(name string) bool {
	_, err := lookPath(name)
	return err == nil
}
