package detector

import (
	"errors"
	"testing"
)

// withBinaries replaces PATH lookups with a fixed set for one test.
func withBinaries(t *testing.T, available ...string) {
	t.Helper()
	prev := lookPath
	lookPath = func(name string) (string, error) {
		for _, b := range available {
			if b == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
	t.Cleanup(func() { lookPath = prev })
}

func TestSystemVariantProbeOrder(t *testing.T) {
	tests := []struct {
		name      string
		available []string
		want      Variant
	}{
		{"pacman only", []string{"pacman"}, VariantPacman},
		{"apt wins over pacman", []string{"pacman", "apt"}, VariantApt},
		{"dnf", []string{"dnf", "flatpak"}, VariantDnf},
		{"none", nil, VariantUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBinaries(t, tt.available...)
			if got := SystemVariant(); got != tt.want {
				t.Errorf("SystemVariant() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasBinary(t *testing.T) {
	withBinaries(t, "flatpak")

	if !HasBinary("flatpak") {
		t.Error("HasBinary(flatpak) = false, want true")
	}
	if HasBinary("pkexec") {
		t.Error("HasBinary(pkexec) = true, want false")
	}
}
