package store

import "strings"

// iconMap maps well-known package names to Font Awesome classes the
// front-end understands. Purely a display hint, never authoritative.
var iconMap = map[string]string{
	"vim":         "fas fa-terminal",
	"neovim":      "fas fa-terminal",
	"firefox":     "fas fa-globe",
	"gimp":        "fas fa-paint-brush",
	"vlc":         "fas fa-play-circle",
	"inkscape":    "fas fa-vector-square",
	"thunderbird": "fas fa-envelope",
	"htop":        "fas fa-chart-line",
	"krita":       "fas fa-paint-roller",
	"discord":     "fab fa-discord",
	"spotify":     "fab fa-spotify",
	"libreoffice": "fas fa-file-alt",
}

const defaultIcon = "fas fa-cube"

// IconFor returns a display icon hint for a package name.
func IconFor(name string) string {
	if icon, ok := iconMap[strings.ToLower(name)]; ok {
		return icon
	}
	return defaultIcon
}
