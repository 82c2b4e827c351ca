// Package tui provides an interactive terminal front-end for the store.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette - matches the CLI colors
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Yellow
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorText    = lipgloss.Color("#F3F4F6") // Light gray
)

// SourceColors distinguishes the two backends in listings.
var SourceColors = map[string]lipgloss.Color{
	"pacman":  lipgloss.Color("#1793D1"), // Arch blue
	"flatpak": lipgloss.Color("#4A90D9"), // Flatpak blue
}

// Styles contains the lipgloss styles used in the TUI.
type Styles struct {
	Header    lipgloss.Style
	Footer    lipgloss.Style
	StatusBar lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	Title       lipgloss.Style
	Description lipgloss.Style

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style

	PackageVersion lipgloss.Style
	PackageSource  lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() *Styles {
	s := &Styles{}

	s.Header = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	s.Footer = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)

	s.StatusBar = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)

	s.TabActive = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Underline(true).
		Padding(0, 2)

	s.TabInactive = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 2)

	s.Title = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true)

	s.Description = lipgloss.NewStyle().
		Foreground(ColorMuted)

	s.ListItem = lipgloss.NewStyle().
		Padding(0, 2)

	s.ListItemSelected = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 2)

	s.PackageVersion = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	s.PackageSource = lipgloss.NewStyle().
		Foreground(ColorMuted)

	s.Success = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	s.Warning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	s.Error = lipgloss.NewStyle().Foreground(ColorError).Bold(true)

	s.HelpKey = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	s.HelpDesc = lipgloss.NewStyle().Foreground(ColorMuted)

	return s
}

// SourceStyle returns a style for a backend tag.
func (s *Styles) SourceStyle(source string) lipgloss.Style {
	if c, ok := SourceColors[source]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return s.PackageSource
}
