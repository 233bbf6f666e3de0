// Package theme holds the Catppuccin Mocha palette shared by the views.
package theme

import "github.com/charmbracelet/lipgloss"

var (
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	// Good marks a reached goal, Warn a degraded report.
	Good = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Warn = lipgloss.NewStyle().Foreground(Red)
)
