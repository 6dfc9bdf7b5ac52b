package ui

import "github.com/charmbracelet/lipgloss"

// The status palette is taken from Vitesse Dark Soft:
// https://github.com/antfu/vscode-theme-vitesse/blob/main/themes/vitesse-dark-soft.json
type designTheme struct {
	Primary lipgloss.Color // #4d9375
	Yellow  lipgloss.Color // #e6cc77
	Red     lipgloss.Color // #cb7676

	Muted lipgloss.AdaptiveColor

	OnAccent lipgloss.Color // #222
}

// Vitesse is the global theme for human output.
var Vitesse = designTheme{
	Primary: lipgloss.Color("#4d9375"),
	Yellow:  lipgloss.Color("#e6cc77"),
	Red:     lipgloss.Color("#cb7676"),

	Muted: lipgloss.AdaptiveColor{Light: "#8a8a8a", Dark: "#6b6b6b"},

	OnAccent: lipgloss.Color("#222"),
}

// AccentBold returns a bold style using the primary accent color.
func AccentBold() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Primary)
}

// MutedStyle is used for durations, commands and output excerpts.
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.Muted)
}

// ChipStyle returns a style for colored status chips.
func ChipStyle(bg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.OnAccent).Background(bg).Padding(0, 1)
}
