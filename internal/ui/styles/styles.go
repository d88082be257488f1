// Package styles provides shared lipgloss styles for terminal output.
//
// Colors are set once through Init and read by the prompt package and the
// list/trust tables printed by the CLI.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette in use. Overwritten by Init.
var (
	Primary color.Color = lipgloss.Color("62")
	Accent  color.Color = lipgloss.Color("212")
	Success color.Color = lipgloss.Color("82")
	Error   color.Color = lipgloss.Color("196")
	Muted   color.Color = lipgloss.Color("240")
	Normal  color.Color = lipgloss.Color("252")
	Warning color.Color = lipgloss.Color("214")
)

// Common styles
var (
	Bold = lipgloss.NewStyle().Bold(true)

	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)

	// AccentStyle marks the selected item in prompts.
	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	NormalStyle  = lipgloss.NewStyle().Foreground(Normal)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)

	// HeaderStyle renders table headers.
	HeaderStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// RoundedBorder frames the trust prompt.
	RoundedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
)
