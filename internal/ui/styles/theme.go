package styles

import (
	"fmt"
	"image/color"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for UI components
type Theme struct {
	Primary color.Color // borders, headers
	Accent  color.Color // selected items
	Success color.Color // accepted hooks
	Error   color.Color // failures, disabled hooks
	Muted   color.Color // secondary text
	Normal  color.Color // standard text
	Warning color.Color // hooks awaiting trust
}

var (
	// DefaultTheme is the 256-color scheme used when nothing is configured.
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),
		Accent:  lipgloss.Color("212"),
		Success: lipgloss.Color("82"),
		Error:   lipgloss.Color("196"),
		Muted:   lipgloss.Color("240"),
		Normal:  lipgloss.Color("252"),
		Warning: lipgloss.Color("214"),
	}

	// NordTheme is based on the Nord color scheme.
	NordTheme = Theme{
		Primary: lipgloss.Color("#88c0d0"), // nord8
		Accent:  lipgloss.Color("#b48ead"), // nord15
		Success: lipgloss.Color("#a3be8c"), // nord14
		Error:   lipgloss.Color("#bf616a"), // nord11
		Muted:   lipgloss.Color("#4c566a"), // nord3
		Normal:  lipgloss.Color("#eceff4"), // nord6
		Warning: lipgloss.Color("#ebcb8b"), // nord13
	}

	// NoneTheme renders without colors. Bold and underline are kept.
	NoneTheme = Theme{
		Primary: lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Normal:  lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
	}
)

var presets = map[string]Theme{
	"default": DefaultTheme,
	"nord":    NordTheme,
	"none":    NoneTheme,
}

var currentTheme = DefaultTheme

// Current returns the active theme.
func Current() Theme {
	return currentTheme
}

// ThemeNames lists the accepted theme names.
func ThemeNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Init activates the named theme. An empty name selects "default".
func Init(name string) error {
	if name == "" {
		name = "default"
	}
	theme, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	currentTheme = theme
	applyTheme(theme)
	return nil
}

// applyTheme updates all global style variables to use the given theme
func applyTheme(t Theme) {
	Primary = t.Primary
	Accent = t.Accent
	Success = t.Success
	Error = t.Error
	Muted = t.Muted
	Normal = t.Normal
	Warning = t.Warning

	PrimaryStyle = lipgloss.NewStyle().Foreground(t.Primary)
	AccentStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	NormalStyle = lipgloss.NewStyle().Foreground(t.Normal)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	HeaderStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)

	RoundedBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1)
}
