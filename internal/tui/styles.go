package tui

import "github.com/charmbracelet/lipgloss"

// Color palette for consistent styling
var (
	ColorPrimary = lipgloss.Color("#7D56F4")

	// Status colors
	ColorSuccess = lipgloss.Color("#50FA7B")
	ColorError   = lipgloss.Color("#FF5F87")
	ColorWarning = lipgloss.Color("#FFB86C")

	// Neutral colors
	ColorMuted = lipgloss.Color("#A0A0A0")
	ColorTitle = lipgloss.Color("#FAFAFA")
)

// Reusable styles
var (
	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorTitle).
			Background(ColorPrimary).
			Padding(0, 1)

	StyleStep = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Section headers in build output
	StyleSection = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)
)

// Icons for different states
const (
	IconStep    = "●"
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
	IconArrow   = "→"
	IconBullet  = "•"
)
