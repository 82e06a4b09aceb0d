package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	enabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	favoriteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3b82f6"))
)

// Enabled renders text in the enabled-mod color.
func Enabled(text string) string {
	return enabledStyle.Render(text)
}

// Disabled renders text in the disabled-mod color.
func Disabled(text string) string {
	return disabledStyle.Render(text)
}

// Favorite renders text in the favorite color.
func Favorite(text string) string {
	return favoriteStyle.Render(text)
}

// Error renders text in the error color.
func Error(text string) string {
	return errorStyle.Render(text)
}

// Header renders a bold section header.
func Header(text string) string {
	return headerStyle.Render(text)
}
