package tui

import "github.com/charmbracelet/lipgloss"

// Color Palette
// This is the single source of truth for all TUI colors.
var (
	salmonPink  = lipgloss.Color("#FFB3BA") // Primary accent, focused borders
	coralPink   = lipgloss.Color("#FFCCCB") // Secondary accent
	mintGreen   = lipgloss.Color("#A8E6CF") // Success states
	mutedGray   = lipgloss.Color("#6B7280") // Secondary text, unfocused borders
	brightWhite = lipgloss.Color("#F9FAFB") // Primary text
)

var (
	// Text Styles
	headerStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(mintGreen).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// Container Styles
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedGray).
			Padding(0, 1)

	focusedPanelStyle = panelStyle.
				BorderForeground(salmonPink)

	listTitleStyle = lipgloss.NewStyle().
			Foreground(coralPink).
			Bold(true)
)

// panelFrame returns the style for a panel given its focus.
func panelFrame(focused bool) lipgloss.Style {
	if focused {
		return focusedPanelStyle
	}
	return panelStyle
}
