package ui

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	colorTaskBG   = lipgloss.Color("#e8f0fe")
	colorTaskFG   = lipgloss.Color("#1967d2")
	colorAccent   = lipgloss.Color("#1a73e8")
	colorAI       = lipgloss.Color("#9334e6")
	colorAILight  = lipgloss.Color("#f3e8fd")
	colorDelete   = lipgloss.Color("#5f6368")
	colorMuted    = lipgloss.Color("#80868b")
	colorChipText = lipgloss.Color("#ffffff")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	subtitleStyle = lipgloss.NewStyle().Italic(true).Foreground(colorMuted)

	addButtonStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	aiButtonStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAI)

	panelHeaderStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorAI)
	suggestionStyle       = lipgloss.NewStyle().Foreground(colorAI)
	suggestionActiveStyle = lipgloss.NewStyle().Foreground(colorAI).Background(colorAILight).Bold(true)
	hintStyle             = lipgloss.NewStyle().Foreground(colorMuted)
	emptyListStyle        = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	cardTextStyle           = lipgloss.NewStyle().Bold(true).Foreground(colorTaskFG)
	cardDeleteStyle         = lipgloss.NewStyle().Foreground(colorDelete)
	cardBorderStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorTaskBG)
	cardSelectedBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent)
)

// chipStyle returns the pill style for a category color.
func chipStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(colorChipText).
		Background(lipgloss.Color(color))
}
