package tui

import "github.com/charmbracelet/lipgloss"

// Styles for the browser
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E8EAED")).
			Background(lipgloss.Color("#4F46E5")).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F6368")).
			Padding(0, 1).
			MarginBottom(1)

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E8EAED"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1).
			MarginRight(1)

	barFillStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6"))
	barEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e5e7eb"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9AA0A6")).
			Padding(0, 1)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6366f1")).
			Bold(true).
			Padding(0, 1)

	// Bar width in cells at 100%
	barWidth = 20
	// Stat label column width
	labelWidth = 16
)
