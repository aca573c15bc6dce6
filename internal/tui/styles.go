package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorAccent  = lipgloss.Color("#10B981")
	colorMuted   = lipgloss.Color("#6B7280")
	colorBorder  = lipgloss.Color("#374151")
	colorError   = lipgloss.Color("#EF4444")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)

	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorMuted).
			MarginBottom(1)

	activePaneTitleStyle = paneTitleStyle.Foreground(colorPrimary)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	selectedCardStyle = cardStyle.BorderForeground(colorPrimary)

	headingStyle = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorMuted)
	buttonStyle  = lipgloss.NewStyle().Foreground(colorAccent)
	verbStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	commentStyle = lipgloss.NewStyle().Italic(true).Foreground(colorMuted)
	photoStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	helpStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
)
