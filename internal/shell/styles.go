package shell

import "github.com/charmbracelet/lipgloss"

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	outputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	eventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true)
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A0A0A0")).
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#444444"))
)
