package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#cccccc"))
	focusedLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")).Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))
	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Bold(true)
	dialogStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#f7768e")).
			Padding(1, 2)
)
