package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the terminal styles.
type Theme struct {
	Base    lipgloss.Style
	Header  lipgloss.Style
	Display lipgloss.Style
	Active  lipgloss.Style
	Paused  lipgloss.Style
	Stopped lipgloss.Style
	Done    lipgloss.Style
	Dim     lipgloss.Style
}

// DefaultTheme is the built-in palette.
var DefaultTheme = Theme{
	Base:    lipgloss.NewStyle().Margin(1, 2),
	Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
	Display: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true).Padding(1, 0),
	Active:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
	Paused:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	Stopped: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Done:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1).Bold(true),
	Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}
