package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Menu styles.
var (
	MenuTitleStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	MenuIndexStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Align(lipgloss.Right)
	MenuFlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	MenuHintStyle  = lipgloss.NewStyle().Faint(true)
	MenuErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)
