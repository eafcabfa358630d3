package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle    = lipgloss.NewStyle().Faint(true)
	activeTabStyle = lipgloss.NewStyle().Underline(true).Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	timeStyle      = lipgloss.NewStyle().Faint(true)
	emptyStyle     = lipgloss.NewStyle().Italic(true).Faint(true)
	helpStyle      = lipgloss.NewStyle().Faint(true)
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	formStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
