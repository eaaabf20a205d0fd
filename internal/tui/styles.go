package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	wordStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	readingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	matchedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	remainingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Underline(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	frameStyle = lipgloss.NewStyle().
			Padding(1, 2)
)
