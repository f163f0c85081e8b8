package cli

import "github.com/charmbracelet/lipgloss"

// Style definitions for the fill report and project listing.
var (
	rangeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	dayHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	createdStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	previewedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	skippedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	descriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	summaryStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)

	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
