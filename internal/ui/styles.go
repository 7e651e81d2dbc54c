package ui

import "github.com/charmbracelet/lipgloss"

// Lipgloss styles shared across screens.
var (
	// Header style - bright cyan background, bold black text
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("51")).
			Bold(true).
			Padding(0, 1)

	// Section title style - bold bright cyan
	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true).
			MarginTop(1)

	// Label style - dim cyan
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45"))

	// Value style - bright white
	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true)

	// Dim style - for units and secondary info
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	// Container style - rounded border with dim gray
	containerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(1, 2)

	// Card style for survey list entries
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("45")).
			Padding(0, 1).
			MarginBottom(1)

	selectedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("51")).
				Bold(true)

	// Option chip styles for the survey-taking screen
	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	selectedOptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("45")).
				Bold(true)

	// Footer style - bright keys on dim background
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			MarginTop(1)

	footerKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	// Sparkline container
	sparklineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51"))
)

// statusColor maps a survey status to a badge color.
func statusColor(status string) lipgloss.Color {
	switch status {
	case "COMPLETED":
		return lipgloss.Color("46")
	case "IN_PROGRESS":
		return lipgloss.Color("45")
	case "NOT_STARTED":
		return lipgloss.Color("214")
	default:
		return lipgloss.Color("245")
	}
}

// statusBadge renders a colored status badge.
func statusBadge(status string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(statusColor(status)).
		Padding(0, 1).
		Render(status)
}

// footer renders "[key] action" hints.
func footer(hints ...[2]string) string {
	out := ""
	for i, h := range hints {
		if i > 0 {
			out += footerStyle.Render("  ")
		}
		out += footerKeyStyle.Render("["+h[0]+"]") + footerStyle.Render(" "+h[1])
	}
	return out
}
