package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderEmptyState creates a centered empty state view with a title, subtitle, and optional help text.
func renderEmptyState(width, height int, title, subtitle string, helpText []string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(2, 4).
		Width(50)

	lines := []string{
		styles.Bold.Render(title),
		"",
	}

	if subtitle != "" {
		lines = append(lines, styles.Muted.Render(subtitle))
	}

	if len(helpText) > 0 {
		lines = append(lines, "")
		for _, help := range helpText {
			lines = append(lines, styles.HelpText.Render(help))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(width, max(0, height-2), lipgloss.Center, lipgloss.Center, box.Render(content))
}

// truncate shortens a string to max length with ellipsis.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
