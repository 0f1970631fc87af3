package cli

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Inline(true)

	statusStyles = map[string]lipgloss.Style{
		"registered": lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Inline(true),
		"ok":         lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Inline(true),
		"present":    lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Inline(true),

		"skipped": lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Inline(true),
		"warning": lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Inline(true),

		"failed":  lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Inline(true),
		"error":   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Inline(true),
		"missing": lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Inline(true),

		"absent": lipgloss.NewStyle().Faint(true).Inline(true),
	}
)

// statusStyle returns the style for the given status string.
func statusStyle(status string) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return lipgloss.NewStyle().Inline(true)
}
