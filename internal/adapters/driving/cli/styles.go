package cli

import "github.com/charmbracelet/lipgloss"

// Terminal styles shared across commands.
var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// statusBadge renders a colored configured/not-configured marker.
func statusBadge(configured bool) string {
	if configured {
		return successStyle.Render("configured")
	}
	return warnStyle.Render("not configured")
}
