package components

import (
	"fmt"

	"horaboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. dataAge describes how
// old the displayed projection is; cached marks data served from the
// local mirror instead of the backend.
func RenderStatusBar(width int, server, dataAge string, cached bool, errMsg string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [q]uit"
	if server != "" {
		left += "  " + server
	}

	right := ""
	switch {
	case errMsg != "":
		right = lipgloss.NewStyle().Foreground(t.Red).Render(errMsg) + " "
	case cached && dataAge != "":
		right = lipgloss.NewStyle().Foreground(t.Orange).Render(fmt.Sprintf("cached %s ", dataAge))
	case dataAge != "":
		right = fmt.Sprintf("Data: %s ", dataAge)
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
