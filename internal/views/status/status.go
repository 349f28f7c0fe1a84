package status

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/news-agent/tui/internal/theme"
)

// Model holds the status bar state.
type Model struct {
	Connected    bool
	Username     string
	ActiveAlerts int
	LastRefresh  string
	Width        int
}

// New creates a status bar model.
func New() Model {
	return Model{}
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var connStr string
	if m.Connected {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("● live")
	} else {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("○ polling")
	}

	userStr := theme.StyleDimmed.Render("not signed in")
	if m.Username != "" {
		userStr = theme.StyleAccent.Render(m.Username)
	}

	alertStr := theme.StyleDimmed.Render("no active alerts")
	if m.ActiveAlerts > 0 {
		alertStr = lipgloss.NewStyle().Foreground(theme.ColorDanger).
			Render(fmt.Sprintf("▲ %d active alerts", m.ActiveAlerts))
	}

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	content := connStr + sep + userStr + sep + alertStr
	if m.LastRefresh != "" {
		content += sep + theme.StyleDimmed.Render("refreshed "+m.LastRefresh)
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}
