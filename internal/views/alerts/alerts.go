// Package alerts provides the alert list tab with resolve support.
package alerts

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/news-agent/tui/internal/client"
	"github.com/news-agent/tui/internal/theme"
)

// AlertsLoadedMsg is returned after fetching the alert list.
type AlertsLoadedMsg struct {
	Alerts []client.Alert
	Err    error
}

// ResolveResultMsg is returned after a resolve call.
type ResolveResultMsg struct {
	Alert *client.Alert
	Err   error
}

// KeyMap holds the alerts-specific key bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Resolve  key.Binding
	Resolved key.Binding
}

// DefaultKeyMap returns the default alerts key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "prev alert"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next alert"),
		),
		Resolve: key.NewBinding(
			key.WithKeys("enter", "x"),
			key.WithHelp("enter", "resolve"),
		),
		Resolved: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "show all"),
		),
	}
}

// Model holds the alerts tab state.
type Model struct {
	api  *client.Client
	keys KeyMap

	alerts      []client.Alert
	selectedIdx int

	// showResolved includes resolved alerts in the listing.
	showResolved bool

	loading   bool
	errMsg    string
	statusMsg string

	Width int
}

// New creates an alerts model. It begins in the loading state.
func New(api *client.Client) Model {
	return Model{
		api:     api,
		keys:    DefaultKeyMap(),
		loading: true,
	}
}

// Init fires the alert list fetch.
func (m Model) Init() tea.Cmd {
	return m.fetch()
}

// Reload re-fetches the alert list.
func (m Model) Reload() tea.Cmd {
	return m.fetch()
}

// ActiveCount returns the number of active alerts in the current listing.
func (m Model) ActiveCount() int {
	n := 0
	for _, a := range m.alerts {
		if a.IsActive {
			n++
		}
	}
	return n
}

func (m Model) fetch() tea.Cmd {
	q := client.AlertQuery{ActiveOnly: !m.showResolved}
	api := m.api
	return func() tea.Msg {
		alerts, err := api.ListAlerts(context.Background(), q)
		return AlertsLoadedMsg{Alerts: alerts, Err: err}
	}
}

func doResolve(api *client.Client, id int) tea.Cmd {
	return func() tea.Msg {
		a, err := api.ResolveAlert(context.Background(), id)
		return ResolveResultMsg{Alert: a, Err: err}
	}
}

// Update handles messages for the alerts tab.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AlertsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.alerts = msg.Alerts
		if m.selectedIdx >= len(m.alerts) {
			m.selectedIdx = 0
		}
		return m, nil

	case ResolveResultMsg:
		if msg.Err != nil {
			m.statusMsg = "Error: " + msg.Err.Error()
			return m, nil
		}
		m.statusMsg = "Alert resolved"
		return m, m.fetch()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.statusMsg = ""

	switch {
	case key.Matches(msg, m.keys.Down):
		if len(m.alerts) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.alerts)
		}

	case key.Matches(msg, m.keys.Up):
		if len(m.alerts) > 0 {
			m.selectedIdx = (m.selectedIdx - 1 + len(m.alerts)) % len(m.alerts)
		}

	case key.Matches(msg, m.keys.Resolve):
		if m.selectedIdx < len(m.alerts) {
			a := m.alerts[m.selectedIdx]
			if !a.IsActive {
				m.statusMsg = "Alert is already resolved"
				break
			}
			return m, doResolve(m.api, a.ID)
		}

	case key.Matches(msg, m.keys.Resolved):
		m.showResolved = !m.showResolved
		m.selectedIdx = 0
		m.loading = true
		return m, m.fetch()
	}
	return m, nil
}

// View renders the alerts tab.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	header := theme.StyleHeader.Render("  Alerts")
	if m.showResolved {
		header += theme.StyleDimmed.Render(" · including resolved")
	}
	lines := []string{header}

	switch {
	case m.loading:
		lines = append(lines, theme.StyleDimmed.Render("  Loading alerts..."))
	case m.errMsg != "":
		lines = append(lines, theme.StyleError.Render("  "+m.errMsg))
	case len(m.alerts) == 0:
		lines = append(lines, theme.StyleDimmed.Render("  No alerts"))
	default:
		for i, a := range m.alerts {
			lines = append(lines, m.renderAlert(i, a, width))
		}
	}

	if m.statusMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorWarning).Render("  "+m.statusMsg))
	}
	lines = append(lines, theme.StyleDimmed.Render("  j/k:navigate  enter:resolve  a:show all"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderAlert(i int, a client.Alert, width int) string {
	prefix := "  "
	if i == m.selectedIdx {
		prefix = "> "
	}

	level := lipgloss.NewStyle().Foreground(theme.AlertColor(a.Level)).Bold(true).
		Width(9).Render(client.AlertLevelLabel(a.Level))

	maxTitle := width - 40
	if maxTitle < 20 {
		maxTitle = 20
	}
	title := theme.Truncate(a.Title, maxTitle)
	titleStyle := lipgloss.NewStyle().Foreground(theme.ColorBright)
	if !a.IsActive {
		titleStyle = theme.StyleDimmed
	}

	state := ""
	if !a.IsActive {
		state = theme.StyleDimmed.Render("  resolved")
	}

	skill := ""
	if a.SkillName != "" {
		skill = theme.StyleDimmed.Render("  [" + a.SkillName + "]")
	}

	return fmt.Sprintf("%s%s %s%s%s", prefix, level, titleStyle.Render(title), skill, state)
}
