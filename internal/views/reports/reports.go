// Package reports provides the daily report tab: a report list beside a
// rendered markdown pane.
package reports

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/news-agent/tui/internal/client"
	"github.com/news-agent/tui/internal/theme"
)

const listWidth = 30

// typeCycle is the report type filter order. Empty means all types.
var typeCycle = []string{"", "morning", "evening"}

// ListLoadedMsg is returned after fetching the report list.
type ListLoadedMsg struct {
	Reports []client.Report
	Err     error
}

// ReportLoadedMsg is returned after fetching one report's full content.
type ReportLoadedMsg struct {
	Report *client.Report
	Err    error
}

// KeyMap holds the reports-specific key bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Type     key.Binding
	ScrollUp key.Binding
	ScrollDn key.Binding
}

// DefaultKeyMap returns the default reports key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "prev report"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next report"),
		),
		Type: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle type"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("u", "pgup"),
			key.WithHelp("u", "scroll up"),
		),
		ScrollDn: key.NewBinding(
			key.WithKeys("d", "pgdown"),
			key.WithHelp("d", "scroll down"),
		),
	}
}

// Model holds the reports tab state.
type Model struct {
	api  *client.Client
	keys KeyMap

	reports     []client.Report
	selectedIdx int
	typeIdx     int

	// rendered is the glamour output for the selected report, split into
	// lines for scrolling.
	rendered []string
	scroll   int

	loading bool
	errMsg  string

	Width  int
	Height int
}

// New creates a reports model. It begins in the loading state.
func New(api *client.Client) Model {
	return Model{
		api:     api,
		keys:    DefaultKeyMap(),
		loading: true,
	}
}

// Init fires the report list fetch.
func (m Model) Init() tea.Cmd {
	return m.fetchList()
}

// Reload re-fetches the report list with the current filter.
func (m Model) Reload() tea.Cmd {
	return m.fetchList()
}

func (m Model) fetchList() tea.Cmd {
	reportType := typeCycle[m.typeIdx]
	api := m.api
	return func() tea.Msg {
		reports, err := api.ListReports(context.Background(), reportType)
		return ListLoadedMsg{Reports: reports, Err: err}
	}
}

func (m Model) fetchReport(id int) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		r, err := api.GetReport(context.Background(), id)
		return ReportLoadedMsg{Report: r, Err: err}
	}
}

// Update handles messages for the reports tab.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ListLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.reports = msg.Reports
		if m.selectedIdx >= len(m.reports) {
			m.selectedIdx = 0
		}
		if len(m.reports) > 0 {
			return m, m.fetchReport(m.reports[m.selectedIdx].ID)
		}
		m.rendered = nil
		return m, nil

	case ReportLoadedMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.scroll = 0
		m.rendered = renderMarkdown(msg.Report.Content, m.contentWidth())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if len(m.reports) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.reports)
			return m, m.fetchReport(m.reports[m.selectedIdx].ID)
		}

	case key.Matches(msg, m.keys.Up):
		if len(m.reports) > 0 {
			m.selectedIdx = (m.selectedIdx - 1 + len(m.reports)) % len(m.reports)
			return m, m.fetchReport(m.reports[m.selectedIdx].ID)
		}

	case key.Matches(msg, m.keys.Type):
		m.typeIdx = (m.typeIdx + 1) % len(typeCycle)
		m.selectedIdx = 0
		m.loading = true
		return m, m.fetchList()

	case key.Matches(msg, m.keys.ScrollDn):
		if m.scroll < len(m.rendered)-1 {
			m.scroll += 5
			if m.scroll > len(m.rendered)-1 {
				m.scroll = len(m.rendered) - 1
			}
		}

	case key.Matches(msg, m.keys.ScrollUp):
		m.scroll -= 5
		if m.scroll < 0 {
			m.scroll = 0
		}
	}
	return m, nil
}

func (m Model) contentWidth() int {
	w := m.Width - listWidth - 6
	if w < 30 {
		w = 30
	}
	return w
}

// View renders the reports tab.
func (m Model) View() string {
	if m.loading {
		return theme.StyleDimmed.Render("  Loading reports...")
	}
	if m.errMsg != "" && len(m.reports) == 0 {
		return theme.StyleError.Render("  " + m.errMsg)
	}
	if len(m.reports) == 0 {
		return theme.StyleDimmed.Render("  No reports generated yet")
	}

	list := m.renderList()
	content := m.renderContent()

	body := lipgloss.JoinHorizontal(lipgloss.Top, list, content)
	footer := theme.StyleDimmed.Render("  j/k:report  t:type  u/d:scroll")
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (m Model) renderList() string {
	header := theme.StyleHeader.Render(" Reports")
	if t := typeCycle[m.typeIdx]; t != "" {
		header += theme.StyleDimmed.Render(" · " + client.ReportTypeLabel(t))
	}

	lines := []string{header, ""}
	for i, r := range m.reports {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.ColorDimmed)
		if i == m.selectedIdx {
			prefix = "> "
			style = theme.StyleSelected
		}
		label := fmt.Sprintf("%s %s", r.ReportDate, client.ReportTypeLabel(r.ReportType))
		lines = append(lines, style.Render(prefix+theme.Truncate(label, listWidth-4)))
	}

	return lipgloss.NewStyle().
		Width(listWidth).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderContent() string {
	visible := m.Height - 8
	if visible < 5 {
		visible = 5
	}

	var body string
	switch {
	case m.rendered == nil:
		body = theme.StyleDimmed.Render("Loading report...")
	default:
		end := m.scroll + visible
		if end > len(m.rendered) {
			end = len(m.rendered)
		}
		body = strings.Join(m.rendered[m.scroll:end], "\n")
	}

	return lipgloss.NewStyle().
		Width(m.contentWidth() + 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Padding(0, 1).
		Render(body)
}

// renderMarkdown renders report markdown for the terminal. On render
// failure the raw markdown is shown instead.
func renderMarkdown(content string, width int) []string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return strings.Split(content, "\n")
	}
	out, err := r.Render(content)
	if err != nil {
		return strings.Split(content, "\n")
	}
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}
