// Package skills provides the skill management tab: enable/disable
// monitoring skills and delete custom ones.
package skills

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/news-agent/tui/internal/client"
	"github.com/news-agent/tui/internal/theme"
)

// SkillsLoadedMsg is returned after fetching the skill list.
type SkillsLoadedMsg struct {
	Skills []client.Skill
	Err    error
}

// SkillResultMsg is returned after a toggle or delete call.
type SkillResultMsg struct {
	Skill *client.Skill
	Err   error
}

// KeyMap holds the skills-specific key bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Delete key.Binding
}

// DefaultKeyMap returns the default skills key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "prev skill"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next skill"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),
	}
}

// Model holds the skills tab state.
type Model struct {
	api  *client.Client
	keys KeyMap

	skills      []client.Skill
	selectedIdx int

	loading   bool
	errMsg    string
	statusMsg string

	Width int
}

// New creates a skills model. It begins in the loading state.
func New(api *client.Client) Model {
	return Model{
		api:     api,
		keys:    DefaultKeyMap(),
		loading: true,
	}
}

// Init fires the skill list fetch.
func (m Model) Init() tea.Cmd {
	return m.fetch()
}

// Reload re-fetches the skill list.
func (m Model) Reload() tea.Cmd {
	return m.fetch()
}

func (m Model) fetch() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		skills, err := api.ListSkills(context.Background())
		return SkillsLoadedMsg{Skills: skills, Err: err}
	}
}

func doToggle(api *client.Client, id int, enabled bool) tea.Cmd {
	return func() tea.Msg {
		s, err := api.UpdateSkill(context.Background(), id, client.SkillUpdate{IsEnabled: &enabled})
		return SkillResultMsg{Skill: s, Err: err}
	}
}

func doDelete(api *client.Client, id int) tea.Cmd {
	return func() tea.Msg {
		err := api.DeleteSkill(context.Background(), id)
		return SkillResultMsg{Err: err}
	}
}

// Update handles messages for the skills tab.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SkillsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.skills = msg.Skills
		if m.selectedIdx >= len(m.skills) {
			m.selectedIdx = 0
		}
		return m, nil

	case SkillResultMsg:
		if msg.Err != nil {
			m.statusMsg = "Error: " + msg.Err.Error()
			return m, nil
		}
		if msg.Skill != nil {
			// Update in place so the cursor stays put.
			for i := range m.skills {
				if m.skills[i].ID == msg.Skill.ID {
					m.skills[i] = *msg.Skill
				}
			}
			return m, nil
		}
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
		if len(m.skills) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.skills)
		}

	case key.Matches(msg, m.keys.Up):
		if len(m.skills) > 0 {
			m.selectedIdx = (m.selectedIdx - 1 + len(m.skills)) % len(m.skills)
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.selectedIdx < len(m.skills) {
			s := m.skills[m.selectedIdx]
			return m, doToggle(m.api, s.ID, !s.IsEnabled)
		}

	case key.Matches(msg, m.keys.Delete):
		if m.selectedIdx < len(m.skills) {
			s := m.skills[m.selectedIdx]
			if s.IsBuiltin {
				m.statusMsg = "Builtin skills cannot be deleted"
				break
			}
			return m, doDelete(m.api, s.ID)
		}
	}
	return m, nil
}

// View renders the skills tab.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	lines := []string{theme.StyleHeader.Render("  Skills")}

	switch {
	case m.loading:
		lines = append(lines, theme.StyleDimmed.Render("  Loading skills..."))
	case m.errMsg != "":
		lines = append(lines, theme.StyleError.Render("  "+m.errMsg))
	case len(m.skills) == 0:
		lines = append(lines, theme.StyleDimmed.Render("  No skills configured"))
	default:
		for i, s := range m.skills {
			lines = append(lines, m.renderSkill(i, s, width))
		}
	}

	if m.statusMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ColorWarning).Render("  "+m.statusMsg))
	}
	lines = append(lines, theme.StyleDimmed.Render("  j/k:navigate  enter:toggle  x:delete"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderSkill(i int, s client.Skill, width int) string {
	prefix := "  "
	if i == m.selectedIdx {
		prefix = "> "
	}

	box := lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("[ ]")
	if s.IsEnabled {
		box = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("[✓]")
	}

	nameStyle := lipgloss.NewStyle().Foreground(theme.ColorBright)
	if i == m.selectedIdx {
		nameStyle = theme.StyleSelected
	}
	name := nameStyle.Width(28).Render(theme.Truncate(s.Name, 27))

	kind := theme.StyleDimmed.Width(10).Render(client.SkillTypeLabel(s.SkillType))

	origin := ""
	if s.IsBuiltin {
		origin = theme.StyleDimmed.Render("builtin")
	}

	maxDesc := width - 52
	if maxDesc < 10 {
		maxDesc = 10
	}
	desc := theme.Truncate(s.Description, maxDesc)

	return fmt.Sprintf("%s%s %s %s %s  %s",
		prefix, box, name, kind, origin, theme.StyleDimmed.Render(desc))
}
