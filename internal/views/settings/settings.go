// Package settings provides the system settings tab: category tabs,
// inline value editing and batched saves.
package settings

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/news-agent/tui/internal/client"
	"github.com/news-agent/tui/internal/theme"
)

// LoadedMsg is returned after fetching settings and their categories.
type LoadedMsg struct {
	Categories []client.SettingCategory
	Settings   map[string][]client.Setting
	Err        error
}

// SaveResultMsg is returned after a batch save.
type SaveResultMsg struct {
	Updated []string
	Err     error
}

// PasswordResultMsg is returned after a change-password call.
type PasswordResultMsg struct {
	Err error
}

// KeyMap holds the settings-specific key bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevTab  key.Binding
	NextTab  key.Binding
	Edit     key.Binding
	Save     key.Binding
	Password key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
}

// DefaultKeyMap returns the default settings key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "prev setting"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next setting"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev category"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next category"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save changes"),
		),
		Password: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "change password"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Model holds the settings tab state.
type Model struct {
	api  *client.Client
	keys KeyMap

	categories []client.SettingCategory
	settings   map[string][]client.Setting

	tabIdx      int
	selectedIdx int

	// dirty holds edited values, keyed by setting key, until saved.
	dirty map[string]string

	editing bool
	input   textinput.Model

	// pwStage is 0 when idle, 1 while typing the current password and
	// 2 while typing the new one.
	pwStage int
	pwOld   string

	loading   bool
	errMsg    string
	statusMsg string

	Width int
}

// New creates a settings model. It begins in the loading state.
func New(api *client.Client) Model {
	input := textinput.New()
	input.CharLimit = 512

	return Model{
		api:     api,
		keys:    DefaultKeyMap(),
		dirty:   make(map[string]string),
		input:   input,
		loading: true,
	}
}

// Init fires the settings fetch.
func (m Model) Init() tea.Cmd {
	return load(m.api)
}

// Reload re-fetches settings, dropping unsaved edits.
func (m Model) Reload() tea.Cmd {
	return load(m.api)
}

// load fetches the categories and all settings together.
func load(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		var msg LoadedMsg
		msg.Categories, msg.Err = api.SettingCategories(context.Background())
		if msg.Err != nil {
			return msg
		}
		msg.Settings, msg.Err = api.ListSettings(context.Background(), "")
		return msg
	}
}

func doSave(api *client.Client, changes map[string]string) tea.Cmd {
	return func() tea.Msg {
		updated, err := api.BatchUpdateSettings(context.Background(), changes)
		return SaveResultMsg{Updated: updated, Err: err}
	}
}

func doChangePassword(api *client.Client, oldPassword, newPassword string) tea.Cmd {
	return func() tea.Msg {
		err := api.ChangePassword(context.Background(), oldPassword, newPassword)
		return PasswordResultMsg{Err: err}
	}
}

// Editing reports whether the value input is capturing keystrokes.
func (m Model) Editing() bool {
	return m.editing || m.pwStage > 0
}

// current returns the settings of the active category tab.
func (m Model) current() []client.Setting {
	if m.tabIdx >= len(m.categories) {
		return nil
	}
	items := m.settings[m.categories[m.tabIdx].Key]
	sorted := make([]client.Setting, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	return sorted
}

// Update handles messages for the settings tab.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.categories = msg.Categories
		m.settings = msg.Settings
		m.dirty = make(map[string]string)
		if m.tabIdx >= len(m.categories) {
			m.tabIdx = 0
		}
		m.selectedIdx = 0
		return m, nil

	case SaveResultMsg:
		if msg.Err != nil {
			m.statusMsg = "Error: " + msg.Err.Error()
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Saved %d settings", len(msg.Updated))
		m.dirty = make(map[string]string)
		return m, load(m.api)

	case PasswordResultMsg:
		if msg.Err != nil {
			m.statusMsg = "Error: " + msg.Err.Error()
		} else {
			m.statusMsg = "Password changed"
		}
		return m, nil

	case tea.KeyMsg:
		if m.pwStage > 0 {
			return m.handlePasswordKey(msg)
		}
		if m.editing {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handlePasswordKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		value := m.input.Value()
		if value == "" {
			return m, nil
		}
		if m.pwStage == 1 {
			m.pwOld = value
			m.pwStage = 2
			m.input.SetValue("")
			return m, nil
		}
		old := m.pwOld
		m.pwStage = 0
		m.pwOld = ""
		m.input.Blur()
		return m, doChangePassword(m.api, old, value)

	case key.Matches(msg, m.keys.Cancel):
		m.pwStage = 0
		m.pwOld = ""
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		items := m.current()
		if m.selectedIdx < len(items) {
			s := items[m.selectedIdx]
			value := m.input.Value()
			// Never write the mask back over a stored secret.
			if value == client.MaskedValue {
				m.statusMsg = "Value unchanged"
			} else {
				m.dirty[s.Key] = value
			}
		}
		m.editing = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.statusMsg = ""
	items := m.current()

	switch {
	case key.Matches(msg, m.keys.Down):
		if len(items) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(items)
		}

	case key.Matches(msg, m.keys.Up):
		if len(items) > 0 {
			m.selectedIdx = (m.selectedIdx - 1 + len(items)) % len(items)
		}

	case key.Matches(msg, m.keys.NextTab):
		if len(m.categories) > 0 {
			m.tabIdx = (m.tabIdx + 1) % len(m.categories)
			m.selectedIdx = 0
		}

	case key.Matches(msg, m.keys.PrevTab):
		if len(m.categories) > 0 {
			m.tabIdx = (m.tabIdx - 1 + len(m.categories)) % len(m.categories)
			m.selectedIdx = 0
		}

	case key.Matches(msg, m.keys.Edit):
		if m.selectedIdx < len(items) {
			s := items[m.selectedIdx]
			m.editing = true
			if v, ok := m.dirty[s.Key]; ok {
				m.input.SetValue(v)
			} else if s.Value == client.MaskedValue {
				// Start secrets from scratch rather than editing the mask.
				m.input.SetValue("")
			} else {
				m.input.SetValue(s.Value)
			}
			if s.FieldType == "password" {
				m.input.EchoMode = textinput.EchoPassword
				m.input.EchoCharacter = '•'
			} else {
				m.input.EchoMode = textinput.EchoNormal
			}
			return m, m.input.Focus()
		}

	case key.Matches(msg, m.keys.Password):
		m.pwStage = 1
		m.pwOld = ""
		m.input.SetValue("")
		m.input.EchoMode = textinput.EchoPassword
		m.input.EchoCharacter = '•'
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Save):
		if len(m.dirty) == 0 {
			m.statusMsg = "No unsaved changes"
			break
		}
		changes := make(map[string]string, len(m.dirty))
		for k, v := range m.dirty {
			changes[k] = v
		}
		return m, doSave(m.api, changes)
	}
	return m, nil
}

// View renders the settings tab.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	if m.loading {
		return theme.StyleDimmed.Render("  Loading settings...")
	}
	if m.errMsg != "" {
		return theme.StyleError.Render("  " + m.errMsg)
	}

	lines := []string{m.renderTabs(), ""}
	items := m.current()
	if len(items) == 0 {
		lines = append(lines, theme.StyleDimmed.Render("  No settings in this category"))
	}
	for i, s := range items {
		lines = append(lines, m.renderSetting(i, s, width))
	}

	if m.pwStage > 0 {
		prompt := "Current password: "
		if m.pwStage == 2 {
			prompt = "New password: "
		}
		lines = append(lines, "", "  "+theme.StyleAccent.Render(prompt)+m.input.View())
	}

	if m.statusMsg != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.ColorWarning).Render("  "+m.statusMsg))
	}

	help := "  h/l:category  j/k:navigate  enter:edit  s:save  p:password"
	if n := len(m.dirty); n > 0 {
		help += fmt.Sprintf("  (%d unsaved)", n)
	}
	lines = append(lines, "", theme.StyleDimmed.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderTabs() string {
	var tabs []string
	for i, c := range m.categories {
		style := theme.StyleDimmed
		if i == m.tabIdx {
			style = theme.StyleSelected
		}
		tabs = append(tabs, style.Padding(0, 1).Render(c.Label))
	}
	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render("│")
	return "  " + strings.Join(tabs, sep)
}

func (m Model) renderSetting(i int, s client.Setting, width int) string {
	prefix := "  "
	if i == m.selectedIdx {
		prefix = "> "
	}

	label := s.Label
	if label == "" {
		label = s.Key
	}
	labelStyle := theme.StyleDimmed
	if i == m.selectedIdx {
		labelStyle = theme.StyleSelected
	}
	labelStr := labelStyle.Width(28).Render(theme.Truncate(label, 27))

	if m.editing && i == m.selectedIdx {
		return prefix + labelStr + " " + m.input.View()
	}

	value := s.Value
	if v, ok := m.dirty[s.Key]; ok {
		if s.FieldType == "password" {
			value = client.MaskedValue
		} else {
			value = v
		}
	}
	maxValue := width - 36
	if maxValue < 10 {
		maxValue = 10
	}
	valueStr := lipgloss.NewStyle().Foreground(theme.ColorBright).Render(theme.Truncate(value, maxValue))

	dirtyMark := ""
	if _, ok := m.dirty[s.Key]; ok {
		dirtyMark = lipgloss.NewStyle().Foreground(theme.ColorWarning).Render(" *")
	}

	return prefix + labelStr + " " + valueStr + dirtyMark
}
