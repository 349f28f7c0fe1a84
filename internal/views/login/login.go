// Package login provides the sign-in form shown before the dashboard.
package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/news-agent/tui/internal/client"
	"github.com/news-agent/tui/internal/theme"
)

// SuccessMsg is emitted when a login succeeds. The parent app switches
// to the dashboard and starts the live channel on receipt.
type SuccessMsg struct {
	User client.LoginUser
}

// failedMsg carries a login error back into the form.
type failedMsg struct {
	Err error
}

// KeyMap holds the login-specific key bindings.
type KeyMap struct {
	Next   key.Binding
	Submit key.Binding
}

// DefaultKeyMap returns the default login key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "sign in"),
		),
	}
}

// Model is the login form model.
type Model struct {
	api  *client.Client
	keys KeyMap

	username textinput.Model
	password textinput.Model

	// focusIdx is 0 for the username field, 1 for the password field.
	focusIdx int

	submitting bool
	errMsg     string

	width  int
	height int
}

// New creates a login form model.
func New(api *client.Client) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return Model{
		api:      api,
		keys:     DefaultKeyMap(),
		username: username,
		password: password,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the available rendering area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the login form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case failedMsg:
		m.submitting = false
		m.errMsg = msg.Err.Error()
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Next):
			m.focusIdx = (m.focusIdx + 1) % 2
			if m.focusIdx == 0 {
				m.password.Blur()
				return m, m.username.Focus()
			}
			m.username.Blur()
			return m, m.password.Focus()

		case key.Matches(msg, m.keys.Submit):
			username := strings.TrimSpace(m.username.Value())
			password := m.password.Value()
			if username == "" || password == "" {
				m.errMsg = "Username and password are required"
				return m, nil
			}
			m.submitting = true
			m.errMsg = ""
			return m, doLogin(m.api, username, password)
		}
	}

	var cmd tea.Cmd
	if m.focusIdx == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// View renders the login form centered in the available area.
func (m Model) View() string {
	title := theme.StyleHeader.Render("NEWS AGENT")
	subtitle := theme.StyleDimmed.Render("sign in to continue")

	rows := []string{
		title,
		subtitle,
		"",
		fieldLabel("Username", m.focusIdx == 0) + m.username.View(),
		fieldLabel("Password", m.focusIdx == 1) + m.password.View(),
		"",
	}

	if m.submitting {
		rows = append(rows, theme.StyleDimmed.Render("Signing in..."))
	} else if m.errMsg != "" {
		rows = append(rows, theme.StyleError.Render(m.errMsg))
	} else {
		rows = append(rows, theme.StyleDimmed.Render("tab: switch field  enter: sign in"))
	}

	panel := theme.StyleBorder.Padding(1, 3).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...))

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
	}
	return panel
}

func fieldLabel(label string, focused bool) string {
	style := theme.StyleDimmed
	if focused {
		style = theme.StyleAccent
	}
	return style.Width(10).Render(label)
}

func doLogin(api *client.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		resp, err := api.Login(context.Background(), username, password)
		if err != nil {
			return failedMsg{Err: err}
		}
		return SuccessMsg{User: resp.User}
	}
}
