// Package app holds the root Bubble Tea model: the login gate, tab
// navigation, periodic refresh and live update routing.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/news-agent/tui/internal/client"
	"github.com/news-agent/tui/internal/session"
	"github.com/news-agent/tui/internal/theme"
	"github.com/news-agent/tui/internal/views/alerts"
	"github.com/news-agent/tui/internal/views/dashboard"
	"github.com/news-agent/tui/internal/views/detail"
	"github.com/news-agent/tui/internal/views/eventlog"
	"github.com/news-agent/tui/internal/views/feed"
	"github.com/news-agent/tui/internal/views/login"
	"github.com/news-agent/tui/internal/views/reports"
	"github.com/news-agent/tui/internal/views/settings"
	"github.com/news-agent/tui/internal/views/skills"
	"github.com/news-agent/tui/internal/views/status"
)

// Tab identifies the active main view.
type Tab int

// Main tabs, in display order.
const (
	TabDashboard Tab = iota
	TabFeed
	TabReports
	TabAlerts
	TabSkills
	TabSettings
	tabCount
)

var tabNames = [tabCount]string{"Dashboard", "Feed", "Reports", "Alerts", "Skills", "Settings"}

// Overlay identifies which modal is active.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayDetail
	OverlayEventLog
)

// LiveEventMsg is delivered when the live channel receives an event.
type LiveEventMsg struct {
	Type    string
	Summary string
}

// LiveStateMsg is delivered when the live channel connects or drops.
type LiveStateMsg struct {
	Connected bool
}

// UnauthorizedMsg is delivered after the backend rejects the stored
// token. The session has already been cleared when it arrives.
type UnauthorizedMsg struct{}

// refreshTickMsg drives the periodic full re-fetch.
type refreshTickMsg time.Time

// Model is the root Bubble Tea model.
type Model struct {
	api   *client.Client
	live  *client.Channel
	store *session.Store

	keys   KeyMap
	width  int
	height int

	authenticated bool
	tab           Tab
	overlay       Overlay

	// Sub-views.
	login     login.Model
	dashboard dashboard.Model
	feed      feed.Model
	reports   reports.Model
	alerts    alerts.Model
	skills    skills.Model
	settings  settings.Model
	statusBar status.Model
	eventLog  eventlog.Model
	detail    detail.Model

	refreshEvery time.Duration
}

// New creates the root model.
func New(api *client.Client, live *client.Channel, store *session.Store, refreshEvery time.Duration) Model {
	m := Model{
		api:          api,
		live:         live,
		store:        store,
		keys:         DefaultKeyMap(),
		login:        login.New(api),
		dashboard:    dashboard.New(api),
		feed:         feed.New(api),
		reports:      reports.New(api),
		alerts:       alerts.New(api),
		skills:       skills.New(api),
		settings:     settings.New(api),
		statusBar:    status.New(),
		eventLog:     eventlog.New(),
		refreshEvery: refreshEvery,
	}
	if store != nil && store.IsAuthenticated() {
		m.authenticated = true
		if u := store.User(); u != nil {
			m.statusBar.Username = u.Username
		}
	}
	return m
}

// Init starts the live channel and the first fetch.
func (m Model) Init() tea.Cmd {
	if !m.authenticated {
		return m.login.Init()
	}
	return tea.Batch(m.startLive(), m.dashboard.Init(), m.refreshTick())
}

func (m Model) startLive() tea.Cmd {
	live := m.live
	return func() tea.Msg {
		if live != nil {
			live.Start()
		}
		return nil
	}
}

func (m Model) refreshTick() tea.Cmd {
	every := m.refreshEvery
	if every <= 0 {
		every = 60 * time.Second
	}
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case login.SuccessMsg:
		m.authenticated = true
		m.statusBar.Username = msg.User.Username
		m.tab = TabDashboard
		m.eventLog.Add("nav", "signed in as "+msg.User.Username)
		return m, tea.Batch(m.startLive(), m.dashboard.Init(), m.refreshTick())

	case UnauthorizedMsg:
		m.authenticated = false
		m.overlay = OverlayNone
		m.statusBar.Username = ""
		m.login = login.New(m.api)
		m.login.SetSize(m.width, m.height)
		m.eventLog.Add("nav", "session expired, signed out")
		return m, m.login.Init()

	case LiveStateMsg:
		m.statusBar.Connected = msg.Connected
		if msg.Connected {
			m.eventLog.Add("live", "channel connected")
		} else {
			m.eventLog.Add("live", "channel dropped, retrying")
		}
		return m, nil

	case LiveEventMsg:
		return m.handleLiveEvent(msg)

	case refreshTickMsg:
		if !m.authenticated {
			return m, m.refreshTick()
		}
		m.statusBar.LastRefresh = time.Time(msg).Format("15:04:05")
		return m, tea.Batch(m.reloadActive(), m.refreshTick())

	// Fetch results are routed to their owning view even when another
	// tab is active, so stale tabs catch up in the background.
	case dashboard.LoadedMsg:
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg)
		if msg.Err == nil && msg.Overview != nil {
			m.statusBar.ActiveAlerts = msg.Overview.ActiveAlerts
		}
		return m, cmd

	case feed.ArticlesLoadedMsg:
		var cmd tea.Cmd
		m.feed, cmd = m.feed.Update(msg)
		return m, cmd

	case reports.ListLoadedMsg, reports.ReportLoadedMsg:
		var cmd tea.Cmd
		m.reports, cmd = m.reports.Update(msg)
		return m, cmd

	case alerts.AlertsLoadedMsg, alerts.ResolveResultMsg:
		var cmd tea.Cmd
		m.alerts, cmd = m.alerts.Update(msg)
		m.statusBar.ActiveAlerts = m.alerts.ActiveCount()
		return m, cmd

	case skills.SkillsLoadedMsg, skills.SkillResultMsg:
		var cmd tea.Cmd
		m.skills, cmd = m.skills.Update(msg)
		return m, cmd

	case settings.LoadedMsg, settings.SaveResultMsg, settings.PasswordResultMsg:
		var cmd tea.Cmd
		m.settings, cmd = m.settings.Update(msg)
		return m, cmd
	}

	// Everything else (spinner ticks, cursor blinks, view-internal
	// messages) goes to whichever view is in front.
	return m.routeToFront(msg)
}

func (m Model) handleLiveEvent(msg LiveEventMsg) (tea.Model, tea.Cmd) {
	summary := msg.Summary
	if summary == "" {
		summary = msg.Type
	}
	m.eventLog.Add("live", summary)

	if !m.authenticated {
		return m, nil
	}

	switch msg.Type {
	case client.EventNewArticle:
		return m, tea.Batch(m.feed.Reload(), m.dashboard.Reload())
	case client.EventNewAlert:
		return m, tea.Batch(m.alerts.Reload(), m.dashboard.Reload())
	case client.EventNewReport:
		return m, m.reports.Reload()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, even mid-edit.
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if !m.authenticated {
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	}

	if m.overlay != OverlayNone {
		return m.handleOverlayKey(msg)
	}

	// Text entry captures everything except ctrl+c.
	if m.frontEditing() {
		return m.routeToFront(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		return m, m.activateTab()

	case key.Matches(msg, m.keys.Tab1):
		return m.switchTab(TabDashboard)
	case key.Matches(msg, m.keys.Tab2):
		return m.switchTab(TabFeed)
	case key.Matches(msg, m.keys.Tab3):
		return m.switchTab(TabReports)
	case key.Matches(msg, m.keys.Tab4):
		return m.switchTab(TabAlerts)
	case key.Matches(msg, m.keys.Tab5):
		return m.switchTab(TabSkills)
	case key.Matches(msg, m.keys.Tab6):
		return m.switchTab(TabSettings)

	case key.Matches(msg, m.keys.EventLog):
		m.overlay = OverlayEventLog
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reloadActive()

	case key.Matches(msg, m.keys.Logout):
		if m.store != nil {
			m.store.Logout()
		}
		m.authenticated = false
		m.statusBar.Username = ""
		m.login = login.New(m.api)
		m.login.SetSize(m.width, m.height)
		m.eventLog.Add("nav", "signed out")
		return m, m.login.Init()

	case key.Matches(msg, m.keys.Enter) && m.tab == TabFeed:
		if a := m.feed.Selected(); a != nil {
			m.detail = detail.New(a)
			m.overlay = OverlayDetail
		}
		return m, nil
	}

	return m.routeToFront(msg)
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.overlay = OverlayNone
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.overlay == OverlayEventLog {
			m.eventLog.ScrollUp(1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.overlay == OverlayEventLog {
			m.eventLog.ScrollDown(1)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.live != nil {
		m.live.Close()
	}
	return m, tea.Quit
}

func (m Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	m.tab = tab
	return m, m.activateTab()
}

// activateTab re-fetches the newly focused tab so it never shows data
// older than the refresh interval.
func (m Model) activateTab() tea.Cmd {
	return m.reloadActive()
}

func (m Model) reloadActive() tea.Cmd {
	switch m.tab {
	case TabDashboard:
		return m.dashboard.Reload()
	case TabFeed:
		return m.feed.Reload()
	case TabReports:
		return m.reports.Reload()
	case TabAlerts:
		return m.alerts.Reload()
	case TabSkills:
		return m.skills.Reload()
	case TabSettings:
		return m.settings.Reload()
	}
	return nil
}

// frontEditing reports whether the active tab is capturing raw text input.
func (m Model) frontEditing() bool {
	switch m.tab {
	case TabFeed:
		return m.feed.Editing()
	case TabSettings:
		return m.settings.Editing()
	}
	return false
}

// routeToFront forwards a message to the view the user is looking at.
func (m Model) routeToFront(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if !m.authenticated {
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	}
	switch m.tab {
	case TabDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case TabFeed:
		m.feed, cmd = m.feed.Update(msg)
	case TabReports:
		m.reports, cmd = m.reports.Update(msg)
	case TabAlerts:
		m.alerts, cmd = m.alerts.Update(msg)
	case TabSkills:
		m.skills, cmd = m.skills.Update(msg)
	case TabSettings:
		m.settings, cmd = m.settings.Update(msg)
	}
	return m, cmd
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.statusBar.Width = width
	m.login.SetSize(width, height)
	m.dashboard.Width = width
	m.feed.Width = width
	m.feed.Height = height
	m.reports.Width = width
	m.reports.Height = height
	m.alerts.Width = width
	m.skills.Width = width
	m.settings.Width = width
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if !m.authenticated {
		return m.login.View()
	}

	if m.overlay != OverlayNone {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderOverlay())
	}

	sections := []string{
		m.statusBar.View(),
		m.renderTabBar(),
		m.activeView(),
		theme.StyleDimmed.Render("  tab/1-6:switch  r:refresh  e:event log  ctrl+l:sign out  q:quit"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderOverlay() string {
	switch m.overlay {
	case OverlayDetail:
		return m.detail.View()
	case OverlayEventLog:
		return m.eventLog.View(m.width, m.height)
	}
	return ""
}

func (m Model) renderTabBar() string {
	var parts []string
	for i := Tab(0); i < tabCount; i++ {
		label := tabNames[i]
		style := theme.StyleDimmed
		if i == m.tab {
			style = theme.StyleSelected
		}
		parts = append(parts, style.Padding(0, 1).Render(label))
	}
	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render("│")
	bar := ""
	for i, p := range parts {
		if i > 0 {
			bar += sep
		}
		bar += p
	}
	return " " + bar
}

func (m Model) activeView() string {
	switch m.tab {
	case TabDashboard:
		return m.dashboard.View()
	case TabFeed:
		return m.feed.View()
	case TabReports:
		return m.reports.View()
	case TabAlerts:
		return m.alerts.View()
	case TabSkills:
		return m.skills.View()
	case TabSettings:
		return m.settings.View()
	}
	return ""
}
