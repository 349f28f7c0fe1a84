package app

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/news-agent/tui/internal/client"
	"github.com/news-agent/tui/internal/session"
)

func authedStore(t *testing.T) *session.Store {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "auth.json"))
	if err := store.SetAuth("tok", session.User{ID: 1, Username: "admin"}); err != nil {
		t.Fatal(err)
	}
	return store
}

func TestLoginGateShownWhenSignedOut(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "auth.json"))
	m := New(nil, nil, store, 0)
	m.setSize(80, 24)

	v := m.View()
	if !strings.Contains(v, "sign in") {
		t.Error("signed-out view should show the sign-in form")
	}
}

func TestAuthenticatedStartsOnDashboard(t *testing.T) {
	m := New(nil, nil, authedStore(t), 0)
	m.setSize(100, 30)

	if !m.authenticated {
		t.Fatal("model with a stored token should start authenticated")
	}
	v := m.View()
	if !strings.Contains(v, "Dashboard") {
		t.Error("view should contain the Dashboard tab")
	}
	if !strings.Contains(v, "admin") {
		t.Error("status bar should show the signed-in user")
	}
}

func TestTabSwitching(t *testing.T) {
	m := New(nil, nil, authedStore(t), 0)
	m.setSize(100, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})
	m = next.(Model)
	if m.tab != TabAlerts {
		t.Errorf("tab = %d, want TabAlerts", m.tab)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.tab != TabSkills {
		t.Errorf("tab = %d, want TabSkills after tab key", m.tab)
	}
}

func TestLiveEventRecordedInLog(t *testing.T) {
	m := New(nil, nil, authedStore(t), 0)
	m.setSize(100, 30)

	next, _ := m.Update(LiveEventMsg{Type: client.EventNewAlert, Summary: "alert high: gold spike"})
	m = next.(Model)

	m.overlay = OverlayEventLog
	v := m.View()
	if !strings.Contains(v, "gold spike") {
		t.Error("event log overlay should contain the live event summary")
	}
}

func TestUnauthorizedReturnsToLogin(t *testing.T) {
	m := New(nil, nil, authedStore(t), 0)
	m.setSize(100, 30)

	next, _ := m.Update(UnauthorizedMsg{})
	m = next.(Model)

	if m.authenticated {
		t.Fatal("unauthorized should sign the model out")
	}
	v := m.View()
	if !strings.Contains(v, "sign in") {
		t.Error("view should return to the sign-in form")
	}
}

func TestConnectionStateReflectedInStatusBar(t *testing.T) {
	m := New(nil, nil, authedStore(t), 0)
	m.setSize(100, 30)

	next, _ := m.Update(LiveStateMsg{Connected: true})
	m = next.(Model)
	if !strings.Contains(m.View(), "live") {
		t.Error("status bar should show the live marker when connected")
	}

	next, _ = m.Update(LiveStateMsg{Connected: false})
	m = next.(Model)
	if !strings.Contains(m.View(), "polling") {
		t.Error("status bar should fall back to the polling marker")
	}
}
