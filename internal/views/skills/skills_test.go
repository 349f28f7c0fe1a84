package skills

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/news-agent/tui/internal/client"
)

func loadedModel() Model {
	m := New(nil)
	m.loading = false
	m.skills = []client.Skill{
		{ID: 1, Name: "Importance Scorer", SkillType: "scorer", IsBuiltin: true, IsEnabled: true},
		{ID: 2, Name: "Gold Watcher", SkillType: "monitor", IsBuiltin: false, IsEnabled: false},
	}
	return m
}

func TestDeleteBuiltinRefused(t *testing.T) {
	m := loadedModel()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if cmd != nil {
		t.Fatal("deleting a builtin skill must not issue a request")
	}
	if !strings.Contains(m.statusMsg, "cannot be deleted") {
		t.Errorf("statusMsg = %q, want builtin refusal", m.statusMsg)
	}
}

func TestDeleteCustomAllowed(t *testing.T) {
	m := loadedModel()
	m.selectedIdx = 1

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if cmd == nil {
		t.Fatal("deleting a custom skill should issue a request")
	}
}

func TestToggleIssuesUpdate(t *testing.T) {
	m := loadedModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("toggle should issue an update request")
	}
}

func TestResultUpdatesInPlace(t *testing.T) {
	m := loadedModel()

	updated := m.skills[0]
	updated.IsEnabled = false
	m, _ = m.Update(SkillResultMsg{Skill: &updated})

	if m.skills[0].IsEnabled {
		t.Error("toggle result should update the skill in place")
	}
	if m.selectedIdx != 0 {
		t.Error("cursor should stay put after a toggle")
	}
}
