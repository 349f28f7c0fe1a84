package settings

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/news-agent/tui/internal/client"
)

func loadedModel() Model {
	m := New(nil)
	m.loading = false
	m.categories = []client.SettingCategory{{Key: "ai", Label: "AI"}}
	m.settings = map[string][]client.Setting{
		"ai": {
			{Key: "ai.model", Value: "gpt-4", Category: "ai", Label: "Model", FieldType: "text"},
			{Key: "ai.api_key", Value: client.MaskedValue, Category: "ai", Label: "API Key", FieldType: "password", HasValue: true},
		},
	}
	return m
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func TestEditMarksDirty(t *testing.T) {
	m := loadedModel()

	m, _ = m.Update(enterKey())
	if !m.editing {
		t.Fatal("enter should start editing")
	}
	m.input.SetValue("claude-3")
	m, _ = m.Update(enterKey())

	if m.editing {
		t.Fatal("confirm should stop editing")
	}
	if m.dirty["ai.model"] != "claude-3" {
		t.Errorf("dirty[ai.model] = %q, want claude-3", m.dirty["ai.model"])
	}
}

func TestMaskedValueNeverWrittenBack(t *testing.T) {
	m := loadedModel()
	m.selectedIdx = 1 // the masked api key

	m, _ = m.Update(enterKey())
	if got := m.input.Value(); got != "" {
		t.Errorf("editing a masked secret should start empty, got %q", got)
	}

	// Confirming the literal mask must not queue a write.
	m.input.SetValue(client.MaskedValue)
	m, _ = m.Update(enterKey())
	if _, ok := m.dirty["ai.api_key"]; ok {
		t.Error("the mask placeholder must never be queued as a new value")
	}
}

func TestEscapeCancelsEdit(t *testing.T) {
	m := loadedModel()

	m, _ = m.Update(enterKey())
	m.input.SetValue("changed")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.editing {
		t.Fatal("esc should cancel editing")
	}
	if len(m.dirty) != 0 {
		t.Error("cancelled edit should not mark anything dirty")
	}
}
