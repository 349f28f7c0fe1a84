package eventlog

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestAddEntry(t *testing.T) {
	m := New()
	m.Add("live", "channel connected")
	if len(m.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(m.Entries))
	}
	if m.Entries[0].Kind != "live" {
		t.Errorf("expected kind 'live', got %q", m.Entries[0].Kind)
	}
}

func TestMaxEntries(t *testing.T) {
	m := New()
	for i := 0; i < maxEntries+50; i++ {
		m.Add("live", "msg")
	}
	if len(m.Entries) != maxEntries {
		t.Errorf("expected %d entries, got %d", maxEntries, len(m.Entries))
	}
}

func TestScrollUpDown(t *testing.T) {
	m := New()
	for i := 0; i < 20; i++ {
		m.Add("live", "msg")
	}
	if m.Offset != 0 {
		t.Fatal("expected offset 0 after adds")
	}

	m.ScrollUp(5)
	if m.Offset != 5 {
		t.Errorf("expected offset 5, got %d", m.Offset)
	}

	m.ScrollDown(3)
	if m.Offset != 2 {
		t.Errorf("expected offset 2, got %d", m.Offset)
	}

	m.ScrollDown(10) // shouldn't go below 0
	if m.Offset != 0 {
		t.Errorf("expected offset 0, got %d", m.Offset)
	}
}

func TestScrollUpCapped(t *testing.T) {
	m := New()
	for i := 0; i < 5; i++ {
		m.Add("live", "msg")
	}
	m.ScrollUp(100)
	if m.Offset != 4 { // max is len-1
		t.Errorf("expected offset 4, got %d", m.Offset)
	}
}

func TestViewEmpty(t *testing.T) {
	m := New()
	v := m.View(80, 20)
	if !strings.Contains(v, "No events") {
		t.Error("empty view should show 'No events' message")
	}
}

func TestViewWithEntries(t *testing.T) {
	m := New()
	m.Add("live", "channel connected")
	m.Add("err", "fetch failed")
	v := m.View(80, 20)
	if !strings.Contains(v, "channel connected") {
		t.Error("view should contain 'channel connected'")
	}
	if !strings.Contains(v, "fetch failed") {
		t.Error("view should contain 'fetch failed'")
	}
}

func TestViewKindGlyphs(t *testing.T) {
	m := New()
	m.Add("live", "channel connected")
	m.Add("err", "fetch failed")
	v := m.View(80, 20)
	if !strings.Contains(v, "◆") {
		t.Error("view should mark live entries with ◆")
	}
	if !strings.Contains(v, "✗") {
		t.Error("view should mark error entries with ✗")
	}
}

func TestViewTruncatesWideMessages(t *testing.T) {
	m := New()
	m.Add("live", "新文章：央行宣布下调存款准备金率，市场反应强烈，"+strings.Repeat("金", 60))
	v := m.View(40, 20)
	if !utf8.ValidString(v) {
		t.Error("truncated view should remain valid UTF-8")
	}
	if !strings.Contains(v, "…") {
		t.Error("long message should be shortened with an ellipsis")
	}
}

func TestAddResetsScroll(t *testing.T) {
	m := New()
	for i := 0; i < 10; i++ {
		m.Add("live", "msg")
	}
	m.ScrollUp(5)
	m.Add("nav", "switched tab")
	if m.Offset != 0 {
		t.Error("adding entry should reset scroll to 0")
	}
}
