package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != "http://127.0.0.1:8000" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.Refresh.Interval != 60*time.Second {
		t.Errorf("Refresh.Interval = %v", cfg.Refresh.Interval)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  url: https://news.internal:8443
refresh:
  interval: 30s
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != "https://news.internal:8443" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.Refresh.Interval != 30*time.Second {
		t.Errorf("Refresh.Interval = %v", cfg.Refresh.Interval)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("NEWS_TUI_SERVER_URL", "http://10.1.2.3:8000")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != "http://10.1.2.3:8000" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
}

func TestPrefsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news-agent-theme.json")

	if got := LoadPrefs(path); got.Theme != ThemeSystem {
		t.Errorf("missing prefs should default to system, got %q", got.Theme)
	}

	if err := SavePrefs(path, Prefs{Theme: ThemeDark}); err != nil {
		t.Fatalf("SavePrefs: %v", err)
	}
	if got := LoadPrefs(path); got.Theme != ThemeDark {
		t.Errorf("Theme = %q, want dark", got.Theme)
	}
}

func TestPrefsRejectsUnknownTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news-agent-theme.json")
	if err := os.WriteFile(path, []byte(`{"theme":"neon"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := LoadPrefs(path); got.Theme != ThemeSystem {
		t.Errorf("unknown theme should fall back to system, got %q", got.Theme)
	}
}
