package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// prefsFile matches the browser client's "news-agent-theme" storage
// namespace. It is a separate record from the auth state on purpose.
const prefsFile = "news-agent-theme.json"

// Theme preference values.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Prefs is the persisted UI preference record.
type Prefs struct {
	Theme string `json:"theme"`
}

// DefaultPrefs returns the initial preferences.
func DefaultPrefs() Prefs {
	return Prefs{Theme: ThemeSystem}
}

// PrefsPath returns the preference record location.
func PrefsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "news-tui", prefsFile), nil
}

// LoadPrefs reads the preference record. Missing or unreadable records
// fall back to defaults; preferences are never worth failing startup over.
func LoadPrefs(path string) Prefs {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultPrefs()
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return DefaultPrefs()
	}
	switch p.Theme {
	case ThemeLight, ThemeDark, ThemeSystem:
		return p
	default:
		return DefaultPrefs()
	}
}

// SavePrefs writes the preference record.
func SavePrefs(path string, p Prefs) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
