// Package config loads the TUI configuration file and the persisted UI
// preferences.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the news-tui configuration, read from YAML with environment
// overrides applied on top.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Refresh RefreshConfig `yaml:"refresh"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig locates the backend.
type ServerConfig struct {
	URL string `yaml:"url"`
}

// RefreshConfig controls the periodic full re-fetch that backs up the
// live channel.
type RefreshConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// LogConfig controls the internal log file.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{URL: "http://127.0.0.1:8000"},
		Refresh: RefreshConfig{Interval: 60 * time.Second},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads the config file at path, if it exists, over the defaults,
// then applies environment overrides. A .env file in the working
// directory is honored the same way as real environment variables.
func Load(path string) (*Config, error) {
	// Missing .env is fine; it is a development convenience.
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if v := os.Getenv("NEWS_TUI_SERVER_URL"); v != "" {
		cfg.Server.URL = v
	}
	if v := os.Getenv("NEWS_TUI_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if cfg.Refresh.Interval <= 0 {
		cfg.Refresh.Interval = 60 * time.Second
	}
	return cfg, nil
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "news-tui", "config.yaml"), nil
}
