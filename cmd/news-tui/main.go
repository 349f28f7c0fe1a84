package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/news-agent/tui/internal/app"
	"github.com/news-agent/tui/internal/client"
	"github.com/news-agent/tui/internal/config"
	"github.com/news-agent/tui/internal/session"
	"github.com/news-agent/tui/internal/theme"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagServer string
)

var rootCmd = &cobra.Command{
	Use:   "news-tui",
	Short: "Terminal dashboard for the news-agent monitoring backend",
	Long: `news-tui is a terminal client for the news-agent backend. It shows
the market sentiment dashboard, the article feed, daily reports, alerts,
skills and settings, and follows live updates over a WebSocket channel.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "config file (default: user config dir)")
	rootCmd.Flags().StringVar(&flagServer, "server", "", "backend base URL (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flagConfig
	if cfgPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			cfgPath = p
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flagServer != "" {
		cfg.Server.URL = flagServer
	}

	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	prefsPath, _ := config.PrefsPath()
	theme.Apply(config.LoadPrefs(prefsPath).Theme)

	sessPath, err := session.DefaultPath()
	if err != nil {
		return fmt.Errorf("session path: %w", err)
	}
	store := session.NewStore(sessPath)
	if err := store.Load(); err != nil {
		log.Warn().Err(err).Msg("session load failed, starting signed out")
	}

	api := client.New(cfg.Server.URL, store, log)
	live := client.NewChannel(client.LiveURL(cfg.Server.URL), log)
	defer live.Close()

	m := app.New(api, live, store, cfg.Refresh.Interval)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// The program owns the UI; the client and channel push into it.
	api.OnUnauthorized(func() {
		p.Send(app.UnauthorizedMsg{})
	})
	live.OnStateChange(func(connected bool) {
		p.Send(app.LiveStateMsg{Connected: connected})
	})
	wireLiveEvents(p, live)

	log.Info().Str("server", cfg.Server.URL).Msg("starting news-tui")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// wireLiveEvents forwards channel events into the program with a short
// human summary for the event log.
func wireLiveEvents(p *tea.Program, live *client.Channel) {
	live.Handle(client.EventNewArticle, func(data json.RawMessage) {
		var a struct {
			Title string `json:"title"`
		}
		_ = json.Unmarshal(data, &a)
		p.Send(app.LiveEventMsg{Type: client.EventNewArticle, Summary: "article: " + a.Title})
	})
	live.Handle(client.EventNewAlert, func(data json.RawMessage) {
		var a struct {
			Level string `json:"level"`
			Title string `json:"title"`
		}
		_ = json.Unmarshal(data, &a)
		p.Send(app.LiveEventMsg{
			Type:    client.EventNewAlert,
			Summary: strings.TrimSpace("alert " + a.Level + ": " + a.Title),
		})
	})
	live.Handle(client.EventNewReport, func(data json.RawMessage) {
		var r struct {
			Title string `json:"title"`
		}
		_ = json.Unmarshal(data, &r)
		p.Send(app.LiveEventMsg{Type: client.EventNewReport, Summary: "report: " + r.Title})
	})
}

// openLogger writes structured logs to a file so they never fight the
// alt-screen UI for the terminal.
func openLogger(cfg *config.Config) (zerolog.Logger, func(), error) {
	path := cfg.Log.File
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return zerolog.Nop(), func() {}, err
		}
		path = filepath.Join(dir, "news-tui", "news-tui.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return zerolog.Nop(), func() {}, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	log := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return log, func() { f.Close() }, nil
}
