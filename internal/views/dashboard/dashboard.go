// Package dashboard provides the overview tab: summary cards, the animated
// market sentiment gauge, category breakdown and trending articles.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/news-agent/tui/internal/client"
	"github.com/news-agent/tui/internal/theme"
	"golang.org/x/sync/errgroup"
)

const (
	gaugeFPS      = 30
	trendingLimit = 10
	historyDays   = 7
)

// LoadedMsg is returned after the parallel dashboard fetch completes.
type LoadedMsg struct {
	Overview *client.Overview
	Stats    *client.Stats
	Trending []client.Article
	History  []client.SentimentSnapshot
	Err      error
}

// gaugeTickMsg drives the sentiment gauge animation.
type gaugeTickMsg time.Time

// Model holds the dashboard state.
type Model struct {
	api   *client.Client
	Width int

	overview *client.Overview
	stats    *client.Stats
	trending []client.Article
	history  []client.SentimentSnapshot

	loading bool
	errMsg  string

	// The gauge needle eases toward the latest score with a spring.
	spring      harmonica.Spring
	gaugePos    float64
	gaugeVel    float64
	gaugeTarget float64
	animating   bool
}

// New creates a dashboard model. It begins in the loading state.
func New(api *client.Client) Model {
	return Model{
		api:     api,
		loading: true,
		spring:  harmonica.NewSpring(harmonica.FPS(gaugeFPS), 6.0, 0.8),
	}
}

// Init fires the dashboard fetch.
func (m Model) Init() tea.Cmd {
	return load(m.api)
}

// Reload re-fetches the dashboard without resetting the gauge position.
func (m Model) Reload() tea.Cmd {
	return load(m.api)
}

// Update handles messages for the dashboard tab.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.overview = msg.Overview
		m.stats = msg.Stats
		m.trending = msg.Trending
		m.history = msg.History
		m.gaugeTarget = msg.Overview.Sentiment.OverallScore
		if !m.animating {
			m.animating = true
			return m, gaugeTick()
		}
		return m, nil

	case gaugeTickMsg:
		if !m.animating {
			return m, nil
		}
		m.gaugePos, m.gaugeVel = m.spring.Update(m.gaugePos, m.gaugeVel, m.gaugeTarget)
		if settled(m.gaugePos, m.gaugeVel, m.gaugeTarget) {
			m.gaugePos = m.gaugeTarget
			m.gaugeVel = 0
			m.animating = false
			return m, nil
		}
		return m, gaugeTick()
	}
	return m, nil
}

// View renders the dashboard tab.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	if m.loading {
		return theme.StyleDimmed.Render("  Loading dashboard...")
	}
	if m.errMsg != "" {
		return theme.StyleError.Render("  " + m.errMsg)
	}

	sections := []string{
		m.renderCards(width),
		m.renderGauge(width),
	}
	if len(m.history) > 1 {
		sections = append(sections, m.renderHistory())
	}
	sections = append(sections,
		m.renderBreakdown(width),
		m.renderTrending(width),
	)
	if m.stats != nil && len(m.stats.HourlyVolume) > 0 {
		sections = append(sections, m.renderVolume(width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderCards shows the headline counts in a single row.
func (m Model) renderCards(width int) string {
	statStyle := lipgloss.NewStyle().Padding(0, 1)

	total := 0
	if m.stats != nil {
		total = m.stats.TotalArticles
	}

	stats := []string{
		statStyle.Foreground(theme.ColorBright).Render(
			fmt.Sprintf("Today: %d", m.overview.TodayArticles)),
		statStyle.Foreground(theme.ColorWarning).Render(
			fmt.Sprintf("Important: %d", m.overview.ImportantToday)),
		statStyle.Foreground(theme.ColorDanger).Render(
			fmt.Sprintf("Alerts: %d", m.overview.ActiveAlerts)),
		statStyle.Foreground(theme.ColorDimmed).Render(
			fmt.Sprintf("Archive: %s", formatCount(total))),
	}

	content := strings.Join(stats, lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | "))

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}

// renderGauge draws the fear/greed gauge at the spring's current position.
func (m Model) renderGauge(width int) string {
	barWidth := min(width-20, 50)
	if barWidth < 10 {
		barWidth = 10
	}

	score := m.gaugePos
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	color := theme.SentimentScoreColor(m.gaugeTarget)
	filled := int(score / 100 * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	bar += lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(strings.Repeat("░", barWidth-filled))

	label := client.SentimentLabel(m.overview.Sentiment.Label)
	header := theme.StyleHeader.Render("  Market Sentiment")
	line := fmt.Sprintf("  %s %3.0f  %s", bar, score,
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(label))

	scale := theme.StyleDimmed.Render("  fear" +
		strings.Repeat(" ", max(barWidth-9, 1)) + "greed")

	return lipgloss.JoinVertical(lipgloss.Left, header, line, scale)
}

// renderBreakdown shows per-category article counts as small bars.
func (m Model) renderBreakdown(width int) string {
	header := theme.StyleHeader.Render("  Categories")
	if len(m.overview.CategoryBreakdown) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			theme.StyleDimmed.Render("  No articles today"))
	}

	type catCount struct {
		key   string
		count int
	}
	cats := make([]catCount, 0, len(m.overview.CategoryBreakdown))
	maxCount := 1
	for k, n := range m.overview.CategoryBreakdown {
		cats = append(cats, catCount{k, n})
		if n > maxCount {
			maxCount = n
		}
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].count != cats[j].count {
			return cats[i].count > cats[j].count
		}
		return cats[i].key < cats[j].key
	})

	const barWidth = 24
	lines := []string{header}
	for _, c := range cats {
		filled := c.count * barWidth / maxCount
		bar := lipgloss.NewStyle().Foreground(theme.CategoryColor(c.key)).
			Render(strings.Repeat("█", filled))
		bar += lipgloss.NewStyle().Foreground(theme.ColorBorder).
			Render(strings.Repeat("░", barWidth-filled))
		label := lipgloss.NewStyle().Foreground(theme.CategoryColor(c.key)).
			Width(10).Render(client.CategoryLabel(c.key))
		lines = append(lines, fmt.Sprintf("  %s %s %d", label, bar, c.count))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderTrending lists the highest ranked articles.
func (m Model) renderTrending(width int) string {
	header := theme.StyleHeader.Render("  Trending")
	if len(m.trending) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			theme.StyleDimmed.Render("  Nothing trending yet"))
	}

	maxTitle := width - 32
	if maxTitle < 20 {
		maxTitle = 20
	}

	lines := []string{header}
	for i, a := range m.trending {
		if i >= trendingLimit {
			break
		}
		glyph := lipgloss.NewStyle().Foreground(theme.ImportanceColor(a.Importance)).
			Render(client.ImportanceGlyph(a.Importance))
		cat := lipgloss.NewStyle().Foreground(theme.CategoryColor(a.Category)).
			Width(10).Render(client.CategoryLabel(a.Category))
		title := theme.Truncate(a.Title, maxTitle)
		sent := lipgloss.NewStyle().Foreground(theme.ArticleSentimentColor(a.Sentiment)).
			Render(client.ArticleSentimentLabel(a.Sentiment))
		lines = append(lines, fmt.Sprintf("  %s %s %s  %s", glyph, cat, title, sent))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderHistory draws the recent sentiment scores as a sparkline, one
// glyph per snapshot, colored by each score's band.
func (m Model) renderHistory() string {
	header := theme.StyleHeader.Render(fmt.Sprintf("  Sentiment %dd", historyDays))

	var b strings.Builder
	for _, s := range m.history {
		idx := int(s.OverallScore / 100 * float64(len(sparkGlyphs)-1))
		if idx < 0 {
			idx = 0
		}
		if idx > len(sparkGlyphs)-1 {
			idx = len(sparkGlyphs) - 1
		}
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.SentimentScoreColor(s.OverallScore)).
			Render(string(sparkGlyphs[idx])))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "  "+b.String())
}

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// renderVolume draws the 24h article volume as a sparkline.
func (m Model) renderVolume(width int) string {
	header := theme.StyleHeader.Render("  24h Volume")

	maxCount := 1
	for _, h := range m.stats.HourlyVolume {
		if h.Count > maxCount {
			maxCount = h.Count
		}
	}

	var b strings.Builder
	for _, h := range m.stats.HourlyVolume {
		idx := h.Count * (len(sparkGlyphs) - 1) / maxCount
		b.WriteRune(sparkGlyphs[idx])
	}

	line := "  " + lipgloss.NewStyle().Foreground(theme.ColorAccent).Render(b.String())
	return lipgloss.JoinVertical(lipgloss.Left, header, line)
}

func settled(pos, vel, target float64) bool {
	const eps = 0.05
	return pos > target-eps && pos < target+eps && vel > -eps && vel < eps
}

func gaugeTick() tea.Cmd {
	return tea.Tick(time.Second/gaugeFPS, func(t time.Time) tea.Msg {
		return gaugeTickMsg(t)
	})
}

// load fetches the overview, stats and trending list in parallel.
func load(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		var msg LoadedMsg
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			ov, err := api.Overview(ctx)
			msg.Overview = ov
			return err
		})
		g.Go(func() error {
			st, err := api.Stats(ctx)
			msg.Stats = st
			return err
		})
		g.Go(func() error {
			tr, err := api.TrendingArticles(ctx, trendingLimit)
			msg.Trending = tr
			return err
		})
		g.Go(func() error {
			hs, err := api.SentimentHistory(ctx, historyDays)
			msg.History = hs
			return err
		})
		msg.Err = g.Wait()
		return msg
	}
}

// formatCount formats large numbers with K/M suffixes.
func formatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
