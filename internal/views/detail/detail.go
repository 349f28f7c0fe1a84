// Package detail renders the article detail flyout overlay.
package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/news-agent/tui/internal/client"
	"github.com/news-agent/tui/internal/theme"
)

const (
	panelWidth = 72
	labelWidth = 12
)

var (
	stylePanel = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.ColorBorder).
			Padding(0, 1)

	styleLabel = lipgloss.NewStyle().
			Foreground(theme.ColorDimmed).
			Width(labelWidth)

	styleValue = lipgloss.NewStyle().
			Foreground(theme.ColorBright)

	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorBright)

	styleFooter = lipgloss.NewStyle().
			Foreground(theme.ColorDimmed)
)

// Model holds the state for the article detail overlay.
type Model struct {
	Article *client.Article
}

// New creates a detail model for the given article.
func New(a *client.Article) Model {
	return Model{Article: a}
}

// View renders the detail panel. Returns an empty string if no article is set.
func (m Model) View() string {
	if m.Article == nil {
		return ""
	}
	return stylePanel.Width(panelWidth).Render(m.renderInner(m.Article))
}

func (m Model) renderInner(a *client.Article) string {
	var b strings.Builder

	title := styleTitle.Render(wrap(a.Title, panelWidth-4))
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("─", panelWidth-4) + "\n")

	catStr := lipgloss.NewStyle().Foreground(theme.CategoryColor(a.Category)).
		Render(client.CategoryLabel(a.Category))
	writeRow(&b, "Category", catStr)
	writeRow(&b, "Source", a.Source)

	impStr := lipgloss.NewStyle().Foreground(theme.ImportanceColor(a.Importance)).
		Render(fmt.Sprintf("%s %d/5", client.ImportanceGlyph(a.Importance), a.Importance))
	writeRow(&b, "Importance", impStr)

	if a.Sentiment != "" {
		sentStr := lipgloss.NewStyle().Foreground(theme.ArticleSentimentColor(a.Sentiment)).
			Render(client.ArticleSentimentLabel(a.Sentiment))
		writeRow(&b, "Sentiment", sentStr)
	}

	if !a.PublishedAt.IsZero() {
		writeRow(&b, "Published", formatAge(a.PublishedAt.Time))
	}
	if !a.FetchedAt.IsZero() {
		writeRow(&b, "Fetched", formatAge(a.FetchedAt.Time))
	}
	if len(a.Tags) > 0 {
		writeRow(&b, "Tags", strings.Join(a.Tags, ", "))
	}

	if a.Summary != "" {
		b.WriteString("\n")
		b.WriteString(styleValue.Render(wrap(a.Summary, panelWidth-4)) + "\n")
	}

	if a.URL != "" {
		b.WriteString("\n")
		writeRow(&b, "URL", theme.Truncate(a.URL, panelWidth-4-labelWidth))
	}

	b.WriteString("\n")
	b.WriteString(styleFooter.Render("[esc] close"))

	return b.String()
}

func writeRow(b *strings.Builder, label, value string) {
	b.WriteString(styleLabel.Render(label+":") + styleValue.Render(value) + "\n")
}

// wrap breaks text into lines no wider than width display cells, on
// word boundaries.
func wrap(s string, width int) string {
	if width < 10 {
		width = 10
	}
	words := strings.Fields(s)
	var lines []string
	var cur string
	for _, w := range words {
		if cur == "" {
			cur = w
			continue
		}
		if lipgloss.Width(cur)+1+lipgloss.Width(w) > width {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return strings.Join(lines, "\n")
}

func formatAge(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh %dm ago", int(d.Hours()), int(d.Minutes())%60)
	default:
		return t.Format("2006-01-02 15:04")
	}
}
