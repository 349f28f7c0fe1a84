// Package feed provides the article list tab with search, category and
// importance filters, and pagination.
package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/news-agent/tui/internal/client"
	"github.com/news-agent/tui/internal/theme"
)

const pageSize = 20

// categoryCycle is the filter order for the category key. The empty
// string means no filter.
var categoryCycle = []string{"", "a_stock", "global", "crypto", "tech", "macro", "general"}

// ArticlesLoadedMsg is returned after fetching a page of articles.
type ArticlesLoadedMsg struct {
	List *client.ArticleList
	Err  error
}

// KeyMap holds the feed-specific key bindings.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	Search     key.Binding
	Category   key.Binding
	Importance key.Binding
	Open       key.Binding
	Cancel     key.Binding
}

// DefaultKeyMap returns the default feed key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "prev article"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next article"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p", "prev page"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cycle category"),
		),
		Importance: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "cycle importance"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open article"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel search"),
		),
	}
}

// Model holds the feed state.
type Model struct {
	api  *client.Client
	keys KeyMap

	list        *client.ArticleList
	selectedIdx int

	search      textinput.Model
	searching   bool
	categoryIdx int
	importance  int
	page        int

	loading bool
	errMsg  string

	Width  int
	Height int
}

// New creates a feed model. It begins in the loading state.
func New(api *client.Client) Model {
	search := textinput.New()
	search.Placeholder = "search articles"
	search.CharLimit = 128

	return Model{
		api:     api,
		keys:    DefaultKeyMap(),
		search:  search,
		page:    1,
		loading: true,
	}
}

// Init fires the initial article fetch.
func (m Model) Init() tea.Cmd {
	return m.fetch()
}

// Reload re-fetches the current page with the current filters.
func (m Model) Reload() tea.Cmd {
	return m.fetch()
}

// Editing reports whether the search box is capturing keystrokes.
func (m Model) Editing() bool {
	return m.searching
}

// Selected returns the article under the cursor, or nil.
func (m Model) Selected() *client.Article {
	if m.list == nil || m.selectedIdx >= len(m.list.Items) {
		return nil
	}
	return &m.list.Items[m.selectedIdx]
}

func (m Model) query() client.ArticleQuery {
	return client.ArticleQuery{
		Search:        strings.TrimSpace(m.search.Value()),
		Category:      categoryCycle[m.categoryIdx],
		ImportanceMin: m.importance,
		Page:          m.page,
		PageSize:      pageSize,
	}
}

func (m Model) fetch() tea.Cmd {
	q := m.query()
	api := m.api
	return func() tea.Msg {
		list, err := api.ListArticles(context.Background(), q)
		return ArticlesLoadedMsg{List: list, Err: err}
	}
}

// Update handles messages for the feed tab.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ArticlesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.list = msg.List
		if m.selectedIdx >= len(m.list.Items) {
			m.selectedIdx = 0
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Open):
		m.searching = false
		m.search.Blur()
		m.page = 1
		m.loading = true
		return m, m.fetch()

	case key.Matches(msg, m.keys.Cancel):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.list != nil && len(m.list.Items) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.list.Items)
		}

	case key.Matches(msg, m.keys.Up):
		if m.list != nil && len(m.list.Items) > 0 {
			m.selectedIdx = (m.selectedIdx - 1 + len(m.list.Items)) % len(m.list.Items)
		}

	case key.Matches(msg, m.keys.NextPage):
		if m.list != nil && m.page < m.list.Pages {
			m.page++
			m.selectedIdx = 0
			m.loading = true
			return m, m.fetch()
		}

	case key.Matches(msg, m.keys.PrevPage):
		if m.page > 1 {
			m.page--
			m.selectedIdx = 0
			m.loading = true
			return m, m.fetch()
		}

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Category):
		m.categoryIdx = (m.categoryIdx + 1) % len(categoryCycle)
		m.page = 1
		m.selectedIdx = 0
		m.loading = true
		return m, m.fetch()

	case key.Matches(msg, m.keys.Importance):
		// Cycle 0 (off), 3, 4, 5.
		switch m.importance {
		case 0:
			m.importance = 3
		case 5:
			m.importance = 0
		default:
			m.importance++
		}
		m.page = 1
		m.selectedIdx = 0
		m.loading = true
		return m, m.fetch()
	}
	return m, nil
}

// View renders the feed tab.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	lines := []string{m.renderFilterBar(width)}

	switch {
	case m.loading:
		lines = append(lines, theme.StyleDimmed.Render("  Loading articles..."))
	case m.errMsg != "":
		lines = append(lines, theme.StyleError.Render("  "+m.errMsg))
	case m.list == nil || len(m.list.Items) == 0:
		lines = append(lines, theme.StyleDimmed.Render("  No articles match the current filters"))
	default:
		lines = append(lines, m.renderList(width)...)
		lines = append(lines, m.renderPageFooter())
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderFilterBar(width int) string {
	var parts []string

	if m.searching {
		parts = append(parts, m.search.View())
	} else if q := strings.TrimSpace(m.search.Value()); q != "" {
		parts = append(parts, theme.StyleAccent.Render("search: "+q))
	}

	if cat := categoryCycle[m.categoryIdx]; cat != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.CategoryColor(cat)).
			Render("category: "+client.CategoryLabel(cat)))
	}
	if m.importance > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.ImportanceColor(m.importance)).
			Render(fmt.Sprintf("importance ≥ %d", m.importance)))
	}
	if len(parts) == 0 {
		parts = append(parts, theme.StyleDimmed.Render("all articles"))
	}

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Render(strings.Join(parts, sep))
}

func (m Model) renderList(width int) []string {
	maxTitle := width - 44
	if maxTitle < 20 {
		maxTitle = 20
	}

	var lines []string
	for i, a := range m.list.Items {
		prefix := "  "
		if i == m.selectedIdx {
			prefix = "> "
		}

		glyph := lipgloss.NewStyle().Foreground(theme.ImportanceColor(a.Importance)).
			Render(client.ImportanceGlyph(a.Importance))
		cat := lipgloss.NewStyle().Foreground(theme.CategoryColor(a.Category)).
			Width(10).Render(client.CategoryLabel(a.Category))

		title := theme.Truncate(a.Title, maxTitle)
		titleStyle := lipgloss.NewStyle().Foreground(theme.ColorBright)
		if i == m.selectedIdx {
			titleStyle = theme.StyleSelected
		}

		ts := ""
		if !a.PublishedAt.IsZero() {
			ts = theme.StyleDimmed.Render(a.PublishedAt.Format("01-02 15:04"))
		}
		sent := lipgloss.NewStyle().Foreground(theme.ArticleSentimentColor(a.Sentiment)).
			Render(client.ArticleSentimentLabel(a.Sentiment))

		lines = append(lines, fmt.Sprintf("%s%s %s %s  %s %s",
			prefix, glyph, cat, titleStyle.Render(title), ts, sent))
	}
	return lines
}

func (m Model) renderPageFooter() string {
	return theme.StyleDimmed.Render(fmt.Sprintf(
		"  page %d/%d  %d articles  /:search c:category i:importance n/p:page enter:open",
		m.list.Page, m.list.Pages, m.list.Total))
}
