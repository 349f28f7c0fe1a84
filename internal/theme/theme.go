// Package theme provides the Lip Gloss color palette and reusable styles
// for the news-agent TUI. It is a leaf package with no internal imports
// to avoid import cycles.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Market sentiment colors, fear to greed.
var (
	ColorExtremeFear  = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#ef4444"}
	ColorFear         = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#f59e0b"}
	ColorNeutralSent  = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	ColorGreed        = lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#22c55e"}
	ColorExtremeGreed = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#3b82f6"}
)

// Alert level colors.
var (
	ColorCritical = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#ef4444"}
	ColorHigh     = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#f59e0b"}
	ColorMedium   = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#60a5fa"}
	ColorLow      = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
)

// Category colors.
var (
	ColorAStock   = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"}
	ColorGlobal   = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#60a5fa"}
	ColorCrypto   = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#fbbf24"}
	ColorTech     = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#a78bfa"}
	ColorMacro    = lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#4ade80"}
	ColorGeneral  = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
)

// UI chrome colors.
var (
	ColorBorder   = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#4b5563"}
	ColorDimmed   = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#6b7280"}
	ColorBright   = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#f9fafb"}
	ColorAccent   = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#3b82f6"}
	ColorHealthy  = lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#22c55e"}
	ColorWarning  = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#d97706"}
	ColorDanger   = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#dc2626"}
	ColorBullish  = lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#22c55e"}
	ColorBearish  = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#ef4444"}
)

// Apply forces the palette for an explicit "light" or "dark" preference.
// "system" keeps the terminal background autodetection.
func Apply(pref string) {
	switch pref {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}

// SentimentColor returns the color for a market sentiment label.
func SentimentColor(label string) lipgloss.AdaptiveColor {
	switch label {
	case "extreme_fear":
		return ColorExtremeFear
	case "fear":
		return ColorFear
	case "greed":
		return ColorGreed
	case "extreme_greed":
		return ColorExtremeGreed
	default:
		return ColorNeutralSent
	}
}

// SentimentScoreColor returns the color for a 0-100 sentiment score.
func SentimentScoreColor(score float64) lipgloss.AdaptiveColor {
	switch {
	case score < 25:
		return ColorExtremeFear
	case score < 45:
		return ColorFear
	case score <= 55:
		return ColorNeutralSent
	case score <= 75:
		return ColorGreed
	default:
		return ColorExtremeGreed
	}
}

// AlertColor returns the color for an alert level.
func AlertColor(level string) lipgloss.AdaptiveColor {
	switch level {
	case "critical":
		return ColorCritical
	case "high":
		return ColorHigh
	case "medium":
		return ColorMedium
	default:
		return ColorLow
	}
}

// CategoryColor returns the color for an article category.
func CategoryColor(category string) lipgloss.AdaptiveColor {
	switch category {
	case "a_stock":
		return ColorAStock
	case "global":
		return ColorGlobal
	case "crypto":
		return ColorCrypto
	case "tech":
		return ColorTech
	case "macro":
		return ColorMacro
	default:
		return ColorGeneral
	}
}

// ImportanceColor returns the color for an article importance level.
func ImportanceColor(level int) lipgloss.AdaptiveColor {
	switch {
	case level >= 5:
		return ColorDanger
	case level >= 4:
		return ColorWarning
	case level >= 3:
		return ColorAccent
	default:
		return ColorDimmed
	}
}

// ArticleSentimentColor returns the color for a per-article sentiment.
func ArticleSentimentColor(sentiment string) lipgloss.AdaptiveColor {
	switch sentiment {
	case "bullish":
		return ColorBullish
	case "bearish":
		return ColorBearish
	default:
		return ColorDimmed
	}
}

// Truncate shortens s to at most width terminal cells, appending an
// ellipsis when it had to cut. Width is measured in display cells, not
// bytes, so CJK titles neither break mid-rune nor overflow columns.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

// Reusable styles.
var (
	StyleBorder = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	StyleHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
		Foreground(ColorDimmed)

	StyleSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorBright)

	StyleError = lipgloss.NewStyle().
		Foreground(ColorDanger)

	StyleAccent = lipgloss.NewStyle().
		Foreground(ColorAccent)
)
