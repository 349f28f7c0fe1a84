package client

// Display labels for the enumerated values the backend emits. The wire
// keeps the raw keys; views render the labels.

var categoryLabels = map[string]string{
	"a_stock": "A-Shares",
	"global":  "Global",
	"crypto":  "Crypto",
	"tech":    "Tech",
	"macro":   "Macro",
	"general": "General",
}

// CategoryLabel returns the display label for a category key. Unknown
// keys pass through unchanged.
func CategoryLabel(key string) string {
	if l, ok := categoryLabels[key]; ok {
		return l
	}
	return key
}

var sentimentLabels = map[string]string{
	"extreme_fear":  "Extreme Fear",
	"fear":          "Fear",
	"neutral":       "Neutral",
	"greed":         "Greed",
	"extreme_greed": "Extreme Greed",
}

// SentimentLabel returns the display label for a market sentiment key.
func SentimentLabel(key string) string {
	if l, ok := sentimentLabels[key]; ok {
		return l
	}
	return "Neutral"
}

// ArticleSentimentLabel maps a per-article sentiment to its display form.
func ArticleSentimentLabel(key string) string {
	switch key {
	case "bullish":
		return "▲ bullish"
	case "bearish":
		return "▼ bearish"
	case "":
		return ""
	default:
		return "– neutral"
	}
}

// ReportTypeLabel returns the display label for a report type.
func ReportTypeLabel(reportType string) string {
	switch reportType {
	case "morning":
		return "Morning Report"
	case "evening":
		return "Evening Report"
	default:
		return reportType
	}
}

var alertLevelLabels = map[string]string{
	AlertCritical: "CRITICAL",
	AlertHigh:     "HIGH",
	AlertMedium:   "MEDIUM",
	AlertLow:      "LOW",
}

// AlertLevelLabel returns the display label for an alert level.
func AlertLevelLabel(level string) string {
	if l, ok := alertLevelLabels[level]; ok {
		return l
	}
	return alertLevelLabels[AlertLow]
}

var skillTypeLabels = map[string]string{
	"scorer":    "Scorer",
	"monitor":   "Monitor",
	"analyzer":  "Analyzer",
	"generator": "Generator",
}

// SkillTypeLabel returns the display label for a skill type.
func SkillTypeLabel(skillType string) string {
	if l, ok := skillTypeLabels[skillType]; ok {
		return l
	}
	return skillType
}

// ImportanceGlyph returns the marker shown next to an article at the
// given importance level (0-5).
func ImportanceGlyph(level int) string {
	switch {
	case level >= 5:
		return "!!"
	case level >= 4:
		return "! "
	case level >= 3:
		return "* "
	default:
		return "  "
	}
}
