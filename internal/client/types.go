// Package client provides the HTTP and WebSocket clients for the
// news-agent backend. Wire types mirror the backend API responses
// without importing server code.
package client

import (
	"encoding/json"
	"strings"
	"time"
)

// Timestamp decodes the backend's timestamps, which come as naive ISO 8601
// strings without a zone suffix. Null and empty decode to the zero time.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	for _, layout := range timestampLayouts {
		var parsed time.Time
		if parsed, err = time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return err
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// Article is one fetched news item.
type Article struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	URL         string          `json:"url"`
	Source      string          `json:"source"`
	Category    string          `json:"category"`
	Summary     string          `json:"summary"`
	ImageURL    string          `json:"image_url"`
	PublishedAt Timestamp       `json:"published_at"`
	FetchedAt   Timestamp       `json:"fetched_at"`
	IsPushed    bool            `json:"is_pushed"`
	Importance  int             `json:"importance"`
	Sentiment   string          `json:"sentiment"`
	AIAnalysis  json.RawMessage `json:"ai_analysis"`
	Tags        []string        `json:"tags"`
}

// ArticleList is the paginated envelope returned by the article listing.
type ArticleList struct {
	Items    []Article `json:"items"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Pages    int       `json:"pages"`
}

// SourceCount pairs a news source with its article count.
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// CategoryCount pairs a category with its article count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Sentiment is the market sentiment gauge value.
type Sentiment struct {
	OverallScore float64 `json:"overall_score"`
	Label        string  `json:"label"`
}

// SentimentSnapshot is one point of sentiment history.
type SentimentSnapshot struct {
	ID           int             `json:"id"`
	SnapshotTime Timestamp       `json:"snapshot_time"`
	OverallScore float64         `json:"overall_score"`
	Label        string          `json:"label"`
	Breakdown    json.RawMessage `json:"breakdown"`
	NewsVolume   int             `json:"news_volume"`
	TopKeywords  []string        `json:"top_keywords"`
}

// Overview is the dashboard summary.
type Overview struct {
	TodayArticles     int            `json:"today_articles"`
	ActiveAlerts      int            `json:"active_alerts"`
	ImportantToday    int            `json:"important_today"`
	Sentiment         Sentiment      `json:"sentiment"`
	CategoryBreakdown map[string]int `json:"category_breakdown"`
}

// HourlyVolume is one bucket of the 24h article volume histogram.
type HourlyVolume struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

// Stats is the dashboard aggregate statistics response.
type Stats struct {
	TotalArticles int            `json:"total_articles"`
	Sources       []SourceCount  `json:"sources"`
	HourlyVolume  []HourlyVolume `json:"hourly_volume"`
}

// Report is one AI-generated daily report. Content is markdown.
type Report struct {
	ID            int             `json:"id"`
	ReportType    string          `json:"report_type"`
	ReportDate    string          `json:"report_date"`
	Title         string          `json:"title"`
	Content       string          `json:"content"`
	KeyEvents     json.RawMessage `json:"key_events"`
	SentimentData json.RawMessage `json:"sentiment_data"`
	Suggestions   json.RawMessage `json:"suggestions"`
	CreatedAt     Timestamp       `json:"created_at"`
}

// Alert levels, most severe first.
const (
	AlertCritical = "critical"
	AlertHigh     = "high"
	AlertMedium   = "medium"
	AlertLow      = "low"
)

// Alert is one triggered monitoring alert.
type Alert struct {
	ID                  int             `json:"id"`
	Level               string          `json:"level"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	SkillName           string          `json:"skill_name"`
	TriggerData         json.RawMessage `json:"trigger_data"`
	HistoricalReference string          `json:"historical_reference"`
	Suggestion          string          `json:"suggestion"`
	IsActive            bool            `json:"is_active"`
	CreatedAt           Timestamp       `json:"created_at"`
	ResolvedAt          Timestamp       `json:"resolved_at"`
}

// Skill is one configurable scoring/monitoring rule.
type Skill struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	SkillType   string          `json:"skill_type"`
	Config      json.RawMessage `json:"config"`
	IsBuiltin   bool            `json:"is_builtin"`
	IsEnabled   bool            `json:"is_enabled"`
	CreatedAt   Timestamp       `json:"created_at"`
	UpdatedAt   Timestamp       `json:"updated_at"`
}

// SkillCreate is the body for creating a skill.
type SkillCreate struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description,omitempty"`
	SkillType   string          `json:"skill_type"`
	Config      json.RawMessage `json:"config"`
	IsEnabled   bool            `json:"is_enabled"`
}

// SkillUpdate is the body for a partial skill update. Nil fields are
// left unchanged; builtin skills accept only IsEnabled.
type SkillUpdate struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Config      json.RawMessage `json:"config,omitempty"`
	IsEnabled   *bool           `json:"is_enabled,omitempty"`
}

// MaskedValue is what the backend substitutes for stored secrets. A
// masked value must never be written back.
const MaskedValue = "••••••••"

// Setting is one system setting row. Password-typed values arrive masked.
type Setting struct {
	ID          int       `json:"id"`
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Category    string    `json:"category"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
	FieldType   string    `json:"field_type"`
	HasValue    bool      `json:"has_value,omitempty"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

// SettingCategory is one tab of the settings page.
type SettingCategory struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        LoginUser `json:"user"`
}

// LoginUser is the identity block inside the login response.
type LoginUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}
