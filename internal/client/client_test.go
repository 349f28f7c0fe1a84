package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/news-agent/tui/internal/session"
	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(filepath.Join(t.TempDir(), "auth.json"))
}

func TestBearerAttachment(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
	}))
	defer srv.Close()

	store := newTestStore(t)
	c := New(srv.URL, store, zerolog.Nop())

	// No token: no header at all.
	if _, err := c.ListArticles(context.Background(), ArticleQuery{}); err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("unauthenticated request carried Authorization %q", gotAuth)
	}

	// With token: bearer header present.
	if err := store.SetAuth("tok123", session.User{ID: 1, Username: "admin"}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.ListArticles(context.Background(), ArticleQuery{}); err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok123")
	}
}

func TestLoginThenAuthenticatedCall(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["username"] != "admin" || body["password"] != "admin123" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "bad credentials"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok123",
				"token_type":   "bearer",
				"user":         map[string]any{"id": 1, "username": "admin"},
			})
		case "/api/articles/":
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store := newTestStore(t)
	c := New(srv.URL, store, zerolog.Nop())

	resp, err := c.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken != "tok123" {
		t.Errorf("AccessToken = %q, want tok123", resp.AccessToken)
	}
	if store.Token() != "tok123" {
		t.Errorf("store token = %q, want tok123", store.Token())
	}

	if _, err := c.ListArticles(context.Background(), ArticleQuery{}); err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want Bearer tok123", gotAuth)
	}
}

func TestUnauthorizedTearsDownSessionOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "token expired"})
	}))
	defer srv.Close()

	store := newTestStore(t)
	if err := store.SetAuth("stale", session.User{ID: 1, Username: "admin"}); err != nil {
		t.Fatal(err)
	}

	c := New(srv.URL, store, zerolog.Nop())
	navigations := 0
	c.OnUnauthorized(func() { navigations++ })

	_, err := c.ActiveAlerts(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401 APIError", err)
	}
	if apiErr.Detail != "token expired" {
		t.Errorf("Detail = %q, want %q", apiErr.Detail, "token expired")
	}
	if store.IsAuthenticated() || store.User() != nil {
		t.Error("session should be cleared after 401")
	}
	if navigations != 1 {
		t.Fatalf("navigations = %d, want 1", navigations)
	}

	// A second 401 with the session already empty must not navigate again.
	if _, err := c.ActiveAlerts(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if navigations != 1 {
		t.Errorf("navigations = %d after second 401, want 1", navigations)
	}
}

func TestRedirectNotFollowed(t *testing.T) {
	var followed bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/elsewhere" {
			followed = true
			return
		}
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))
	defer srv.Close()

	c := New(srv.URL, newTestStore(t), zerolog.Nop())
	_, err := c.Overview(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusFound {
		t.Fatalf("err = %v, want 302 APIError", err)
	}
	if followed {
		t.Error("client followed a redirect")
	}
}

func TestErrorDetailFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := New(srv.URL, newTestStore(t), zerolog.Nop())
	_, err := c.Stats(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.Detail != "upstream exploded" {
		t.Errorf("Detail = %q, want raw body fallback", apiErr.Detail)
	}
}

func TestArticleQueryShaping(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
	}))
	defer srv.Close()

	c := New(srv.URL, newTestStore(t), zerolog.Nop())
	q := ArticleQuery{
		Search:        "rate cut",
		Category:      "macro",
		ImportanceMin: 3,
		Hours:         72,
		Page:          2,
		PageSize:      30,
	}
	if _, err := c.ListArticles(context.Background(), q); err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	for _, want := range []string{
		"search=rate+cut", "category=macro", "importance_min=3",
		"hours=72", "page=2", "page_size=30",
	} {
		if !containsParam(got, want) {
			t.Errorf("query %q missing %q", got, want)
		}
	}

	// Zero values are omitted entirely.
	if _, err := c.ListArticles(context.Background(), ArticleQuery{}); err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if got != "" {
		t.Errorf("empty query produced %q", got)
	}
}

func containsParam(query, param string) bool {
	for _, p := range splitQuery(query) {
		if p == param {
			return true
		}
	}
	return false
}

func splitQuery(q string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(q); i++ {
		if i == len(q) || q[i] == '&' {
			parts = append(parts, q[start:i])
			start = i + 1
		}
	}
	return parts
}

func TestTimestampDecoding(t *testing.T) {
	tests := []struct {
		name string
		in   string
		zero bool
	}{
		{"naive isoformat", `"2025-03-01T07:30:00.123456"`, false},
		{"rfc3339", `"2025-03-01T07:30:00Z"`, false},
		{"date only", `"2025-03-01"`, false},
		{"null", `null`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.in), &ts); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.in, err)
			}
			if ts.IsZero() != tt.zero {
				t.Errorf("IsZero() = %v, want %v", ts.IsZero(), tt.zero)
			}
		})
	}
}
