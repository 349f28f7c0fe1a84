package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/news-agent/tui/internal/session"
	"github.com/rs/zerolog"
)

// requestTimeout bounds every resource call. Redirects are never followed:
// a redirect response is the final response.
const requestTimeout = 30 * time.Second

// APIError is a non-2xx response from the backend. The backend reports
// failures as {"detail": "..."}.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
}

// Client makes REST calls to the news-agent backend. Every outbound
// request passes through it exactly once: it attaches the bearer token
// read from the session store at call time and handles 401 globally.
// Resource methods never touch credentials themselves.
type Client struct {
	baseURL string
	session *session.Store
	http    *http.Client
	log     zerolog.Logger

	// onUnauthorized runs once per forced logout, after the session is
	// cleared. The app uses it to switch to the login view.
	onUnauthorized func()
}

// New creates a client targeting the given base URL (e.g.
// "http://127.0.0.1:8000"). The session store is injected so the token
// read stays late-bound.
func New(baseURL string, store *session.Store, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: store,
		log:     log,
		http: &http.Client{
			Timeout: requestTimeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// OnUnauthorized registers the navigation callback for forced logouts.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + "/api" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
		return &APIError{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	if resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// handleUnauthorized tears the session down and fires the navigation
// callback. The store reports whether a credential was actually cleared,
// so concurrent 401s navigate only once.
func (c *Client) handleUnauthorized() {
	cleared, err := c.session.Logout()
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to persist logout")
	}
	if cleared {
		c.log.Info().Msg("session invalidated by 401")
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}
}

// readDetail extracts the backend's error message from a failed response.
// Non-JSON bodies are passed through truncated.
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var e struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(data, &e) == nil && e.Detail != "" {
		return e.Detail
	}
	return strings.TrimSpace(string(data))
}
