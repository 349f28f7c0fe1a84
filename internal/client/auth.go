package client

import (
	"context"

	"github.com/news-agent/tui/internal/session"
)

// Login exchanges credentials for a bearer token. On success the session
// store is updated and persisted; the caller only needs to react to the
// returned identity.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var out LoginResponse
	if err := c.post(ctx, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	user := session.User{ID: out.User.ID, Username: out.User.Username}
	if err := c.session.SetAuth(out.AccessToken, user); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the identity behind the current token.
func (c *Client) Me(ctx context.Context) (*LoginUser, error) {
	var out LoginUser
	if err := c.get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword updates the current user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"old_password": oldPassword, "new_password": newPassword}
	return c.post(ctx, "/auth/change-password", body, nil)
}
