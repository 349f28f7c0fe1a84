package client

import (
	"context"
	"net/url"
)

// ListSettings fetches settings grouped by category. Pass "" for all
// categories. Secret values arrive masked; see MaskedValue.
func (c *Client) ListSettings(ctx context.Context, category string) (map[string][]Setting, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	var out map[string][]Setting
	if err := c.get(ctx, "/settings/", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateSetting writes a single setting value.
func (c *Client) UpdateSetting(ctx context.Context, key, value string) (*Setting, error) {
	body := map[string]string{"value": value}
	var out Setting
	if err := c.put(ctx, "/settings/"+url.PathEscape(key), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BatchUpdateSettings writes several settings in one call and returns
// the keys the backend accepted. Masked values are skipped server-side,
// but callers should filter them out anyway (see MaskedValue).
func (c *Client) BatchUpdateSettings(ctx context.Context, settings map[string]string) ([]string, error) {
	body := map[string]any{"settings": settings}
	var out struct {
		Updated []string `json:"updated"`
	}
	if err := c.put(ctx, "/settings/", body, &out); err != nil {
		return nil, err
	}
	return out.Updated, nil
}

// SettingCategories fetches the ordered category tabs.
func (c *Client) SettingCategories(ctx context.Context) ([]SettingCategory, error) {
	var out struct {
		Categories []SettingCategory `json:"categories"`
	}
	if err := c.get(ctx, "/settings/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}
