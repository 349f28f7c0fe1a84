package client

import (
	"context"
	"net/url"
	"strconv"
)

// AlertQuery shapes the alert listing filters.
type AlertQuery struct {
	Level      string
	ActiveOnly bool
	Page       int
	PageSize   int
}

func (q AlertQuery) values() url.Values {
	v := url.Values{}
	if q.Level != "" {
		v.Set("level", q.Level)
	}
	if q.ActiveOnly {
		v.Set("active_only", "true")
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return v
}

// ListAlerts fetches alerts, newest first.
func (c *Client) ListAlerts(ctx context.Context, q AlertQuery) ([]Alert, error) {
	var out []Alert
	if err := c.get(ctx, "/alerts/", q.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ActiveAlerts fetches only unresolved alerts.
func (c *Client) ActiveAlerts(ctx context.Context) ([]Alert, error) {
	var out []Alert
	if err := c.get(ctx, "/alerts/active", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ResolveAlert marks an alert as resolved and returns its final state.
func (c *Client) ResolveAlert(ctx context.Context, id int) (*Alert, error) {
	var out Alert
	if err := c.put(ctx, "/alerts/"+strconv.Itoa(id)+"/resolve", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
