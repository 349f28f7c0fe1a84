package client

import (
	"context"
	"net/url"
	"strconv"
)

// Overview fetches the dashboard summary card values.
func (c *Client) Overview(ctx context.Context) (*Overview, error) {
	var out Overview
	if err := c.get(ctx, "/dashboard/overview", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SentimentHistory fetches sentiment snapshots over the last N days.
func (c *Client) SentimentHistory(ctx context.Context, days int) ([]SentimentSnapshot, error) {
	q := url.Values{"days": {strconv.Itoa(days)}}
	var out []SentimentSnapshot
	if err := c.get(ctx, "/dashboard/sentiment/history", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats fetches aggregate article statistics.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := c.get(ctx, "/dashboard/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
