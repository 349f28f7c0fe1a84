package client

import (
	"context"
	"net/url"
	"strconv"
)

// ListReports fetches daily reports, optionally filtered by type
// ("morning" or "evening"). An empty type returns all.
func (c *Client) ListReports(ctx context.Context, reportType string) ([]Report, error) {
	q := url.Values{}
	if reportType != "" {
		q.Set("report_type", reportType)
	}
	var out []Report
	if err := c.get(ctx, "/reports/", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LatestReport fetches the most recent report. Returns nil when none
// has been generated yet; the backend sends a JSON null in that case.
func (c *Client) LatestReport(ctx context.Context, reportType string) (*Report, error) {
	q := url.Values{}
	if reportType != "" {
		q.Set("report_type", reportType)
	}
	var out *Report
	if err := c.get(ctx, "/reports/latest", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetReport fetches a single report by ID.
func (c *Client) GetReport(ctx context.Context, id int) (*Report, error) {
	var out Report
	if err := c.get(ctx, "/reports/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
