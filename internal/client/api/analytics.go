package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hhsksonu/kpcli/internal/client/models"
)

// SystemStats fetches the admin dashboard counters.
func (c *Client) SystemStats(ctx context.Context) (*models.SystemStats, error) {
	cl := call{method: http.MethodGet, path: "/analytics/stats/"}
	var stats models.SystemStats
	if err := c.do(ctx, cl, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// QueryAnalytics lists query records across all users. Admin only.
func (c *Client) QueryAnalytics(ctx context.Context, page int) (*models.Page[models.Query], error) {
	cl := call{method: http.MethodGet, path: "/analytics/queries/"}
	if page > 1 {
		cl.query = url.Values{"page": []string{strconv.Itoa(page)}}
	}
	var result models.Page[models.Query]
	if err := c.do(ctx, cl, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MyAnalytics fetches the caller's own usage summary.
func (c *Client) MyAnalytics(ctx context.Context) (*models.UserAnalytics, error) {
	cl := call{method: http.MethodGet, path: "/analytics/me/"}
	var ua models.UserAnalytics
	if err := c.do(ctx, cl, &ua); err != nil {
		return nil, err
	}
	return &ua, nil
}
