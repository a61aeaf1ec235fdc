package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hhsksonu/kpcli/internal/client/models"
)

// AuditFilter narrows audit log listings. Zero values mean "no filter".
type AuditFilter struct {
	Action       string
	User         string
	ResourceType string
	Page         int
}

func (f AuditFilter) values() url.Values {
	v := url.Values{}
	if f.Action != "" {
		v.Set("action", f.Action)
	}
	if f.User != "" {
		v.Set("user", f.User)
	}
	if f.ResourceType != "" {
		v.Set("resource_type", f.ResourceType)
	}
	if f.Page > 1 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	return v
}

// AuditLogs lists audit records. Admin only.
func (c *Client) AuditLogs(ctx context.Context, filter AuditFilter) (*models.Page[models.AuditLog], error) {
	cl := call{method: http.MethodGet, path: "/audit/logs/", query: filter.values()}
	var result models.Page[models.AuditLog]
	if err := c.do(ctx, cl, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
