package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pulseforge/pulseforge/internal/domain"
)

const (
	DefaultLogLimit = 100
	MaxLogLimit     = 500
)

// ClampLogLimit maps non-positive limits to the default and caps the rest.
func ClampLogLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLogLimit
	case limit > MaxLogLimit:
		return MaxLogLimit
	default:
		return limit
	}
}

func (c *httpClient) ListOrganizations(ctx context.Context) ([]domain.SystemOrganization, error) {
	return listItems[domain.SystemOrganization](ctx, c, "/system/organizations")
}

func (c *httpClient) SystemAnalytics(ctx context.Context) (*domain.SystemAnalytics, error) {
	var a domain.SystemAnalytics
	if err := c.call(ctx, http.MethodGet, "/system/analytics", true, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *httpClient) ListLogs(ctx context.Context, limit int) ([]domain.SystemLog, error) {
	q := url.Values{"limit": {strconv.Itoa(ClampLogLimit(limit))}}
	return listItems[domain.SystemLog](ctx, c, "/system/logs?"+q.Encode())
}

func (c *httpClient) ListTenants(ctx context.Context) ([]domain.SystemTenant, error) {
	return listItems[domain.SystemTenant](ctx, c, "/system/tenants")
}

func (c *httpClient) CreateTenant(ctx context.Context, in domain.TenantInput) (*domain.SystemTenant, error) {
	var t domain.SystemTenant
	if err := c.call(ctx, http.MethodPost, "/system/tenants", true, in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *httpClient) UpdateTenant(ctx context.Context, id int64, in domain.TenantInput) (*domain.SystemTenant, error) {
	var t domain.SystemTenant
	if err := c.call(ctx, http.MethodPut, fmt.Sprintf("/system/tenants/%d", id), true, in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *httpClient) ListSystemUpdates(ctx context.Context) ([]domain.SystemUpdate, error) {
	return listItems[domain.SystemUpdate](ctx, c, "/system/updates")
}

func (c *httpClient) CreateSystemUpdate(ctx context.Context, in domain.SystemUpdateInput) (*domain.SystemUpdateResult, error) {
	var r domain.SystemUpdateResult
	if err := c.call(ctx, http.MethodPost, "/system/updates", true, in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *httpClient) UpdateSystemUpdate(ctx context.Context, id int64, in domain.SystemUpdateInput) (*domain.SystemUpdateResult, error) {
	var r domain.SystemUpdateResult
	if err := c.call(ctx, http.MethodPut, fmt.Sprintf("/system/updates/%d", id), true, in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
