package api

import (
	"context"
	"net/http"

	"github.com/pulseforge/pulseforge/internal/domain"
)

type RegisterRequest struct {
	TenantSlug     string `json:"tenant_slug"`
	TenantName     string `json:"tenant_name"`
	TenantLogoData string `json:"tenant_logo_data,omitempty"`
	TenantLogoURL  string `json:"tenant_logo_url,omitempty"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
}

type LoginRequest struct {
	TenantSlug string `json:"tenant_slug,omitempty"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type ForgotPasswordRequest struct {
	TenantSlug string `json:"tenant_slug,omitempty"`
	Email      string `json:"email"`
}

// WireUser is the user object of an auth response.
type WireUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	TenantSlug string `json:"tenant_slug"`
	TenantName string `json:"tenant_name"`
	TenantLogo string `json:"tenant_logo"`
	Role       string `json:"role"`
}

func (u WireUser) AuthUser() domain.AuthUser {
	return domain.AuthUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		TenantSlug: u.TenantSlug,
		TenantName: u.TenantName,
		TenantLogo: u.TenantLogo,
		Role:       domain.NormalizeRole(u.Role),
	}
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  WireUser `json:"user"`
}

func (c *httpClient) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.call(ctx, http.MethodPost, "/auth/register", false, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.call(ctx, http.MethodPost, "/auth/login", false, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (string, error) {
	var resp statusEnvelope
	if err := c.call(ctx, http.MethodPost, "/auth/forgot-password", false, req, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}
