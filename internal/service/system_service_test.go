package service

import (
	"context"
	"testing"

	"github.com/pulseforge/pulseforge/internal/api"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemService_Tenants(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleSystemAdmin)
	svc := NewSystemService(h.client)
	ctx := context.Background()

	created, err := svc.CreateTenant(ctx, domain.TenantInput{Slug: "  Globex ", Name: " Globex Inc "})
	require.NoError(t, err)
	assert.Equal(t, "globex", created.Slug)
	assert.Equal(t, "Globex Inc", created.Name)

	updated, err := svc.UpdateTenant(ctx, created.ID, domain.TenantInput{Slug: "globex", Name: "Globex Corporation", LogoURL: "https://cdn.test/g.png"})
	require.NoError(t, err)
	assert.Equal(t, "Globex Corporation", updated.Name)

	tenants, err := svc.Tenants(ctx)
	require.NoError(t, err)
	require.Len(t, tenants, 2)
	assert.Equal(t, "https://cdn.test/g.png", tenants[1].LogoURL)

	_, err = svc.UpdateTenant(ctx, 999, domain.TenantInput{Slug: "x", Name: "X"})
	assert.EqualError(t, err, "tenant not found")
}

func TestSystemService_TenantValidation(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleSystemAdmin)
	svc := NewSystemService(h.client)

	_, err := svc.CreateTenant(context.Background(), domain.TenantInput{Slug: " ", Name: "Nameless"})
	require.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "tenant slug and name are required")

	_, err = svc.UpdateTenant(context.Background(), 0, domain.TenantInput{Slug: "a", Name: "A"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, h.srv.RequestIDs())
}

func TestSystemService_LogsClampLimit(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleSystemAdmin)
	for range 3 {
		h.srv.SeedLog(domain.SystemLog{Method: "GET", Path: "/api/v1/projects", StatusCode: 200})
	}
	obs := &recordingObserver{}
	svc := NewSystemService(h.client, obs)

	logs, err := svc.Logs(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	_, err = svc.Logs(context.Background(), 10_000)
	require.NoError(t, err)
	assert.Equal(t, api.MaxLogLimit, obs.last().Fields["limit"])

	_, err = svc.Logs(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, api.DefaultLogLimit, obs.last().Fields["limit"])
}

func TestSystemService_OrgAdminGetsBackendRefusal(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleOrgAdmin)
	svc := NewSystemService(h.client)

	_, err := svc.Organizations(context.Background())
	assert.True(t, api.IsForbidden(err))
	_, err = svc.Updates(context.Background())
	assert.True(t, api.IsForbidden(err))
}
