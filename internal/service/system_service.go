package service

import (
	"context"

	"github.com/pulseforge/pulseforge/internal/api"
	"github.com/pulseforge/pulseforge/internal/domain"
)

// systemService fronts the cross-tenant endpoints. Role checks stay on the
// backend; an org admin simply gets its 403 back.
type systemService struct {
	client   api.Client
	observer UseCaseObserver
}

func NewSystemService(client api.Client, observers ...UseCaseObserver) SystemService {
	return &systemService{client: client, observer: useCaseObserverOrNoop(observers)}
}

func (s *systemService) Organizations(ctx context.Context) (orgs []domain.SystemOrganization, err error) {
	t := track(s.observer, "system.organizations")
	defer func() { t.finish(ctx, err) }()
	return s.client.ListOrganizations(ctx)
}

func (s *systemService) Analytics(ctx context.Context) (stats *domain.SystemAnalytics, err error) {
	t := track(s.observer, "system.analytics")
	defer func() { t.finish(ctx, err) }()
	return s.client.SystemAnalytics(ctx)
}

func (s *systemService) Logs(ctx context.Context, limit int) (logs []domain.SystemLog, err error) {
	t := track(s.observer, "system.logs")
	defer func() { t.finish(ctx, err) }()

	limit = api.ClampLogLimit(limit)
	t.set("limit", limit)
	return s.client.ListLogs(ctx, limit)
}

func (s *systemService) Tenants(ctx context.Context) (tenants []domain.SystemTenant, err error) {
	t := track(s.observer, "system.tenants")
	defer func() { t.finish(ctx, err) }()
	return s.client.ListTenants(ctx)
}

func (s *systemService) CreateTenant(ctx context.Context, in domain.TenantInput) (tenant *domain.SystemTenant, err error) {
	t := track(s.observer, "system.create_tenant")
	defer func() { t.finish(ctx, err) }()

	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, invalidErr("tenant", err)
	}
	t.set("slug", in.Slug)
	return s.client.CreateTenant(ctx, in)
}

func (s *systemService) UpdateTenant(ctx context.Context, id int64, in domain.TenantInput) (tenant *domain.SystemTenant, err error) {
	t := track(s.observer, "system.update_tenant")
	defer func() { t.finish(ctx, err) }()

	if id <= 0 {
		return nil, invalid("id", "Select a tenant to update.")
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, invalidErr("tenant", err)
	}
	t.set("id", id)
	return s.client.UpdateTenant(ctx, id, in)
}

func (s *systemService) Updates(ctx context.Context) (updates []domain.SystemUpdate, err error) {
	t := track(s.observer, "system.updates")
	defer func() { t.finish(ctx, err) }()
	return s.client.ListSystemUpdates(ctx)
}
