package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/pulseforge/pulseforge/internal/api"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/notify"
	"github.com/pulseforge/pulseforge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Org(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleOrgAdmin)
	now := time.Now().UTC()

	dueSoon := h.srv.SeedProject(testutil.NewTestProject("Launch", testutil.WithDueDate(now.Add(36*time.Hour))))
	for i := range 6 {
		status := domain.ProjectDone
		if i%2 == 0 {
			status = domain.ProjectBlocked
		}
		h.srv.SeedProject(testutil.NewTestProject(fmt.Sprintf("P%d", i), testutil.WithProjectStatus(status)))
	}
	h.srv.SeedTask(testutil.NewTestTask("Ship it", testutil.WithProject(dueSoon)))
	h.srv.SeedTask(testutil.NewTestTask("Done already", testutil.WithProject(dueSoon), testutil.WithTaskStatus(domain.TaskDone)))

	d, err := NewDashboardService(h.client).Org(context.Background())
	require.NoError(t, err)
	assert.Len(t, d.Projects, 7)
	assert.Len(t, d.Recent, RecentProjectCount)
	assert.Equal(t, "P5", d.Recent[0].Name)
	assert.Equal(t, int64(7), d.ProjectStats.Total)
	assert.Equal(t, int64(3), d.ProjectStats.Done)
	assert.Equal(t, int64(3), d.ProjectStats.Blocked)
	assert.Equal(t, 43, d.ProjectStats.Completion)
	assert.Equal(t, int64(2), d.TaskStats.Total)

	require.Len(t, d.Notifications, 2)
	assert.Equal(t, "Project due: Launch", d.Notifications[0].Title)
	assert.Equal(t, "Due in 2 day(s)", d.Notifications[0].Detail)
	assert.Equal(t, "Task due soon: Ship it", d.Notifications[1].Title)
}

func TestDashboardService_System(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleSystemAdmin)
	h.srv.AddUser("acme", "Acme Corp", "Ada", "ada@acme.test", "secret1", domain.RoleOrgAdmin)
	_, err := h.client.Login(context.Background(), api.LoginRequest{Email: "ada@acme.test", Password: "secret1"})
	require.NoError(t, err)

	obs := &recordingObserver{}
	d, err := NewDashboardService(h.client, obs).System(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.Analytics.TenantCount)
	assert.Equal(t, int64(2), d.Analytics.UserCount)
	assert.Equal(t, int64(1), d.Analytics.ActiveUsers7d)
	assert.InDelta(t, 0.5, d.Pie.Ratio, 1e-9)
	assert.Equal(t, int64(1), d.Pie.Quiet)

	require.Len(t, d.Organizations, 2)
	require.Len(t, d.Line.Points, 2)
	assert.Equal(t, "Acme Corp", d.Line.Points[1].Label)
	assert.Equal(t, 2, obs.last().Fields["organizations"])
}

func TestDashboardService_SystemFirstErrorWins(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleSystemAdmin)
	h.srv.Fail(http.MethodGet, "/api/v1/system/organizations", http.StatusInternalServerError, "organizations offline")

	_, err := NewDashboardService(h.client).System(context.Background())
	assert.EqualError(t, err, "organizations offline")
}

func TestDashboardService_SystemForbiddenForOrgAdmin(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleOrgAdmin)

	_, err := NewDashboardService(h.client).System(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsForbidden(err))
	assert.EqualError(t, err, "system admin access required")
}

func TestDashboardService_Analytics(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleOrgAdmin)
	h.srv.SeedProject(testutil.NewTestProject("A", testutil.WithProjectStatus(domain.ProjectDone)))
	h.srv.SeedProject(testutil.NewTestProject("B"))
	h.srv.SeedProject(testutil.NewTestProject("C"))

	summary, err := NewDashboardService(h.client).Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 33, summary.Completion)
	assert.Equal(t, 67, summary.ActiveRate)
	assert.Equal(t, 0, summary.BlockerRate)
}

func TestDashboardService_NotificationsFallBack(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleOrgAdmin)
	h.srv.Fail(http.MethodGet, "/api/v1/tasks", http.StatusBadGateway, "")

	items := NewDashboardService(h.client).Notifications(context.Background(), domain.RoleOrgAdmin)
	assert.Equal(t, notify.Unavailable(), items)
}

func TestDashboardService_NotificationsForSystemAdmin(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleSystemAdmin)
	h.srv.SeedLog(domain.SystemLog{Method: http.MethodPost, Path: "/api/v1/support/request", StatusCode: 200})
	h.srv.SeedLog(domain.SystemLog{Method: http.MethodGet, Path: "/api/v1/projects", StatusCode: 200})

	items := NewDashboardService(h.client).Notifications(context.Background(), domain.RoleSystemAdmin)
	require.NotEmpty(t, items)

	var support, system int
	for _, it := range items {
		switch it.Kind {
		case notify.KindSupport:
			support++
			assert.Equal(t, "POST /api/v1/support/request (200)", it.Detail)
		case notify.KindSystem:
			system++
		}
	}
	assert.Equal(t, 1, support)
	assert.Zero(t, system, "the project/task reads are logged under /api/v1/projects and /api/v1/tasks")
}
