package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarService_MonthForOrgAdmin(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleOrgAdmin)
	start := testutil.Day(2026, 2, 3)
	due := testutil.Day(2026, 2, 16)
	p := h.srv.SeedProject(testutil.NewTestProject("Apollo", testutil.WithStartDate(start), testutil.WithDueDate(due)))
	h.srv.SeedTask(testutil.NewTestTask("Wire it", testutil.WithProject(p)))
	h.srv.SeedUpdate(domain.SystemUpdate{ScheduledDate: "2026-02-20", Title: "Hidden"})

	m, err := NewCalendarService(h.client).Month(context.Background(), time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC), domain.RoleOrgAdmin)
	require.NoError(t, err)
	assert.Equal(t, testutil.Day(2026, 2, 1), m.Month)
	assert.Len(t, m.Cells, 35)
	assert.Empty(t, m.Updates, "org admins do not load system updates")

	events := m.On(start)
	require.Len(t, events.Starts, 1)
	assert.Equal(t, "Apollo", events.Starts[0].Name)

	events = m.On(due)
	require.Len(t, events.Dues, 1)
	require.Len(t, events.DueTasks, 1)
	assert.Equal(t, "Wire it", events.DueTasks[0].Title)
}

func TestCalendarService_MonthForSystemAdmin(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleSystemAdmin)
	h.srv.SeedUpdate(domain.SystemUpdate{ScheduledDate: "2026-02-20", Title: "Billing v2"})

	m, err := NewCalendarService(h.client).Month(context.Background(), testutil.Day(2026, 2, 1), domain.RoleSystemAdmin)
	require.NoError(t, err)
	require.Len(t, m.Updates, 1)
	assert.Equal(t, "Billing v2", m.On(testutil.Day(2026, 2, 20)).Updates[0].Title)
}

func TestCalendarService_MonthKeepsEventsWhenUpdatesFail(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleSystemAdmin)
	h.srv.SeedProject(testutil.NewTestProject("Apollo", testutil.WithStartDate(testutil.Day(2026, 2, 3))))
	h.srv.Fail(http.MethodGet, "/api/v1/system/updates", http.StatusInternalServerError, "updates offline")

	m, err := NewCalendarService(h.client).Month(context.Background(), testutil.Day(2026, 2, 1), domain.RoleSystemAdmin)
	require.Error(t, err)
	assert.Equal(t, "updates offline", err.Error())
	require.NotNil(t, m)
	assert.Len(t, m.Cells, 35)
	assert.Empty(t, m.Updates)
	require.Len(t, m.On(testutil.Day(2026, 2, 3)).Starts, 1)
}

func TestCalendarService_MonthDropsEverythingWhenProjectsFail(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleSystemAdmin)
	h.srv.Fail(http.MethodGet, "/api/v1/projects", http.StatusBadGateway, "")

	m, err := NewCalendarService(h.client).Month(context.Background(), testutil.Day(2026, 2, 1), domain.RoleSystemAdmin)
	require.Error(t, err)
	assert.Nil(t, m)
}

func TestCalendarService_ScheduleUpdate(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleSystemAdmin)
	h.srv.AddUser("acme", "Acme Corp", "Ada", "ada@acme.test", "secret1", domain.RoleOrgAdmin)
	svc := NewCalendarService(h.client)
	ctx := context.Background()
	future := time.Now().AddDate(0, 0, 3).Format(domain.DateLayout)

	res, err := svc.ScheduleUpdate(ctx, domain.SystemUpdateInput{
		ScheduledDate: future, Title: " Billing v2 ", FeatureBrief: "New invoices", Expectations: "No downtime",
	})
	require.NoError(t, err)
	assert.Equal(t, "Billing v2", res.Item.Title)
	assert.Equal(t, 1, res.Recipients)
	assert.Equal(t, "root@pulseforge.test", res.Item.CreatedBy)

	edited, err := svc.EditUpdate(ctx, res.Item.ID, domain.SystemUpdateInput{
		ScheduledDate: future, Title: "Billing v2.1", FeatureBrief: "New invoices", Expectations: "Short downtime",
	})
	require.NoError(t, err)
	assert.Equal(t, "Billing v2.1", edited.Item.Title)
	assert.Len(t, h.srv.Mail(), 2)
}

func TestCalendarService_ScheduleUpdateValidation(t *testing.T) {
	today := time.Now().Format(domain.DateLayout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(domain.DateLayout)
	tests := []struct {
		name string
		in   domain.SystemUpdateInput
		want string
	}{
		{"today", domain.SystemUpdateInput{ScheduledDate: today, Title: "T", FeatureBrief: "F", Expectations: "E"}, "Select a date after today."},
		{"garbage", domain.SystemUpdateInput{ScheduledDate: "soon", Title: "T", FeatureBrief: "F", Expectations: "E"}, "Select a date after today."},
		{"missing brief", domain.SystemUpdateInput{ScheduledDate: tomorrow, Title: "T", Expectations: "E"}, "Title, feature brief and expectations are required."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.signIn(t, domain.RoleSystemAdmin)
			_, err := NewCalendarService(h.client).ScheduleUpdate(context.Background(), tt.in)
			require.ErrorIs(t, err, ErrValidation)
			assert.EqualError(t, err, tt.want)
			assert.Empty(t, h.srv.RequestIDs())
		})
	}
}

func TestCalendarService_EditMissingUpdate(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleSystemAdmin)
	svc := NewCalendarService(h.client)
	in := domain.SystemUpdateInput{
		ScheduledDate: time.Now().AddDate(0, 0, 2).Format(domain.DateLayout), Title: "T", FeatureBrief: "F", Expectations: "E",
	}

	_, err := svc.EditUpdate(context.Background(), 0, in)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.EditUpdate(context.Background(), 4242, in)
	assert.EqualError(t, err, "system update not found")
}
