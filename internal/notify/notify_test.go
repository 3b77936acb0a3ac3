package notify

import (
	"fmt"
	"testing"
	"time"

	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestDiffDays(t *testing.T) {
	assert.Equal(t, 1, DiffDays(now.Add(time.Hour), now))
	assert.Equal(t, 0, DiffDays(now, now))
	assert.Equal(t, 0, DiffDays(now.Add(-time.Hour), now))
	assert.Equal(t, -1, DiffDays(now.Add(-25*time.Hour), now))
	assert.Equal(t, 3, DiffDays(now.Add(60*time.Hour), now))
}

func TestBuild_ProjectDue(t *testing.T) {
	soon := testutil.NewTestProject("Soon", testutil.WithDueDate(now.Add(48*time.Hour)))
	late := testutil.NewTestProject("Late", testutil.WithDueDate(now.Add(-72*time.Hour)))
	far := testutil.NewTestProject("Far", testutil.WithDueDate(now.AddDate(0, 0, 10)))
	undated := testutil.NewTestProject("Undated")

	items := Build(now, domain.RoleOrgAdmin, []domain.Project{soon, late, far, undated}, nil, nil)

	require.Len(t, items, 2)
	assert.Equal(t, "Project due: Soon", items[0].Title)
	assert.Equal(t, "Due in 2 day(s)", items[0].Detail)
	assert.Equal(t, KindDue, items[0].Kind)
	assert.Equal(t, fmt.Sprintf("project-due-%d", soon.ID), items[0].ID)
	assert.Equal(t, "Deadline passed", items[1].Detail)
}

func TestBuild_TaskDue(t *testing.T) {
	due := testutil.Day(2026, time.March, 12)
	apollo := testutil.NewTestProject("Apollo", testutil.WithDueDate(due))
	later := testutil.NewTestProject("Later", testutil.WithDueDate(now.AddDate(0, 0, 3)))
	open := testutil.NewTestTask("Fuel", testutil.WithProject(apollo))
	done := testutil.NewTestTask("Paint", testutil.WithProject(apollo), testutil.WithTaskStatus(domain.TaskDone))
	notSoon := testutil.NewTestTask("Plan", testutil.WithProject(later))

	items := Build(now, domain.RoleOrgAdmin, []domain.Project{apollo, later}, []domain.TaskItem{open, done, notSoon}, nil)

	var taskItems []Item
	for _, it := range items {
		if it.ID[:4] == "task" {
			taskItems = append(taskItems, it)
		}
	}
	require.Len(t, taskItems, 1)
	assert.Equal(t, "Task due soon: Fuel", taskItems[0].Title)
	assert.Equal(t, "Apollo due Mar 12, 2026", taskItems[0].Detail)
}

func TestBuild_SystemLogsOnlyForSystemAdmin(t *testing.T) {
	logs := []domain.SystemLog{
		{ID: 1, Method: "POST", Path: "/api/v1/support/request", StatusCode: 200, CreatedAt: now},
		{ID: 2, Method: "GET", Path: "/api/v1/projects", StatusCode: 200},
		{ID: 3, Method: "PUT", Path: "/api/v1/system/tenants/4", StatusCode: 404},
	}

	assert.Empty(t, Build(now, domain.RoleOrgAdmin, nil, nil, logs))

	items := Build(now, domain.RoleSystemAdmin, nil, nil, logs)
	require.Len(t, items, 2)
	assert.Equal(t, Item{ID: "sys-1", Kind: KindSupport, Title: "Support activity", Detail: "POST /api/v1/support/request (200)", CreatedAt: &now}, items[0])
	assert.Equal(t, KindSystem, items[1].Kind)
	assert.Equal(t, "System update", items[1].Title)
	assert.Equal(t, "PUT /api/v1/system/tenants/4 (404)", items[1].Detail)
	assert.Nil(t, items[1].CreatedAt)
}

func TestBuild_LogItemsCappedAtEight(t *testing.T) {
	var logs []domain.SystemLog
	for i := range 12 {
		logs = append(logs, domain.SystemLog{ID: int64(i), Method: "GET", Path: "/api/v1/system/logs", StatusCode: 200})
	}
	assert.Len(t, Build(now, domain.RoleSystemAdmin, nil, nil, logs), 8)
}

func TestBuild_CappedAtTwenty(t *testing.T) {
	var projects []domain.Project
	for i := range 25 {
		projects = append(projects, testutil.NewTestProject(fmt.Sprintf("p%d", i), testutil.WithDueDate(now)))
	}
	assert.Len(t, Build(now, domain.RoleOrgAdmin, projects, nil, nil), MaxItems)
}

func TestUnavailable(t *testing.T) {
	items := Unavailable()
	require.Len(t, items, 1)
	assert.Equal(t, "Notifications unavailable", items[0].Title)
	assert.Equal(t, "Could not load latest project/task alerts.", items[0].Detail)
}
