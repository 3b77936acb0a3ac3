package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/pulseforge/pulseforge/internal/analytics"
	"github.com/pulseforge/pulseforge/internal/calendar"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPie(t *testing.T) {
	got := stripANSI(RenderPie(analytics.Pie(30, 120), 20))
	assert.Equal(t, "█████░░░░░░░░░░░░░░░ 25%\n● Active 30  ○ Quiet 90", got)
}

func TestRenderPie_NoUsers(t *testing.T) {
	got := stripANSI(RenderPie(analytics.Pie(0, 0), 4))
	assert.True(t, strings.HasPrefix(got, "░░░░ 0%"))
}

func TestRenderLine(t *testing.T) {
	g := analytics.Line([]domain.SystemOrganization{
		{TenantName: "Acme Corp", ActiveUsers7d: 4},
		{TenantSlug: "beta", ActiveUsers7d: 0},
	})
	got := stripANSI(RenderLine(g, 5))
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "4 │"))
	assert.Contains(t, lines[0], "●")
	assert.True(t, strings.HasPrefix(lines[4], "0 │"))
	assert.Contains(t, lines[4], "●")
	assert.Contains(t, lines[6], "Acme Corp")
	assert.Contains(t, lines[6], "beta")
}

func TestRenderLine_Empty(t *testing.T) {
	assert.Equal(t, "No organizations yet.", stripANSI(RenderLine(analytics.Line(nil), 5)))
}

func TestRenderMonth(t *testing.T) {
	day := func(d int) *time.Time {
		t := time.Date(2026, 2, d, 0, 0, 0, 0, time.UTC)
		return &t
	}
	projects := []domain.Project{
		{ID: 1, Name: "Launch", StartDate: day(3)},
		{ID: 2, Name: "Audit", DueDate: day(12)},
		{ID: 3, Name: "Billing", DueDate: day(12)},
		{ID: 4, Name: "Search", DueDate: day(12)},
	}
	tasks := []domain.TaskItem{{ID: 9, ProjectID: 2, Title: "Review", Status: domain.TaskTodo}}
	month := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	m := &service.CalendarMonth{
		Month: month,
		Today: time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
		Cells: calendar.MonthGrid(month),
		Index: calendar.NewIndex(projects, tasks, nil),
	}

	got := stripANSI(RenderMonth(m, time.Time{}))

	assert.Contains(t, got, "February 2026")
	assert.Contains(t, got, "Mon")
	assert.Contains(t, got, "▸ Launch")
	assert.Contains(t, got, "■ Audit")
	assert.Contains(t, got, "■ Billing")
	assert.NotContains(t, got, "Search")
	assert.Contains(t, got, "+1 more")
	assert.Contains(t, got, "1 task(s) due")
	assert.Contains(t, got, "28")
}

func TestRenderDayEvents(t *testing.T) {
	day := time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC)

	empty := stripANSI(RenderDayEvents(day, calendar.DayEvents{}))
	assert.Contains(t, empty, "THURSDAY, FEB 12")
	assert.Contains(t, empty, "Nothing scheduled.")

	got := stripANSI(RenderDayEvents(day, calendar.DayEvents{
		Dues:     []domain.Project{{Name: "Audit"}, {Name: "Billing"}, {Name: "Search"}},
		Updates:  []domain.SystemUpdate{{Title: "Dark mode", FeatureBrief: "Theme switcher"}},
		DueTasks: []domain.TaskItem{{Title: "Review", Status: domain.TaskTodo, Priority: domain.PriorityHigh}},
	}))
	assert.Contains(t, got, "■ Search deadline")
	assert.Contains(t, got, "◆ Dark mode")
	assert.Contains(t, got, "Theme switcher")
	assert.Contains(t, got, "Open tasks due")
	assert.Contains(t, got, "Review")
}
