package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pulseforge/pulseforge/internal/analytics"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/notify"
	"github.com/pulseforge/pulseforge/internal/service"
)

const barWidth = 20

// FormatProjects renders the projects table.
func FormatProjects(projects []domain.Project, now time.Time) string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			Truncate(p.Name, 32),
			ProjectStatusPill(p.Status),
			ShortDate(p.StartDate),
			DueStyled(p.DueDate, now),
			strconv.Itoa(p.TeamSize),
			OrDash(Truncate(strings.Join(p.Assignees, ", "), 28)),
		})
	}
	return Table{
		Headers: []string{"ID", "NAME", "STATUS", "START", "DUE", "TEAM", "ASSIGNEES"},
		Rows:    rows,
		Empty:   "No projects yet.",
		Right:   map[int]bool{0: true, 5: true},
	}.Render()
}

// FormatTasks renders the tasks table.
func FormatTasks(tasks []domain.TaskItem) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		subtasks := "--"
		if n := len(t.Subtasks); n > 0 {
			subtasks = strconv.Itoa(n)
		}
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			Truncate(t.Title, 36),
			TaskStatusPill(t.Status),
			PriorityBadge(t.Priority),
			OrDash(Truncate(t.ProjectName, 24)),
			subtasks,
		})
	}
	return Table{
		Headers: []string{"ID", "TITLE", "STATUS", "PRIORITY", "PROJECT", "SUBTASKS"},
		Rows:    rows,
		Empty:   "No tasks yet.",
		Right:   map[int]bool{0: true},
	}.Render()
}

// FormatAnalytics renders the project rates and the status distribution.
func FormatAnalytics(s analytics.ProjectSummary) string {
	var b strings.Builder
	b.WriteString(Header("Analytics") + "\n")
	b.WriteString(KeyValues([][2]string{
		{"Total projects", strconv.FormatInt(s.Total, 10)},
		{"Completion", RenderProgress(s.Completion, barWidth)},
		{"Active rate", RenderProgress(s.ActiveRate, barWidth)},
		{"Blocker rate", RenderProgress(s.BlockerRate, barWidth)},
	}))
	b.WriteString("\n" + Bold("Status distribution") + "\n")
	b.WriteString(RenderDistribution(s.StatusBars(), barWidth))
	return b.String()
}

// FormatOrgDashboard renders counters, recent projects and notifications.
func FormatOrgDashboard(d *service.OrgDashboard, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Dashboard") + "\n")
	b.WriteString(KeyValues([][2]string{
		{"Projects", fmt.Sprintf("%d  %s", d.ProjectStats.Total, Dim(fmt.Sprintf("%d active · %d done · %d blocked", d.ProjectStats.Active, d.ProjectStats.Done, d.ProjectStats.Blocked)))},
		{"Tasks", fmt.Sprintf("%d  %s", d.TaskStats.Total, Dim(fmt.Sprintf("%d todo · %d in progress · %d done", d.TaskStats.Todo, d.TaskStats.InProgress, d.TaskStats.Done)))},
		{"Project completion", RenderProgress(d.ProjectStats.Completion, barWidth)},
		{"Task completion", RenderProgress(d.TaskStats.Completion, barWidth)},
	}))

	b.WriteString("\n" + Bold("Recent projects") + "\n")
	if len(d.Recent) == 0 {
		b.WriteString(Dim("No projects yet.") + "\n")
	}
	for _, p := range d.Recent {
		fmt.Fprintf(&b, "  %s  %s  %s\n", ProjectStatusPill(p.Status), Truncate(p.Name, 36), DueStyled(p.DueDate, now))
	}

	b.WriteString("\n" + FormatNotifications(d.Notifications, now))
	return b.String()
}

// FormatSystemDashboard renders the platform counters, both charts and the
// organizations table.
func FormatSystemDashboard(d *service.SystemDashboard) string {
	var b strings.Builder
	b.WriteString(Header("System dashboard") + "\n")
	b.WriteString(FormatSystemAnalytics(d.Analytics))

	b.WriteString("\n" + Bold("Active users (7d)") + "\n")
	b.WriteString(RenderPie(d.Pie, barWidth) + "\n")

	b.WriteString("\n" + Bold("Active users per organization (7d)") + "\n")
	b.WriteString(RenderLine(d.Line, 6))

	b.WriteString("\n" + FormatOrganizations(d.Organizations))
	return b.String()
}

// FormatSystemAnalytics renders the platform-wide counters.
func FormatSystemAnalytics(a domain.SystemAnalytics) string {
	return KeyValues([][2]string{
		{"Organizations", strconv.FormatInt(a.TenantCount, 10)},
		{"Users", strconv.FormatInt(a.UserCount, 10)},
		{"Projects", strconv.FormatInt(a.ProjectCount, 10)},
		{"Tasks", strconv.FormatInt(a.TaskCount, 10)},
		{"Active users 24h", strconv.FormatInt(a.ActiveUsers24h, 10)},
		{"Active users 7d", strconv.FormatInt(a.ActiveUsers7d, 10)},
		{"Active organizations 7d", strconv.FormatInt(a.ActiveTenants7d, 10)},
	})
}

// FormatOrganizations renders per-tenant usage with the activity badge.
func FormatOrganizations(orgs []domain.SystemOrganization) string {
	rows := make([][]string, 0, len(orgs))
	for _, o := range orgs {
		rows = append(rows, []string{
			Truncate(domain.CoalesceStr(o.TenantName, o.TenantSlug), 28),
			o.TenantSlug,
			strconv.FormatInt(o.UserCount, 10),
			strconv.FormatInt(o.ProjectCount, 10),
			strconv.FormatInt(o.TaskCount, 10),
			strconv.FormatInt(o.ActiveUsers7d, 10),
			ActivityBadge(o.ActiveWorkspace7d),
			Dim(analytics.TenantHealth(o)),
		})
	}
	return Table{
		Headers: []string{"ORGANIZATION", "SLUG", "USERS", "PROJECTS", "TASKS", "ACTIVE 7D", "STATUS", "HEALTH"},
		Rows:    rows,
		Empty:   "No organizations yet.",
		Right:   map[int]bool{2: true, 3: true, 4: true, 5: true},
	}.Render()
}

// FormatNotifications renders the header notification list.
func FormatNotifications(items []notify.Item, now time.Time) string {
	var b strings.Builder
	b.WriteString(Bold(fmt.Sprintf("Notifications (%d)", len(items))) + "\n")
	if len(items) == 0 {
		b.WriteString(Dim("You're all caught up.") + "\n")
		return b.String()
	}
	for _, it := range items {
		marker := StyleYellow.Render("●")
		switch it.Kind {
		case notify.KindSupport:
			marker = StyleBlue.Render("●")
		case notify.KindSystem:
			marker = StylePurple.Render("●")
		}
		when := ""
		if it.CreatedAt != nil {
			when = "  " + Dim(HumanTimestamp(*it.CreatedAt, now))
		}
		fmt.Fprintf(&b, "%s %s%s\n  %s\n", marker, it.Title, when, Dim(it.Detail))
	}
	return b.String()
}

// FormatLogs renders request logs newest first as the backend returns them.
func FormatLogs(logs []domain.SystemLog, now time.Time) string {
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{
			HumanTimestamp(l.CreatedAt, now),
			l.Method,
			Truncate(l.Path, 40),
			HTTPStatus(l.StatusCode),
			fmt.Sprintf("%dms", l.LatencyMS),
			OrDash(l.TenantSlug),
			OrDash(l.UserEmail),
		})
	}
	return Table{
		Headers: []string{"WHEN", "METHOD", "PATH", "STATUS", "LATENCY", "TENANT", "USER"},
		Rows:    rows,
		Empty:   "No request logs.",
		Right:   map[int]bool{4: true},
	}.Render()
}

// FormatTenants renders the tenant directory.
func FormatTenants(tenants []domain.SystemTenant, now time.Time) string {
	rows := make([][]string, 0, len(tenants))
	for _, t := range tenants {
		created := "--"
		if !t.CreatedAt.IsZero() {
			created = HumanDate(t.CreatedAt, now)
		}
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			t.Slug,
			Truncate(t.Name, 32),
			OrDash(Truncate(t.LogoURL, 32)),
			created,
		})
	}
	return Table{
		Headers: []string{"ID", "SLUG", "NAME", "LOGO", "CREATED"},
		Rows:    rows,
		Empty:   "No tenants yet.",
		Right:   map[int]bool{0: true},
	}.Render()
}

// FormatUpdates renders scheduled system updates.
func FormatUpdates(updates []domain.SystemUpdate) string {
	rows := make([][]string, 0, len(updates))
	for _, u := range updates {
		rows = append(rows, []string{
			strconv.FormatInt(u.ID, 10),
			OrDash(u.ScheduledDate),
			Truncate(u.Title, 32),
			OrDash(Truncate(u.FeatureBrief, 40)),
			OrDash(u.CreatedBy),
		})
	}
	return Table{
		Headers: []string{"ID", "DATE", "TITLE", "BRIEF", "BY"},
		Rows:    rows,
		Empty:   "No system updates scheduled.",
		Right:   map[int]bool{0: true},
	}.Render()
}

// FormatUpdateResult summarizes a scheduled update and its mail fan-out.
func FormatUpdateResult(r *domain.SystemUpdateResult) string {
	return KeyValues([][2]string{
		{"Update", fmt.Sprintf("#%d %s", r.Item.ID, r.Item.Title)},
		{"Scheduled", OrDash(r.Item.ScheduledDate)},
		{"Recipients", strconv.Itoa(r.Recipients)},
		{"Sent", strconv.Itoa(r.Sent)},
		{"Failed", strconv.Itoa(r.Failed)},
		{"Mail", OrDash(r.MailStatus)},
	})
}

// FormatForum renders forum posts with a short body preview.
func FormatForum(posts []domain.ForumPost, now time.Time) string {
	if len(posts) == 0 {
		return Dim("No posts yet.") + "\n"
	}
	var b strings.Builder
	for i, p := range posts {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s\n", Bold(p.Title), Dim(fmt.Sprintf("%s · %s", OrDash(p.AuthorEmail), HumanTimestamp(p.CreatedAt, now))))
		b.WriteString("  " + Truncate(strings.ReplaceAll(p.Body, "\n", " "), 96) + "\n")
	}
	return b.String()
}

// FormatIssues renders the issue tracker table.
func FormatIssues(issues []domain.Issue) string {
	rows := make([][]string, 0, len(issues))
	for _, is := range issues {
		rows = append(rows, []string{
			strconv.FormatInt(is.ID, 10),
			Truncate(is.Title, 36),
			SeverityBadge(is.Severity),
			OrDash(is.Status),
			OrDash(Truncate(is.ProjectName, 24)),
			OrDash(is.CreatedByEmail),
		})
	}
	return Table{
		Headers: []string{"ID", "TITLE", "SEVERITY", "STATUS", "PROJECT", "REPORTED BY"},
		Rows:    rows,
		Empty:   "No issues reported.",
		Right:   map[int]bool{0: true},
	}.Render()
}

// FormatProfile renders the signed-in user's identity fields.
func FormatProfile(u *domain.AuthUser) string {
	return KeyValues([][2]string{
		{"Name", OrDash(u.Name)},
		{"Email", OrDash(u.Email)},
		{"User ID", OrDash(u.ID)},
		{"Role", RoleBadge(u.Role)},
		{"Tenant slug", OrDash(u.TenantSlug)},
		{"Tenant name", OrDash(u.TenantName)},
	})
}

// FormatIdentity is FormatProfile plus the token expiry.
func FormatIdentity(id *service.Identity, now time.Time) string {
	expiry := Dim("unknown")
	if id.ExpiresAt != nil {
		expiry = id.ExpiresAt.Format(time.RFC3339)
		if id.Expired {
			expiry = StyleRed.Render(expiry + " (expired)")
		} else {
			expiry += "  " + Dim(RelativeDateFrom(*id.ExpiresAt, now))
		}
	}
	return FormatProfile(&id.User) + KeyValues([][2]string{{"Token expires", expiry}})
}

// FormatSettings renders workspace settings under their JSON keys, the
// names accepted by `settings set`.
func FormatSettings(ws domain.WorkspaceSettings) string {
	return KeyValues([][2]string{
		{"timezone", ws.Timezone},
		{"weekStartsOn", ws.WeekStartsOn},
		{"projectPrefix", OrDash(ws.ProjectPrefix)},
		{"dailyDigest", onOff(ws.DailyDigest)},
		{"overdueAlerts", onOff(ws.OverdueAlerts)},
		{"emailSummaries", onOff(ws.EmailSummaries)},
		{"privateProjects", onOff(ws.PrivateProjects)},
		{"logRetentionDays", strconv.Itoa(ws.LogRetentionDays)},
		{"adminsCanExport", onOff(ws.AdminsCanExport)},
	})
}

func onOff(v bool) string {
	if v {
		return StyleGreen.Render("true")
	}
	return Dim("false")
}
