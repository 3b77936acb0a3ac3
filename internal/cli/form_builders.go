package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pulseforge/pulseforge/internal/domain"
)

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(pulseforgeHuhTheme()).WithShowHelp(false)
}

// dateInput returns a huh.Input for a required YYYY-MM-DD field.
func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2026-06-30").
		Value(value).
		Validate(validateDate)
}

// numberInput returns a huh.Input for a positive integer field.
func numberInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validatePositiveInt)
}

type projectFormValues struct {
	Name      string
	Status    domain.ProjectStatus
	Assignees string
	StartDate string
	Duration  string
	TeamSize  string
}

func projectForm(v *projectFormValues) *huh.Form {
	return newForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&v.Name).Validate(required("name")),
			huh.NewSelect[domain.ProjectStatus]().Title("Status").Options(enumOptions(domain.ProjectStatuses)...).Value(&v.Status),
			huh.NewInput().Title("Assignees").Description("Comma-separated").Value(&v.Assignees),
		),
		huh.NewGroup(
			dateInput("Start date", &v.StartDate),
			numberInput("Duration (days)", "14", &v.Duration),
			numberInput("Team size", "1", &v.TeamSize),
		),
	)
}

func (v *projectFormValues) input() domain.ProjectInput {
	return domain.ProjectInput{
		Name:         v.Name,
		Status:       v.Status,
		Assignees:    domain.SplitList(v.Assignees),
		StartDate:    v.StartDate,
		DurationDays: parsePositiveInt(v.Duration, 14),
		TeamSize:     parsePositiveInt(v.TeamSize, 1),
	}
}

type taskFormValues struct {
	ProjectID int64
	Title     string
	Status    domain.TaskStatus
	Priority  domain.TaskPriority
	Subtasks  string
}

// taskForm offers the loaded projects in a select.
func taskForm(v *taskFormValues, projects []domain.Project) *huh.Form {
	options := make([]huh.Option[int64], 0, len(projects))
	for _, p := range projects {
		options = append(options, huh.NewOption(fmt.Sprintf("#%d %s", p.ID, p.Name), p.ID))
	}
	return newForm(
		huh.NewGroup(
			huh.NewSelect[int64]().Title("Project").Options(options...).Value(&v.ProjectID),
			huh.NewInput().Title("Title").Value(&v.Title).Validate(required("title")),
		),
		huh.NewGroup(
			huh.NewSelect[domain.TaskStatus]().Title("Status").Options(enumOptions(domain.TaskStatuses)...).Value(&v.Status),
			huh.NewSelect[domain.TaskPriority]().Title("Priority").Options(enumOptions(domain.TaskPriorities)...).Value(&v.Priority),
			huh.NewInput().Title("Subtasks").Description("Comma-separated").Value(&v.Subtasks),
		),
	)
}

func (v *taskFormValues) input() domain.TaskInput {
	return domain.TaskInput{
		ProjectID: v.ProjectID,
		Title:     v.Title,
		Status:    v.Status,
		Priority:  v.Priority,
		Subtasks:  domain.SplitList(v.Subtasks),
	}
}

func forumPostForm(in *domain.ForumPostInput) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().Title("Title").Value(&in.Title).Validate(required("title")),
		huh.NewText().Title("Body").Value(&in.Body).Validate(required("body")),
	))
}

type issueFormValues struct {
	Title       string
	Description string
	Severity    domain.IssueSeverity
	ProjectID   int64
}

func issueForm(v *issueFormValues, projects []domain.Project) *huh.Form {
	options := []huh.Option[int64]{huh.NewOption("None", int64(0))}
	for _, p := range projects {
		options = append(options, huh.NewOption(p.Name, p.ID))
	}
	return newForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&v.Title).Validate(required("title")),
			huh.NewText().Title("Description").Value(&v.Description).Validate(required("description")),
		),
		huh.NewGroup(
			huh.NewSelect[domain.IssueSeverity]().Title("Severity").Options(enumOptions(domain.IssueSeverities)...).Value(&v.Severity),
			huh.NewSelect[int64]().Title("Project").Options(options...).Value(&v.ProjectID),
		),
	)
}

func (v *issueFormValues) input() domain.IssueInput {
	in := domain.IssueInput{Title: v.Title, Description: v.Description, Severity: v.Severity}
	if v.ProjectID > 0 {
		id := v.ProjectID
		in.ProjectID = &id
	}
	return in
}

func supportForm(in *domain.SupportRequest) *huh.Form {
	if in.Priority == "" {
		in.Priority = domain.SupportNormal
	}
	return newForm(huh.NewGroup(
		huh.NewInput().Title("Subject").Value(&in.Subject).Validate(required("subject")),
		huh.NewText().Title("Message").Value(&in.Message).Validate(required("message")),
		huh.NewSelect[domain.SupportPriority]().Title("Priority").Options(enumOptions(domain.SupportPriorities)...).Value(&in.Priority),
	))
}

func testNotificationForm(in *domain.TestNotification) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().Title("Recipient").Description("Blank sends to your own email").Value(&in.Email),
		huh.NewInput().Title("Subject").Placeholder("PulseForge test notification").Value(&in.Subject),
		huh.NewText().Title("Message").Placeholder("This is a test notification from PulseForge.").Value(&in.Message),
	))
}

func tenantForm(in *domain.TenantInput) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().Title("Slug").Value(&in.Slug).Validate(required("slug")),
		huh.NewInput().Title("Name").Value(&in.Name).Validate(required("name")),
		huh.NewInput().Title("Logo URL").Description("Optional").Value(&in.LogoURL),
	))
}

func systemUpdateForm(in *domain.SystemUpdateInput) *huh.Form {
	return newForm(
		huh.NewGroup(
			dateInput("Scheduled date", &in.ScheduledDate),
			huh.NewInput().Title("Title").Value(&in.Title).Validate(required("title")),
		),
		huh.NewGroup(
			huh.NewText().Title("Feature brief").Value(&in.FeatureBrief).Validate(required("feature brief")),
			huh.NewText().Title("Expectations").Value(&in.Expectations).Validate(required("expectations")),
		),
	)
}

func renameForm(name *string) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().Title("Display name").Value(name).Validate(required("name")),
	))
}

type settingsFormValues struct {
	domain.WorkspaceSettings
	Retention string
}

func settingsForm(v *settingsFormValues) *huh.Form {
	v.Retention = strconv.Itoa(v.LogRetentionDays)
	return newForm(
		huh.NewGroup(
			huh.NewInput().Title("Timezone").Value(&v.Timezone).Validate(required("timezone")),
			huh.NewSelect[string]().Title("Week starts on").Options(huh.NewOptions("monday", "sunday")...).Value(&v.WeekStartsOn),
			huh.NewInput().Title("Project prefix").Value(&v.ProjectPrefix),
			numberInput("Log retention (days)", "180", &v.Retention),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Daily digest").Value(&v.DailyDigest),
			huh.NewConfirm().Title("Overdue alerts").Value(&v.OverdueAlerts),
			huh.NewConfirm().Title("Email summaries").Value(&v.EmailSummaries),
			huh.NewConfirm().Title("Private projects").Value(&v.PrivateProjects),
			huh.NewConfirm().Title("Admins can export").Value(&v.AdminsCanExport),
		),
	)
}

func (v *settingsFormValues) settings() domain.WorkspaceSettings {
	ws := v.WorkspaceSettings
	ws.LogRetentionDays = parsePositiveInt(v.Retention, ws.LogRetentionDays)
	ws.ProjectPrefix = strings.TrimSpace(ws.ProjectPrefix)
	return ws
}
