package cli

import (
	"context"

	"github.com/pulseforge/pulseforge/internal/analytics"
	"github.com/pulseforge/pulseforge/internal/cli/formatter"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/notify"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the workspace or platform dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if currentRole(cmd.Context(), app).IsSystemAdmin() {
				d, err := load(cmd, app.Dashboard.System)
				if err != nil {
					return err
				}
				printf(cmd, "%s", formatter.FormatSystemDashboard(d))
				return nil
			}
			d, err := load(cmd, app.Dashboard.Org)
			if err != nil {
				return err
			}
			printf(cmd, "%s", formatter.FormatOrgDashboard(d, app.now()))
			return nil
		},
	}
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "List and create projects",
	}
	cmd.AddCommand(newProjectListCmd(app), newProjectAddCmd(app))
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := load(cmd, app.Projects.List)
			if err != nil {
				return err
			}
			printf(cmd, "%s", formatter.FormatProjects(projects, app.now()))
			return nil
		},
	}
}

func newProjectAddCmd(app *App) *cobra.Command {
	var (
		in        domain.ProjectInput
		assignees string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Assignees = domain.SplitList(assignees)
			if in.StartDate == "" {
				in.StartDate = app.now().Format(domain.DateLayout)
			}
			p, err := load(cmd, func(ctx context.Context) (*domain.Project, error) {
				return app.Projects.Create(ctx, in)
			})
			if err != nil {
				return err
			}
			success(cmd, "Created project %s [#%d] due %s", p.Name, p.ID, formatter.ShortDate(p.DueDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Project name")
	enumFlag(cmd.Flags(), &in.Status, "status", domain.ProjectActive, domain.ProjectStatuses, "Project status")
	cmd.Flags().StringVar(&assignees, "assignees", "", "Comma-separated assignees")
	cmd.Flags().StringVar(&in.StartDate, "start", "", "Start date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&in.DurationDays, "duration", 14, "Duration in days")
	cmd.Flags().IntVar(&in.TeamSize, "team", 1, "Team size")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "List and create tasks",
	}
	cmd.AddCommand(newTaskListCmd(app), newTaskAddCmd(app))
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := load(cmd, app.Tasks.List)
			if err != nil {
				return err
			}
			printf(cmd, "%s", formatter.FormatTasks(tasks))
			return nil
		},
	}
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		in       domain.TaskInput
		subtasks string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task in a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Subtasks = domain.SplitList(subtasks)
			t, err := load(cmd, func(ctx context.Context) (*domain.TaskItem, error) {
				return app.Tasks.Create(ctx, in)
			})
			if err != nil {
				return err
			}
			success(cmd, "Created task %s [#%d] in %s", t.Title, t.ID, formatter.OrDash(t.ProjectName))
			return nil
		},
	}

	cmd.Flags().Int64Var(&in.ProjectID, "project", 0, "Project ID")
	cmd.Flags().StringVar(&in.Title, "title", "", "Task title")
	enumFlag(cmd.Flags(), &in.Status, "status", domain.TaskTodo, domain.TaskStatuses, "Task status")
	enumFlag(cmd.Flags(), &in.Priority, "priority", domain.PriorityMedium, domain.TaskPriorities, "Task priority")
	cmd.Flags().StringVar(&subtasks, "subtasks", "", "Comma-separated subtasks")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newAnalyticsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show completion and blocker rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if currentRole(cmd.Context(), app).IsSystemAdmin() {
				d, err := load(cmd, app.Dashboard.System)
				if err != nil {
					return err
				}
				printf(cmd, "%s\n%s", formatter.Header("Platform usage"), formatter.FormatSystemAnalytics(d.Analytics))
				printf(cmd, "\n%s\n", formatter.RenderPie(d.Pie, 20))
				return nil
			}
			s, err := load(cmd, func(ctx context.Context) (analytics.ProjectSummary, error) {
				return app.Dashboard.Analytics(ctx)
			})
			if err != nil {
				return err
			}
			printf(cmd, "%s", formatter.FormatAnalytics(s))
			return nil
		},
	}
}

func newNotificationsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "Show due-date and system alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, _ := load(cmd, func(ctx context.Context) ([]notify.Item, error) {
				return app.Dashboard.Notifications(ctx, currentRole(ctx, app)), nil
			})
			printf(cmd, "%s", formatter.FormatNotifications(items, app.now()))
			return nil
		},
	}
}

func newMenuCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "List the pages available to your role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			role := currentRole(cmd.Context(), app)
			printf(cmd, "%s", formatter.RenderMenu(role))
			note(cmd, "Role: %s. Open a page with `pulseforge tui`.", role)
			return nil
		},
	}
}
