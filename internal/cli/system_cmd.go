package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pulseforge/pulseforge/internal/api"
	"github.com/pulseforge/pulseforge/internal/cli/formatter"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/spf13/cobra"
)

func newSystemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Platform administration (system admins)",
	}

	tenant := &cobra.Command{Use: "tenant", Short: "Create and update tenants"}
	tenant.AddCommand(newTenantAddCmd(app), newTenantUpdateCmd(app))

	update := &cobra.Command{Use: "update", Short: "Schedule and edit system updates"}
	update.AddCommand(newUpdateAddCmd(app), newUpdateEditCmd(app))

	cmd.AddCommand(
		newSystemOrgsCmd(app),
		newSystemAnalyticsCmd(app),
		newSystemLogsCmd(app),
		newSystemTenantsCmd(app),
		tenant,
		newSystemUpdatesCmd(app),
		update,
	)
	return cmd
}

func newSystemOrgsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "orgs",
		Short: "List organizations with 7-day activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orgs, err := load(cmd, app.System.Organizations)
			if err != nil {
				return err
			}
			printf(cmd, "%s", formatter.FormatOrganizations(orgs))
			return nil
		},
	}
}

func newSystemAnalyticsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show platform-wide counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd, app.System.Analytics)
			if err != nil {
				return err
			}
			printf(cmd, "%s", formatter.FormatSystemAnalytics(*a))
			return nil
		},
	}
}

func newSystemLogsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent request logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logs, err := load(cmd, func(ctx context.Context) ([]domain.SystemLog, error) {
				return app.System.Logs(ctx, limit)
			})
			if err != nil {
				return err
			}
			printf(cmd, "%s", formatter.FormatLogs(logs, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", api.DefaultLogLimit, fmt.Sprintf("Number of entries (1-%d)", api.MaxLogLimit))
	return cmd
}

func newSystemTenantsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tenants",
		Short: "List tenants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tenants, err := load(cmd, app.System.Tenants)
			if err != nil {
				return err
			}
			printf(cmd, "%s", formatter.FormatTenants(tenants, app.now()))
			return nil
		},
	}
}

func tenantFlags(cmd *cobra.Command, in *domain.TenantInput) {
	cmd.Flags().StringVar(&in.Slug, "slug", "", "Tenant slug (lower-cased)")
	cmd.Flags().StringVar(&in.Name, "name", "", "Tenant name")
	cmd.Flags().StringVar(&in.LogoURL, "logo-url", "", "Logo URL")
}

func newTenantAddCmd(app *App) *cobra.Command {
	var in domain.TenantInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a tenant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := load(cmd, func(ctx context.Context) (*domain.SystemTenant, error) {
				return app.System.CreateTenant(ctx, in)
			})
			if err != nil {
				return err
			}
			success(cmd, "Created tenant %s (%s) [#%d]", t.Name, t.Slug, t.ID)
			return nil
		},
	}
	tenantFlags(cmd, &in)
	return cmd
}

func newTenantUpdateCmd(app *App) *cobra.Command {
	var in domain.TenantInput

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a tenant's slug, name or logo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := load(cmd, func(ctx context.Context) (*domain.SystemTenant, error) {
				return app.System.UpdateTenant(ctx, id, in)
			})
			if err != nil {
				return err
			}
			success(cmd, "Updated tenant %s (%s)", t.Name, t.Slug)
			return nil
		},
	}
	tenantFlags(cmd, &in)
	return cmd
}

func newSystemUpdatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "updates",
		Short: "List scheduled system updates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := load(cmd, app.System.Updates)
			if err != nil {
				return err
			}
			printf(cmd, "%s", formatter.FormatUpdates(updates))
			return nil
		},
	}
}

func updateFlags(cmd *cobra.Command, in *domain.SystemUpdateInput) {
	cmd.Flags().StringVar(&in.ScheduledDate, "date", "", "Release date after today (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.Title, "title", "", "Update title")
	cmd.Flags().StringVar(&in.FeatureBrief, "brief", "", "Feature brief")
	cmd.Flags().StringVar(&in.Expectations, "expectations", "", "What users should expect")
}

func newUpdateAddCmd(app *App) *cobra.Command {
	var in domain.SystemUpdateInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a system update and email every user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := load(cmd, func(ctx context.Context) (*domain.SystemUpdateResult, error) {
				return app.Calendar.ScheduleUpdate(ctx, in)
			})
			if err != nil {
				return err
			}
			success(cmd, "Scheduled %s for %s", res.Item.Title, res.Item.ScheduledDate)
			printf(cmd, "%s", formatter.FormatUpdateResult(res))
			if res.Failed > 0 {
				warn(cmd, "%d notification email(s) failed to send.", res.Failed)
			}
			return nil
		},
	}
	updateFlags(cmd, &in)
	return cmd
}

func newUpdateEditCmd(app *App) *cobra.Command {
	var in domain.SystemUpdateInput

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a scheduled system update",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := load(cmd, func(ctx context.Context) (*domain.SystemUpdateResult, error) {
				return app.Calendar.EditUpdate(ctx, id, in)
			})
			if err != nil {
				return err
			}
			success(cmd, "Updated %s for %s", res.Item.Title, res.Item.ScheduledDate)
			printf(cmd, "%s", formatter.FormatUpdateResult(res))
			return nil
		},
	}
	updateFlags(cmd, &in)
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
