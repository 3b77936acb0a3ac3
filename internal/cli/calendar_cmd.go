package cli

import (
	"context"
	"time"

	"github.com/pulseforge/pulseforge/internal/cli/formatter"
	"github.com/pulseforge/pulseforge/internal/service"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	var month, day time.Time

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show project starts, deadlines and system updates by month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if month.IsZero() && !day.IsZero() {
				month = day
			}
			role := currentRole(cmd.Context(), app)
			m, err := load(cmd, func(ctx context.Context) (*service.CalendarMonth, error) {
				return app.Calendar.Month(ctx, month, role)
			})
			if m == nil {
				return err
			}
			printf(cmd, "%s", formatter.RenderMonth(m, day))
			if !day.IsZero() {
				printf(cmd, "\n%s", formatter.RenderDayEvents(day, m.On(day)))
			}
			return err
		},
	}

	cmd.Flags().Var(&monthValue{target: &month}, "month", "Month to show (YYYY-MM, default this month)")
	cmd.Flags().Var(&dateValue{target: &day}, "day", "List everything on one day (YYYY-MM-DD)")

	return cmd
}
