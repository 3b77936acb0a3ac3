package cli

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pulseforge/pulseforge/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands and
// the TUI.
type App struct {
	Auth      service.AuthService
	Projects  service.ProjectService
	Tasks     service.TaskService
	Dashboard service.DashboardService
	Calendar  service.CalendarService
	System    service.SystemService
	Community service.CommunityService
	Support   service.SupportService
	Profile   service.ProfileService
	Settings  service.SettingsService

	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// stdinIsTerminal decides whether a bare `pulseforge` opens the TUI.
var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// runProgram starts the TUI. Tests replace it.
var runProgram = runTUI

// NewRootCmd creates the top-level "pulseforge" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pulseforge",
		Short:         "Multi-tenant project and task workspace",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !stdinIsTerminal() {
				return cmd.Help()
			}
			return runProgram(app)
		},
	}

	root.AddCommand(
		newTUICmd(app),
		newLoginCmd(app),
		newRegisterCmd(app),
		newForgotPasswordCmd(app),
		newLogoutCmd(app),
		newWhoAmICmd(app),
		newDashboardCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newAnalyticsCmd(app),
		newCalendarCmd(app),
		newProfileCmd(app),
		newSettingsCmd(app),
		newForumCmd(app),
		newIssueCmd(app),
		newSupportCmd(app),
		newNotifyCmd(app),
		newNotificationsCmd(app),
		newMenuCmd(app),
		newSystemCmd(app),
	)

	return root
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(app)
		},
	}
}
