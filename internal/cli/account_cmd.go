package cli

import (
	"context"
	"strings"

	"github.com/pulseforge/pulseforge/internal/cli/formatter"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/service"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or rename your account",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show account details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Profile.Show(cmd.Context())
			if err != nil {
				return err
			}
			printf(cmd, "%s", formatter.FormatProfile(u))
			return nil
		},
	}

	rename := &cobra.Command{
		Use:   "rename NAME",
		Short: "Change your display name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Profile.Rename(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			success(cmd, "Display name set to %s", u.Name)
			return nil
		},
	}

	cmd.AddCommand(show, rename)
	return cmd
}

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change workspace settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show workspace settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := app.Settings.Get(cmd.Context())
			if err != nil {
				return err
			}
			printf(cmd, "%s", formatter.FormatSettings(ws))
			return nil
		},
	}

	set := &cobra.Command{
		Use:       "set KEY VALUE",
		Short:     "Change one setting",
		Args:      cobra.ExactArgs(2),
		ValidArgs: service.SettingKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := app.Settings.Set(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			success(cmd, "Saved %s", args[0])
			printf(cmd, "%s", formatter.FormatSettings(ws))
			return nil
		},
	}

	cmd.AddCommand(show, set)
	return cmd
}

func newSupportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "support",
		Short: "Contact platform support",
	}

	var in domain.SupportRequest
	request := &cobra.Command{
		Use:   "request",
		Short: "Submit a support request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := load(cmd, func(ctx context.Context) (string, error) {
				return app.Support.Request(ctx, in)
			})
			if err != nil {
				return err
			}
			success(cmd, "%s", status)
			return nil
		},
	}
	request.Flags().StringVar(&in.Subject, "subject", "", "Subject")
	request.Flags().StringVar(&in.Message, "message", "", "Message")
	enumFlag(request.Flags(), &in.Priority, "priority", domain.SupportNormal, domain.SupportPriorities, "Priority")

	cmd.AddCommand(request)
	return cmd
}

func newNotifyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Email notifications",
	}

	var in domain.TestNotification
	test := &cobra.Command{
		Use:   "test",
		Short: "Send a test notification email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := load(cmd, func(ctx context.Context) (string, error) {
				return app.Support.TestNotification(ctx, in)
			})
			if err != nil {
				return err
			}
			success(cmd, "%s", status)
			return nil
		},
	}
	test.Flags().StringVar(&in.Email, "email", "", "Recipient (defaults to your account email)")
	test.Flags().StringVar(&in.Subject, "subject", "", "Subject")
	test.Flags().StringVar(&in.Message, "message", "", "Message")

	cmd.AddCommand(test)
	return cmd
}
