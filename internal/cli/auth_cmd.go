package cli

import (
	"context"

	"github.com/charmbracelet/huh"
	"github.com/pulseforge/pulseforge/internal/cli/formatter"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/service"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var in service.LoginInput

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to a workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.TenantSlug == "" {
				in.TenantSlug, _ = app.Auth.LastTenant(cmd.Context())
			}
			if (in.Email == "" || in.Password == "") && stdinIsTerminal() {
				if err := loginForm(&in).Run(); err != nil {
					return err
				}
			}

			sess, err := load(cmd, func(ctx context.Context) (*domain.Session, error) {
				return app.Auth.Login(ctx, in)
			})
			if err != nil {
				return err
			}
			success(cmd, "Logged in as %s (%s)", sess.User.DisplayName(), sess.User.TenantSlug)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.TenantSlug, "tenant", "", "Organization slug (defaults to the last one used)")
	cmd.Flags().StringVar(&in.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "Account password")

	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var in service.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an organization and its admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (in.TenantSlug == "" || in.Email == "" || in.Password == "") && stdinIsTerminal() {
				if err := registerForm(&in).Run(); err != nil {
					return err
				}
			}

			sess, err := load(cmd, func(ctx context.Context) (*domain.Session, error) {
				return app.Auth.Register(ctx, in)
			})
			if err != nil {
				return err
			}
			success(cmd, "Registered %s and logged in as %s", domain.CoalesceStr(sess.User.TenantName, sess.User.TenantSlug), sess.User.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&in.TenantSlug, "tenant", "", "Organization slug")
	cmd.Flags().StringVar(&in.TenantName, "tenant-name", "", "Organization name")
	cmd.Flags().StringVar(&in.TenantLogo, "logo", "", "Logo image: file path, http(s) URL or data:image URI")
	cmd.Flags().StringVar(&in.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password (at least 6 characters)")

	return cmd
}

func newForgotPasswordCmd(app *App) *cobra.Command {
	var email, tenant string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tenant == "" {
				tenant, _ = app.Auth.LastTenant(cmd.Context())
			}
			status, err := load(cmd, func(ctx context.Context) (string, error) {
				return app.Auth.ForgotPassword(ctx, email, tenant)
			})
			if err != nil {
				return err
			}
			success(cmd, "%s", status)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&tenant, "tenant", "", "Organization slug")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			success(cmd, "Logged out.")
			return nil
		},
	}
}

func newWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user and token expiry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.Auth.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}
			printf(cmd, "%s", formatter.FormatIdentity(id, app.now()))
			if id.Expired {
				warn(cmd, "Session token has expired. Run `pulseforge login` again.")
			}
			return nil
		},
	}
}

func loginForm(in *service.LoginInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Organization slug").Value(&in.TenantSlug),
			huh.NewInput().Title("Email").Value(&in.Email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&in.Password),
		),
	).WithTheme(pulseforgeHuhTheme())
}

func registerForm(in *service.RegisterInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Organization slug").Value(&in.TenantSlug),
			huh.NewInput().Title("Organization name").Value(&in.TenantName),
			huh.NewInput().Title("Logo (optional)").Description("File path, URL or data:image URI").Value(&in.TenantLogo),
		),
		huh.NewGroup(
			huh.NewInput().Title("Your name").Value(&in.Name),
			huh.NewInput().Title("Email").Value(&in.Email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&in.Password),
		),
	).WithTheme(pulseforgeHuhTheme())
}
