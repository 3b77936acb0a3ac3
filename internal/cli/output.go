package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pulseforge/pulseforge/internal/cli/formatter"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/spf13/cobra"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	noteColor    = color.New(color.Faint)
)

// printf writes to the command's stdout so tests can capture it.
func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

// success prints a one-line confirmation such as "✔ Logged in as Ada".
func success(cmd *cobra.Command, format string, args ...any) {
	successColor.Fprint(cmd.OutOrStdout(), "✔ ")
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

func warn(cmd *cobra.Command, format string, args ...any) {
	warnColor.Fprintf(cmd.ErrOrStderr(), "! "+format+"\n", args...)
}

func note(cmd *cobra.Command, format string, args ...any) {
	noteColor.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

// stdoutIsTerminal reports whether the command writes to a real terminal.
func stdoutIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// load runs fn behind a "Loading..." spinner when stdout is a terminal.
func load[T any](cmd *cobra.Command, fn func(ctx context.Context) (T, error)) (T, error) {
	if stdoutIsTerminal(cmd) {
		stop := formatter.StartSpinner("Loading...")
		defer stop()
	}
	return fn(cmd.Context())
}

// currentRole is the signed-in role, org admin when signed out.
func currentRole(ctx context.Context, app *App) domain.Role {
	sess, err := app.Auth.Current(ctx)
	if err != nil || sess == nil {
		return domain.RoleOrgAdmin
	}
	return sess.Role()
}
