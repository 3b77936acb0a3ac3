package cli

import (
	"context"

	"github.com/pulseforge/pulseforge/internal/cli/formatter"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/spf13/cobra"
)

func newForumCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forum",
		Short: "Team discussion",
	}

	var query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List forum posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := load(cmd, func(ctx context.Context) ([]domain.ForumPost, error) {
				return app.Community.Forum(ctx, query)
			})
			if err != nil {
				return err
			}
			printf(cmd, "%s", formatter.FormatForum(posts, app.now()))
			return nil
		},
	}
	list.Flags().StringVar(&query, "search", "", "Filter by title, body or author")

	var in domain.ForumPostInput
	post := &cobra.Command{
		Use:   "post",
		Short: "Start a discussion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := load(cmd, func(ctx context.Context) (*domain.ForumPost, error) {
				return app.Community.Post(ctx, in)
			})
			if err != nil {
				return err
			}
			success(cmd, "Posted %s", p.Title)
			return nil
		},
	}
	post.Flags().StringVar(&in.Title, "title", "", "Post title")
	post.Flags().StringVar(&in.Body, "body", "", "Post body")

	cmd.AddCommand(list, post)
	return cmd
}

func newIssueCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Report and triage problems",
	}

	var query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List issues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			issues, err := load(cmd, func(ctx context.Context) ([]domain.Issue, error) {
				return app.Community.Issues(ctx, query)
			})
			if err != nil {
				return err
			}
			printf(cmd, "%s", formatter.FormatIssues(issues))
			return nil
		},
	}
	list.Flags().StringVar(&query, "search", "", "Filter by title, description, severity, status or project")

	var (
		in        domain.IssueInput
		projectID int64
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Report an issue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID > 0 {
				in.ProjectID = &projectID
			}
			is, err := load(cmd, func(ctx context.Context) (*domain.Issue, error) {
				return app.Community.ReportIssue(ctx, in)
			})
			if err != nil {
				return err
			}
			success(cmd, "Reported issue %s [#%d]", is.Title, is.ID)
			return nil
		},
	}
	add.Flags().StringVar(&in.Title, "title", "", "Issue title")
	add.Flags().StringVar(&in.Description, "description", "", "What happened")
	enumFlag(add.Flags(), &in.Severity, "severity", domain.SeverityMedium, domain.IssueSeverities, "Severity")
	add.Flags().Int64Var(&projectID, "project", 0, "Related project ID (optional)")

	cmd.AddCommand(list, add)
	return cmd
}
