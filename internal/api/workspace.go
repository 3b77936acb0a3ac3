package api

import (
	"context"
	"net/http"

	"github.com/pulseforge/pulseforge/internal/domain"
)

func (c *httpClient) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return listItems[domain.Project](ctx, c, "/projects")
}

func (c *httpClient) CreateProject(ctx context.Context, in domain.ProjectInput) (*domain.Project, error) {
	var p domain.Project
	if err := c.call(ctx, http.MethodPost, "/projects", true, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *httpClient) ListTasks(ctx context.Context) ([]domain.TaskItem, error) {
	return listItems[domain.TaskItem](ctx, c, "/tasks")
}

func (c *httpClient) CreateTask(ctx context.Context, in domain.TaskInput) (*domain.TaskItem, error) {
	var t domain.TaskItem
	if err := c.call(ctx, http.MethodPost, "/tasks", true, in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *httpClient) ListForumPosts(ctx context.Context) ([]domain.ForumPost, error) {
	return listItems[domain.ForumPost](ctx, c, "/forum/posts")
}

func (c *httpClient) CreateForumPost(ctx context.Context, in domain.ForumPostInput) (*domain.ForumPost, error) {
	var p domain.ForumPost
	if err := c.call(ctx, http.MethodPost, "/forum/posts", true, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *httpClient) ListIssues(ctx context.Context) ([]domain.Issue, error) {
	return listItems[domain.Issue](ctx, c, "/issues")
}

func (c *httpClient) CreateIssue(ctx context.Context, in domain.IssueInput) (*domain.Issue, error) {
	var i domain.Issue
	if err := c.call(ctx, http.MethodPost, "/issues", true, in, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

func (c *httpClient) SendTestNotification(ctx context.Context, in domain.TestNotification) (string, error) {
	var resp statusEnvelope
	if err := c.call(ctx, http.MethodPost, "/notifications/test", true, in, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

func (c *httpClient) SendSupportRequest(ctx context.Context, in domain.SupportRequest) (string, error) {
	var resp statusEnvelope
	if err := c.call(ctx, http.MethodPost, "/support/request", true, in, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}
