package service

import (
	"context"

	"github.com/pulseforge/pulseforge/internal/api"
	"github.com/pulseforge/pulseforge/internal/domain"
)

type communityService struct {
	client   api.Client
	observer UseCaseObserver
}

func NewCommunityService(client api.Client, observers ...UseCaseObserver) CommunityService {
	return &communityService{client: client, observer: useCaseObserverOrNoop(observers)}
}

// Forum lists posts filtered client-side by query.
func (s *communityService) Forum(ctx context.Context, query string) (posts []domain.ForumPost, err error) {
	t := track(s.observer, "forum.list")
	defer func() { t.finish(ctx, err) }()

	all, err := s.client.ListForumPosts(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterForum(all, query), nil
}

func (s *communityService) Post(ctx context.Context, in domain.ForumPostInput) (post *domain.ForumPost, err error) {
	t := track(s.observer, "forum.post")
	defer func() { t.finish(ctx, err) }()

	if err := in.Validate(); err != nil {
		return nil, invalidErr("post", err)
	}
	return s.client.CreateForumPost(ctx, in)
}

func (s *communityService) Issues(ctx context.Context, query string) (issues []domain.Issue, err error) {
	t := track(s.observer, "issue.list")
	defer func() { t.finish(ctx, err) }()

	all, err := s.client.ListIssues(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterIssues(all, query), nil
}

func (s *communityService) ReportIssue(ctx context.Context, in domain.IssueInput) (issue *domain.Issue, err error) {
	t := track(s.observer, "issue.create")
	defer func() { t.finish(ctx, err) }()

	if err := in.Validate(); err != nil {
		return nil, invalidErr("issue", err)
	}
	t.set("severity", string(in.Severity))
	return s.client.CreateIssue(ctx, in)
}

type supportService struct {
	client   api.Client
	observer UseCaseObserver
}

func NewSupportService(client api.Client, observers ...UseCaseObserver) SupportService {
	return &supportService{client: client, observer: useCaseObserverOrNoop(observers)}
}

func (s *supportService) Request(ctx context.Context, in domain.SupportRequest) (status string, err error) {
	t := track(s.observer, "support.request")
	defer func() { t.finish(ctx, err) }()

	if err := in.Validate(); err != nil {
		return "", invalidErr("support", err)
	}
	t.set("priority", string(in.Priority))
	return s.client.SendSupportRequest(ctx, in)
}

// TestNotification sends a test email. An empty recipient lets the backend
// fall back to the caller's own address.
func (s *supportService) TestNotification(ctx context.Context, in domain.TestNotification) (status string, err error) {
	t := track(s.observer, "notification.test")
	defer func() { t.finish(ctx, err) }()

	if in.Subject == "" {
		in.Subject = "PulseForge test notification"
	}
	if in.Message == "" {
		in.Message = "This is a test notification from PulseForge."
	}
	return s.client.SendTestNotification(ctx, in)
}
