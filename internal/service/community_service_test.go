package service

import (
	"context"
	"testing"

	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommunityService_Forum(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleOrgAdmin)
	svc := NewCommunityService(h.client)
	ctx := context.Background()

	_, err := svc.Post(ctx, domain.ForumPostInput{Title: "Release cadence", Body: "Weekly or biweekly?"})
	require.NoError(t, err)
	_, err = svc.Post(ctx, domain.ForumPostInput{Title: "Standups", Body: "Async works"})
	require.NoError(t, err)

	all, err := svc.Forum(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	hits, err := svc.Forum(ctx, "  BIWEEKLY ")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Release cadence", hits[0].Title)

	byAuthor, err := svc.Forum(ctx, "ada@acme")
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)

	_, err = svc.Post(ctx, domain.ForumPostInput{Title: "Only a title"})
	require.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "title and body are required")
}

func TestCommunityService_Issues(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, domain.RoleOrgAdmin)
	project := h.srv.SeedProject(testutil.NewTestProject("Apollo"))
	svc := NewCommunityService(h.client)
	ctx := context.Background()

	issue, err := svc.ReportIssue(ctx, domain.IssueInput{ProjectID: &project.ID, Title: "Login loop", Description: "Redirects forever"})
	require.NoError(t, err)
	assert.Equal(t, domain.SeverityMedium, issue.Severity)
	assert.Equal(t, "Apollo", issue.ProjectName)
	assert.Equal(t, "open", issue.Status)

	_, err = svc.ReportIssue(ctx, domain.IssueInput{Title: "Crash", Description: "On save", Severity: domain.SeverityCritical})
	require.NoError(t, err)

	tests := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"critical", 1},
		{"apollo", 1},
		{"open", 2},
		{"nothing-matches", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := svc.Issues(ctx, tt.query)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}

	_, err = svc.ReportIssue(ctx, domain.IssueInput{Title: "Bad", Description: "sev", Severity: "urgent"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestSupportService(t *testing.T) {
	h := newHarness(t)
	u := h.signIn(t, domain.RoleOrgAdmin)
	svc := NewSupportService(h.client)
	ctx := context.Background()

	_, err := svc.Request(ctx, domain.SupportRequest{Subject: " ", Message: "help"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Request(ctx, domain.SupportRequest{Subject: "Export", Message: "CSV is empty"})
	require.NoError(t, err)
	require.Len(t, h.srv.SupportRequests(), 1)
	assert.Equal(t, domain.SupportNormal, h.srv.SupportRequests()[0].Priority)

	status, err := svc.TestNotification(ctx, domain.TestNotification{})
	require.NoError(t, err)
	assert.Equal(t, "sent", status)
	mail := h.srv.Mail()
	require.Len(t, mail, 1)
	assert.Equal(t, u.Email, mail[0].Email)
	assert.Equal(t, "PulseForge test notification", mail[0].Subject)
}
