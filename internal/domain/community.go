package domain

import (
	"fmt"
	"strings"
	"time"
)

type ForumPost struct {
	ID          int64     `json:"id"`
	TenantID    string    `json:"tenant_id"`
	AuthorEmail string    `json:"author_email"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}

type ForumPostInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (in *ForumPostInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
	if in.Title == "" || in.Body == "" {
		return fmt.Errorf("title and body are required")
	}
	return nil
}

type Issue struct {
	ID             int64         `json:"id"`
	TenantID       string        `json:"tenant_id"`
	ProjectID      *int64        `json:"project_id,omitempty"`
	ProjectName    string        `json:"project_name,omitempty"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Severity       IssueSeverity `json:"severity"`
	Status         string        `json:"status"`
	CreatedByEmail string        `json:"created_by_email"`
	CreatedAt      time.Time     `json:"created_at"`
}

type IssueInput struct {
	ProjectID   *int64        `json:"project_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Severity    IssueSeverity `json:"severity"`
}

func (in *IssueInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Severity == "" {
		in.Severity = SeverityMedium
	}
	if in.Title == "" || in.Description == "" {
		return fmt.Errorf("title and description are required")
	}
	if _, err := ParseEnum(string(in.Severity), IssueSeverities); err != nil {
		return fmt.Errorf("issue severity: %w", err)
	}
	if in.ProjectID != nil && *in.ProjectID <= 0 {
		in.ProjectID = nil
	}
	return nil
}

// MatchesQuery reports whether the lowercased query appears anywhere in fields.
func MatchesQuery(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(strings.Join(fields, " ")), q)
}

// FilterForum returns posts whose title, body or author match query.
func FilterForum(posts []ForumPost, query string) []ForumPost {
	out := make([]ForumPost, 0, len(posts))
	for _, p := range posts {
		if MatchesQuery(query, p.Title, p.Body, p.AuthorEmail) {
			out = append(out, p)
		}
	}
	return out
}

// FilterIssues returns issues matching on title, description, severity, status or project.
func FilterIssues(issues []Issue, query string) []Issue {
	out := make([]Issue, 0, len(issues))
	for _, i := range issues {
		if MatchesQuery(query, i.Title, i.Description, string(i.Severity), i.Status, i.ProjectName) {
			out = append(out, i)
		}
	}
	return out
}

type SupportRequest struct {
	Subject  string          `json:"subject"`
	Message  string          `json:"message"`
	Priority SupportPriority `json:"priority"`
}

func (r *SupportRequest) Validate() error {
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
	if r.Priority == "" {
		r.Priority = SupportNormal
	}
	if r.Subject == "" || r.Message == "" {
		return fmt.Errorf("subject and message are required")
	}
	if _, err := ParseEnum(string(r.Priority), SupportPriorities); err != nil {
		return fmt.Errorf("support priority: %w", err)
	}
	return nil
}

type TestNotification struct {
	Email   string `json:"email,omitempty"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
