package domain

import (
	"fmt"
	"strings"
	"time"
)

type SystemTenant struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type TenantInput struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

func (in *TenantInput) Normalize() {
	in.Slug = strings.ToLower(strings.TrimSpace(in.Slug))
	in.Name = strings.TrimSpace(in.Name)
	in.LogoURL = strings.TrimSpace(in.LogoURL)
}

func (in *TenantInput) Validate() error {
	if in.Slug == "" || in.Name == "" {
		return fmt.Errorf("tenant slug and name are required")
	}
	return nil
}

type SystemOrganization struct {
	TenantSlug        string `json:"tenant_slug"`
	TenantName        string `json:"tenant_name"`
	UserCount         int64  `json:"user_count"`
	ProjectCount      int64  `json:"project_count"`
	TaskCount         int64  `json:"task_count"`
	ActiveUsers7d     int64  `json:"active_users_7d"`
	ActiveWorkspace7d bool   `json:"active_workspace_7d"`
}

type SystemAnalytics struct {
	TenantCount     int64 `json:"tenant_count"`
	UserCount       int64 `json:"user_count"`
	ProjectCount    int64 `json:"project_count"`
	TaskCount       int64 `json:"task_count"`
	ActiveUsers24h  int64 `json:"active_users_24h"`
	ActiveUsers7d   int64 `json:"active_users_7d"`
	ActiveTenants7d int64 `json:"active_tenants_7d"`
}

type SystemLog struct {
	ID         int64     `json:"id"`
	TenantSlug string    `json:"tenant_slug"`
	UserEmail  string    `json:"user_email"`
	Role       string    `json:"role"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"status_code"`
	LatencyMS  int64     `json:"latency_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

type SystemUpdate struct {
	ID            int64     `json:"id"`
	ScheduledDate string    `json:"scheduled_date"`
	Title         string    `json:"title"`
	FeatureBrief  string    `json:"feature_brief"`
	Expectations  string    `json:"expectations"`
	CreatedBy     string    `json:"created_by_email"`
	CreatedAt     time.Time `json:"created_at"`
}

// Scheduled parses ScheduledDate, accepting both date-only and RFC 3339 values.
func (u SystemUpdate) Scheduled() (time.Time, bool) {
	if t, err := time.Parse(DateLayout, u.ScheduledDate); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, u.ScheduledDate); err == nil {
		return t, true
	}
	return time.Time{}, false
}

type SystemUpdateInput struct {
	ScheduledDate string `json:"scheduled_date"`
	Title         string `json:"title"`
	FeatureBrief  string `json:"feature_brief"`
	Expectations  string `json:"expectations"`
}

func (in *SystemUpdateInput) Normalize() {
	in.ScheduledDate = strings.TrimSpace(in.ScheduledDate)
	in.Title = strings.TrimSpace(in.Title)
	in.FeatureBrief = strings.TrimSpace(in.FeatureBrief)
	in.Expectations = strings.TrimSpace(in.Expectations)
}

// SystemUpdateResult is returned when an update is scheduled or edited;
// the backend mails every org admin and reports delivery counts.
type SystemUpdateResult struct {
	Item       SystemUpdate `json:"item"`
	Recipients int          `json:"recipients"`
	Sent       int          `json:"sent"`
	Failed     int          `json:"failed"`
	MailStatus string       `json:"mail_status"`
}
