package service

import (
	"context"
	"time"

	"github.com/pulseforge/pulseforge/internal/analytics"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/notify"
)

// SessionStore is the persisted session. *session.Store implements it.
type SessionStore interface {
	GetSession(ctx context.Context) (*domain.Session, error)
	GetCurrentUser(ctx context.Context) (*domain.AuthUser, error)
	GetAuthToken(ctx context.Context) (string, error)
	WriteSession(ctx context.Context, sess *domain.Session) error
	Logout(ctx context.Context) error
	UpdateCurrentUser(ctx context.Context, name string) error
	LastTenant(ctx context.Context) (string, error)
}

type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*domain.Session, error)
	Register(ctx context.Context, in RegisterInput) (*domain.Session, error)
	// ForgotPassword returns the backend's status message verbatim.
	ForgotPassword(ctx context.Context, email, tenantSlug string) (string, error)
	Logout(ctx context.Context) error
	// Current returns the stored session, or nil when signed out.
	Current(ctx context.Context) (*domain.Session, error)
	WhoAmI(ctx context.Context) (*Identity, error)
	LastTenant(ctx context.Context) (string, error)
}

type ProjectService interface {
	List(ctx context.Context) ([]domain.Project, error)
	Create(ctx context.Context, in domain.ProjectInput) (*domain.Project, error)
}

type TaskService interface {
	List(ctx context.Context) ([]domain.TaskItem, error)
	Create(ctx context.Context, in domain.TaskInput) (*domain.TaskItem, error)
}

type DashboardService interface {
	Org(ctx context.Context) (*OrgDashboard, error)
	System(ctx context.Context) (*SystemDashboard, error)
	Analytics(ctx context.Context) (analytics.ProjectSummary, error)
	// Notifications never fails; fetch errors collapse into a single
	// "Notifications unavailable" item.
	Notifications(ctx context.Context, role domain.Role) []notify.Item
}

type CalendarService interface {
	Month(ctx context.Context, month time.Time, role domain.Role) (*CalendarMonth, error)
	ScheduleUpdate(ctx context.Context, in domain.SystemUpdateInput) (*domain.SystemUpdateResult, error)
	EditUpdate(ctx context.Context, id int64, in domain.SystemUpdateInput) (*domain.SystemUpdateResult, error)
}

type SystemService interface {
	Organizations(ctx context.Context) ([]domain.SystemOrganization, error)
	Analytics(ctx context.Context) (*domain.SystemAnalytics, error)
	Logs(ctx context.Context, limit int) ([]domain.SystemLog, error)
	Tenants(ctx context.Context) ([]domain.SystemTenant, error)
	CreateTenant(ctx context.Context, in domain.TenantInput) (*domain.SystemTenant, error)
	UpdateTenant(ctx context.Context, id int64, in domain.TenantInput) (*domain.SystemTenant, error)
	Updates(ctx context.Context) ([]domain.SystemUpdate, error)
}

type CommunityService interface {
	Forum(ctx context.Context, query string) ([]domain.ForumPost, error)
	Post(ctx context.Context, in domain.ForumPostInput) (*domain.ForumPost, error)
	Issues(ctx context.Context, query string) ([]domain.Issue, error)
	ReportIssue(ctx context.Context, in domain.IssueInput) (*domain.Issue, error)
}

type SupportService interface {
	Request(ctx context.Context, in domain.SupportRequest) (string, error)
	TestNotification(ctx context.Context, in domain.TestNotification) (string, error)
}

type ProfileService interface {
	Show(ctx context.Context) (*domain.AuthUser, error)
	Rename(ctx context.Context, name string) (*domain.AuthUser, error)
}

type SettingsService interface {
	Get(ctx context.Context) (domain.WorkspaceSettings, error)
	Save(ctx context.Context, settings domain.WorkspaceSettings) (domain.WorkspaceSettings, error)
	// Set changes one field by its JSON name.
	Set(ctx context.Context, key, value string) (domain.WorkspaceSettings, error)
}
