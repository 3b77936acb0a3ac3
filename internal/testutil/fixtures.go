package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pulseforge/pulseforge/internal/domain"
)

// JWTSecret signs every token minted by tests and the fake backend.
var JWTSecret = []byte("pulseforge-test-secret")

var testIDCounter atomic.Int64

func nextID() int64 { return testIDCounter.Add(1) }

// Day returns midnight UTC for the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithStartDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &d
	}
}

func WithDueDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.DueDate = &d
	}
}

func WithAssignees(names ...string) ProjectOption {
	return func(p *domain.Project) {
		p.Assignees = names
	}
}

func NewTestProject(name string, opts ...ProjectOption) domain.Project {
	now := time.Now().UTC()
	p := domain.Project{
		ID:           nextID(),
		TenantID:     "acme",
		Name:         name,
		Status:       domain.ProjectActive,
		Assignees:    []string{},
		DurationDays: 14,
		TeamSize:     3,
		CreatedAt:    now,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Task options
type TaskOption func(*domain.TaskItem)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.TaskItem) {
		t.Status = s
	}
}

func WithPriority(p domain.TaskPriority) TaskOption {
	return func(t *domain.TaskItem) {
		t.Priority = p
	}
}

func WithProject(p domain.Project) TaskOption {
	return func(t *domain.TaskItem) {
		t.ProjectID = p.ID
		t.ProjectName = p.Name
	}
}

func NewTestTask(title string, opts ...TaskOption) domain.TaskItem {
	t := domain.TaskItem{
		ID:        nextID(),
		TenantID:  "acme",
		Title:     title,
		Status:    domain.TaskTodo,
		Priority:  domain.PriorityMedium,
		Subtasks:  []string{},
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// NewTestUser returns an org admin of the acme tenant.
func NewTestUser() domain.AuthUser {
	return domain.AuthUser{
		ID:         fmt.Sprintf("%07d", 1000000+nextID()),
		Name:       "Ada Lovelace",
		Email:      "ada@acme.test",
		TenantSlug: "acme",
		TenantName: "Acme Corp",
		Role:       domain.RoleOrgAdmin,
	}
}

// NewTestSession returns a session for user carrying a token minted from it.
func NewTestSession(t *testing.T, user domain.AuthUser) *domain.Session {
	t.Helper()
	return &domain.Session{Token: MintToken(t, ClaimsFor(user, time.Hour)), User: user}
}

// ClaimsFor builds the claim set the backend issues for user.
func ClaimsFor(user domain.AuthUser, ttl time.Duration) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":         user.ID,
		"tenant_id":   user.TenantSlug,
		"tenant_name": user.TenantName,
		"tenant_logo": user.TenantLogo,
		"email":       user.Email,
		"name":        user.Name,
		"role":        string(user.Role),
		"iat":         now.Unix(),
		"exp":         now.Add(ttl).Unix(),
	}
}

// MintToken signs claims with JWTSecret.
func MintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JWTSecret)
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return token
}
