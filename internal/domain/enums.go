package domain

import "fmt"

type Role string

const (
	RoleSystemAdmin Role = "system_admin"
	RoleOrgAdmin    Role = "org_admin"
)

// NormalizeRole maps anything other than system_admin to org_admin.
func NormalizeRole(s string) Role {
	if Role(s) == RoleSystemAdmin {
		return RoleSystemAdmin
	}
	return RoleOrgAdmin
}

func (r Role) IsSystemAdmin() bool { return r == RoleSystemAdmin }

type ProjectStatus string

const (
	ProjectActive  ProjectStatus = "active"
	ProjectDone    ProjectStatus = "done"
	ProjectBlocked ProjectStatus = "blocked"
)

// ProjectStatuses lists accepted project statuses in display order.
var ProjectStatuses = []ProjectStatus{ProjectActive, ProjectDone, ProjectBlocked}

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskDone}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

var TaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

type IssueSeverity string

const (
	SeverityLow      IssueSeverity = "low"
	SeverityMedium   IssueSeverity = "medium"
	SeverityHigh     IssueSeverity = "high"
	SeverityCritical IssueSeverity = "critical"
)

var IssueSeverities = []IssueSeverity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

type SupportPriority string

const (
	SupportLow    SupportPriority = "low"
	SupportNormal SupportPriority = "normal"
	SupportHigh   SupportPriority = "high"
)

var SupportPriorities = []SupportPriority{SupportLow, SupportNormal, SupportHigh}

// ParseEnum returns s as T if it is one of allowed.
func ParseEnum[T ~string](s string, allowed []T) (T, error) {
	for _, a := range allowed {
		if string(a) == s {
			return a, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("invalid value %q (allowed: %s)", s, joinEnum(allowed))
}

func joinEnum[T ~string](values []T) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += string(v)
	}
	return out
}
