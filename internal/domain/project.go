package domain

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type Project struct {
	ID           int64         `json:"id"`
	TenantID     string        `json:"tenant_id"`
	Name         string        `json:"name"`
	Status       ProjectStatus `json:"status"`
	Assignees    []string      `json:"assignees"`
	StartDate    *time.Time    `json:"start_date,omitempty"`
	DueDate      *time.Time    `json:"due_date,omitempty"`
	DurationDays int           `json:"duration_days"`
	TeamSize     int           `json:"team_size"`
	CreatedAt    time.Time     `json:"created_at"`
}

// ProjectInput is the body accepted by project creation.
type ProjectInput struct {
	Name         string        `json:"name"`
	Status       ProjectStatus `json:"status"`
	Assignees    []string      `json:"assignees"`
	StartDate    string        `json:"start_date"`
	DurationDays int           `json:"duration_days"`
	TeamSize     int           `json:"team_size"`
}

// Normalize trims fields and applies the default status.
func (in *ProjectInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.StartDate = strings.TrimSpace(in.StartDate)
	if in.Status == "" {
		in.Status = ProjectActive
	}
	in.Assignees = CleanList(in.Assignees)
}

func (in *ProjectInput) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if _, err := ParseEnum(string(in.Status), ProjectStatuses); err != nil {
		return fmt.Errorf("project status: %w", err)
	}
	if _, err := time.Parse(DateLayout, in.StartDate); err != nil {
		return fmt.Errorf("start date must use YYYY-MM-DD")
	}
	if in.DurationDays < 1 || in.DurationDays > 3650 {
		return fmt.Errorf("duration days must be between 1 and 3650")
	}
	if in.TeamSize < 1 || in.TeamSize > 10000 {
		return fmt.Errorf("team size must be between 1 and 10000")
	}
	return nil
}

// CleanList trims entries and drops blanks.
func CleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SplitList parses a comma-separated form value.
func SplitList(s string) []string {
	return CleanList(strings.Split(s, ","))
}
