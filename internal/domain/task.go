package domain

import (
	"fmt"
	"strings"
	"time"
)

type TaskItem struct {
	ID          int64        `json:"id"`
	TenantID    string       `json:"tenant_id"`
	ProjectID   int64        `json:"project_id,omitempty"`
	ProjectName string       `json:"project_name,omitempty"`
	Title       string       `json:"title"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Subtasks    []string     `json:"subtasks"`
	CreatedAt   time.Time    `json:"created_at"`
}

type TaskInput struct {
	ProjectID int64        `json:"project_id"`
	Title     string       `json:"title"`
	Status    TaskStatus   `json:"status"`
	Priority  TaskPriority `json:"priority"`
	Subtasks  []string     `json:"subtasks"`
}

func (in *TaskInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	if in.Status == "" {
		in.Status = TaskTodo
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	in.Subtasks = CleanList(in.Subtasks)
}

func (in *TaskInput) Validate() error {
	if in.ProjectID <= 0 {
		return fmt.Errorf("select a project")
	}
	if in.Title == "" {
		return fmt.Errorf("task title is required")
	}
	if _, err := ParseEnum(string(in.Status), TaskStatuses); err != nil {
		return fmt.Errorf("task status: %w", err)
	}
	if _, err := ParseEnum(string(in.Priority), TaskPriorities); err != nil {
		return fmt.Errorf("task priority: %w", err)
	}
	return nil
}
