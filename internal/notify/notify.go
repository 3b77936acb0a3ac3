// Package notify derives the header notification list from projects,
// tasks and, for system admins, recent request logs.
package notify

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pulseforge/pulseforge/internal/domain"
)

type Kind string

const (
	KindDue     Kind = "due"
	KindSupport Kind = "support"
	KindSystem  Kind = "system"
)

const (
	projectDueWithinDays = 3
	taskDueWithinDays    = 2

	// LogLimit is how many request logs are fetched for system admins.
	LogLimit    = 40
	maxLogItems = 8
	MaxItems    = 20
)

type Item struct {
	ID        string
	Kind      Kind
	Title     string
	Detail    string
	CreatedAt *time.Time
}

// DiffDays is the number of whole days until due, rounded up.
func DiffDays(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// Build assembles the notification list, capped at MaxItems. logs is only
// consulted for system admins.
func Build(now time.Time, role domain.Role, projects []domain.Project, tasks []domain.TaskItem, logs []domain.SystemLog) []Item {
	var out []Item
	byID := make(map[int64]domain.Project, len(projects))

	for _, p := range projects {
		byID[p.ID] = p
		if p.DueDate == nil {
			continue
		}
		diff := DiffDays(*p.DueDate, now)
		if diff > projectDueWithinDays {
			continue
		}
		detail := fmt.Sprintf("Due in %d day(s)", diff)
		if diff < 0 {
			detail = "Deadline passed"
		}
		out = append(out, Item{
			ID:        fmt.Sprintf("project-due-%d", p.ID),
			Kind:      KindDue,
			Title:     "Project due: " + p.Name,
			Detail:    detail,
			CreatedAt: p.DueDate,
		})
	}

	for _, t := range tasks {
		if t.Status == domain.TaskDone {
			continue
		}
		p, ok := byID[t.ProjectID]
		if !ok || p.DueDate == nil || DiffDays(*p.DueDate, now) > taskDueWithinDays {
			continue
		}
		out = append(out, Item{
			ID:        fmt.Sprintf("task-due-%d", t.ID),
			Kind:      KindDue,
			Title:     "Task due soon: " + t.Title,
			Detail:    fmt.Sprintf("%s due %s", domain.CoalesceStr(t.ProjectName, p.Name), p.DueDate.Format("Jan 2, 2006")),
			CreatedAt: p.DueDate,
		})
	}

	if role.IsSystemAdmin() {
		added := 0
		for _, l := range logs {
			if added == maxLogItems {
				break
			}
			if !strings.Contains(l.Path, "/support/request") && !strings.Contains(l.Path, "/system/") {
				continue
			}
			added++
			item := Item{
				ID:     fmt.Sprintf("sys-%d", l.ID),
				Kind:   KindSystem,
				Title:  "System update",
				Detail: fmt.Sprintf("%s %s (%d)", l.Method, l.Path, l.StatusCode),
			}
			if strings.Contains(l.Path, "/support/") {
				item.Kind = KindSupport
				item.Title = "Support activity"
			}
			if !l.CreatedAt.IsZero() {
				at := l.CreatedAt
				item.CreatedAt = &at
			}
			out = append(out, item)
		}
	}

	if len(out) > MaxItems {
		out = out[:MaxItems]
	}
	return out
}

// Unavailable is the list shown when any source failed to load.
func Unavailable() []Item {
	return []Item{{
		ID:     "notif-load-error",
		Kind:   KindSystem,
		Title:  "Notifications unavailable",
		Detail: "Could not load latest project/task alerts.",
	}}
}
