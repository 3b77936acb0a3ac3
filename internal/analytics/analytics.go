// Package analytics derives summary figures and chart geometry from
// backend data. Every function is pure.
package analytics

import (
	"math"

	"github.com/pulseforge/pulseforge/internal/domain"
)

// Percent returns value as a rounded percentage of total, clamped to [0, 100].
func Percent(value, total int64) int {
	if total <= 0 {
		return 0
	}
	p := math.Round(float64(value) / float64(total) * 100)
	return int(math.Max(0, math.Min(100, p)))
}

type ProjectSummary struct {
	Total       int64
	Active      int64
	Done        int64
	Blocked     int64
	Completion  int
	ActiveRate  int
	BlockerRate int
}

func SummarizeProjects(projects []domain.Project) ProjectSummary {
	var s ProjectSummary
	for _, p := range projects {
		s.Total++
		switch p.Status {
		case domain.ProjectActive:
			s.Active++
		case domain.ProjectDone:
			s.Done++
		case domain.ProjectBlocked:
			s.Blocked++
		}
	}
	s.Completion = Percent(s.Done, s.Total)
	s.ActiveRate = Percent(s.Active, s.Total)
	s.BlockerRate = Percent(s.Blocked, s.Total)
	return s
}

// Distribution is one bar of the status breakdown.
type Distribution struct {
	Label   string
	Value   int64
	Percent int
}

// StatusBars returns the Done, Active and Blocked bars in display order.
func (s ProjectSummary) StatusBars() []Distribution {
	return []Distribution{
		{Label: "Done", Value: s.Done, Percent: Percent(s.Done, s.Total)},
		{Label: "Active", Value: s.Active, Percent: Percent(s.Active, s.Total)},
		{Label: "Blocked", Value: s.Blocked, Percent: Percent(s.Blocked, s.Total)},
	}
}

type TaskSummary struct {
	Total      int64
	Todo       int64
	InProgress int64
	Done       int64
	Completion int
}

func SummarizeTasks(tasks []domain.TaskItem) TaskSummary {
	var s TaskSummary
	for _, t := range tasks {
		s.Total++
		switch t.Status {
		case domain.TaskTodo:
			s.Todo++
		case domain.TaskInProgress:
			s.InProgress++
		case domain.TaskDone:
			s.Done++
		}
	}
	s.Completion = Percent(s.Done, s.Total)
	return s
}

// TenantHealth is the one-line load assessment shown per organization.
func TenantHealth(org domain.SystemOrganization) string {
	switch {
	case org.TaskCount == 0:
		return "No task data yet"
	case org.TaskCount > org.ProjectCount*5:
		return "High task load"
	default:
		return "Stable"
	}
}
