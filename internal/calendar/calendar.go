// Package calendar lays out Monday-first month grids and indexes
// projects, tasks and system updates by day.
package calendar

import (
	"errors"
	"strings"
	"time"

	"github.com/pulseforge/pulseforge/internal/domain"
)

// DisplayCap is how many entries of each kind a day cell shows.
const DisplayCap = 2

var ErrScheduledDate = errors.New("Select a date after today.")

// Weekdays are the grid column headings.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Cell is one grid slot. Blank cells pad the month to whole weeks.
type Cell struct {
	Date  time.Time
	Blank bool
}

// MonthStart returns midnight on the first of t's month, in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// ShiftMonth moves month by delta months, keeping the first of the month.
func ShiftMonth(month time.Time, delta int) time.Time {
	return MonthStart(month).AddDate(0, delta, 0)
}

// MonthGrid returns the cells for month, starting on Monday.
func MonthGrid(month time.Time) []Cell {
	start := MonthStart(month)
	lead := (int(start.Weekday()) + 6) % 7
	days := start.AddDate(0, 1, -1).Day()

	cells := make([]Cell, 0, 42)
	for range lead {
		cells = append(cells, Cell{Blank: true})
	}
	for d := range days {
		cells = append(cells, Cell{Date: start.AddDate(0, 0, d)})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, Cell{Blank: true})
	}
	return cells
}

// DayEvents is everything scheduled on one day.
type DayEvents struct {
	Starts   []domain.Project
	Dues     []domain.Project
	Updates  []domain.SystemUpdate
	DueTasks []domain.TaskItem
}

func (d DayEvents) Empty() bool {
	return len(d.Starts) == 0 && len(d.Dues) == 0 && len(d.Updates) == 0 && len(d.DueTasks) == 0
}

func (d DayEvents) VisibleStarts() []domain.Project      { return capped(d.Starts) }
func (d DayEvents) VisibleDues() []domain.Project        { return capped(d.Dues) }
func (d DayEvents) VisibleUpdates() []domain.SystemUpdate { return capped(d.Updates) }

func capped[T any](items []T) []T {
	if len(items) > DisplayCap {
		return items[:DisplayCap]
	}
	return items
}

// Index maps calendar days to their events.
type Index struct {
	days map[string]*DayEvents
}

// NewIndex buckets project starts and deadlines, open tasks whose project
// is due, and system updates by calendar day.
func NewIndex(projects []domain.Project, tasks []domain.TaskItem, updates []domain.SystemUpdate) *Index {
	idx := &Index{days: map[string]*DayEvents{}}
	dueByProject := map[int64]time.Time{}

	for _, p := range projects {
		if p.StartDate != nil {
			e := idx.day(*p.StartDate)
			e.Starts = append(e.Starts, p)
		}
		if p.DueDate != nil {
			e := idx.day(*p.DueDate)
			e.Dues = append(e.Dues, p)
			dueByProject[p.ID] = *p.DueDate
		}
	}
	for _, t := range tasks {
		due, ok := dueByProject[t.ProjectID]
		if !ok || t.Status == domain.TaskDone {
			continue
		}
		e := idx.day(due)
		e.DueTasks = append(e.DueTasks, t)
	}
	for _, u := range updates {
		if at, ok := u.Scheduled(); ok {
			e := idx.day(at)
			e.Updates = append(e.Updates, u)
		}
	}
	return idx
}

// On returns the events of day. Only the calendar date of day is used.
func (i *Index) On(day time.Time) DayEvents {
	if e, ok := i.days[dayKey(day)]; ok {
		return *e
	}
	return DayEvents{}
}

func (i *Index) day(t time.Time) *DayEvents {
	k := dayKey(t)
	e, ok := i.days[k]
	if !ok {
		e = &DayEvents{}
		i.days[k] = e
	}
	return e
}

func dayKey(t time.Time) string { return t.Format(domain.DateLayout) }

// SameDay compares calendar dates, each in its own location.
func SameDay(a, b time.Time) bool { return dayKey(a) == dayKey(b) }

// ValidateScheduledDate parses a YYYY-MM-DD date that must fall after today.
func ValidateScheduledDate(date string, today time.Time) (time.Time, error) {
	d, err := time.ParseInLocation(domain.DateLayout, strings.TrimSpace(date), today.Location())
	if err != nil {
		return time.Time{}, ErrScheduledDate
	}
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if !d.After(midnight) {
		return time.Time{}, ErrScheduledDate
	}
	return d, nil
}
