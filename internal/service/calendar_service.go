package service

import (
	"context"
	"time"

	"github.com/pulseforge/pulseforge/internal/api"
	"github.com/pulseforge/pulseforge/internal/calendar"
	"github.com/pulseforge/pulseforge/internal/domain"
)

// CalendarMonth is one rendered month plus the events behind it.
type CalendarMonth struct {
	Month    time.Time
	Today    time.Time
	Cells    []calendar.Cell
	Index    *calendar.Index
	Projects []domain.Project
	Tasks    []domain.TaskItem
	Updates  []domain.SystemUpdate
}

func (m *CalendarMonth) On(day time.Time) calendar.DayEvents { return m.Index.On(day) }

type calendarService struct {
	client   api.Client
	now      func() time.Time
	observer UseCaseObserver
}

func NewCalendarService(client api.Client, observers ...UseCaseObserver) CalendarService {
	return &calendarService{client: client, now: time.Now, observer: useCaseObserverOrNoop(observers)}
}

// Month loads projects and tasks, and system updates for system admins.
// When only the updates fail, the month comes back with the error.
func (s *calendarService) Month(ctx context.Context, month time.Time, role domain.Role) (m *CalendarMonth, err error) {
	t := track(s.observer, "calendar.month")
	defer func() { t.finish(ctx, err) }()

	if month.IsZero() {
		month = s.now()
	}
	month = calendar.MonthStart(month)
	t.set("month", month.Format("2006-01"))

	projects, err := s.client.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.client.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	// A failed updates fetch still returns the projects and tasks, with the error.
	var updates []domain.SystemUpdate
	if role.IsSystemAdmin() {
		updates, err = s.client.ListSystemUpdates(ctx)
		if err != nil {
			updates = nil
		}
	}

	return &CalendarMonth{
		Month:    month,
		Today:    s.now(),
		Cells:    calendar.MonthGrid(month),
		Index:    calendar.NewIndex(projects, tasks, updates),
		Projects: projects,
		Tasks:    tasks,
		Updates:  updates,
	}, err
}

func (s *calendarService) ScheduleUpdate(ctx context.Context, in domain.SystemUpdateInput) (res *domain.SystemUpdateResult, err error) {
	t := track(s.observer, "calendar.schedule_update")
	defer func() { t.finish(ctx, err) }()

	if err := s.validateUpdate(&in); err != nil {
		return nil, err
	}
	res, err = s.client.CreateSystemUpdate(ctx, in)
	if res != nil {
		t.set("recipients", res.Recipients)
	}
	return res, err
}

func (s *calendarService) EditUpdate(ctx context.Context, id int64, in domain.SystemUpdateInput) (res *domain.SystemUpdateResult, err error) {
	t := track(s.observer, "calendar.edit_update")
	defer func() { t.finish(ctx, err) }()

	if id <= 0 {
		return nil, invalid("id", "Select a system update to edit.")
	}
	if err := s.validateUpdate(&in); err != nil {
		return nil, err
	}
	t.set("id", id)
	return s.client.UpdateSystemUpdate(ctx, id, in)
}

func (s *calendarService) validateUpdate(in *domain.SystemUpdateInput) error {
	in.Normalize()
	if _, err := calendar.ValidateScheduledDate(in.ScheduledDate, s.now()); err != nil {
		return invalid("scheduled_date", err.Error())
	}
	if in.Title == "" || in.FeatureBrief == "" || in.Expectations == "" {
		return invalid("update", "Title, feature brief and expectations are required.")
	}
	return nil
}
