package service

import (
	"context"
	"sync"
	"time"

	"github.com/pulseforge/pulseforge/internal/analytics"
	"github.com/pulseforge/pulseforge/internal/api"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/notify"
)

// RecentProjectCount is how many projects the org dashboard lists.
const RecentProjectCount = 5

type OrgDashboard struct {
	Projects      []domain.Project
	Tasks         []domain.TaskItem
	Recent        []domain.Project
	ProjectStats  analytics.ProjectSummary
	TaskStats     analytics.TaskSummary
	Notifications []notify.Item
}

type SystemDashboard struct {
	Analytics     domain.SystemAnalytics
	Organizations []domain.SystemOrganization
	Pie           analytics.PieGeometry
	Line          analytics.LineGeometry
}

type dashboardService struct {
	client   api.Client
	now      func() time.Time
	observer UseCaseObserver
}

func NewDashboardService(client api.Client, observers ...UseCaseObserver) DashboardService {
	return &dashboardService{client: client, now: time.Now, observer: useCaseObserverOrNoop(observers)}
}

func (s *dashboardService) Org(ctx context.Context) (d *OrgDashboard, err error) {
	t := track(s.observer, "dashboard.org")
	defer func() { t.finish(ctx, err) }()

	projects, err := s.client.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.client.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	recent := projects
	if len(recent) > RecentProjectCount {
		recent = recent[:RecentProjectCount]
	}
	return &OrgDashboard{
		Projects:      projects,
		Tasks:         tasks,
		Recent:        append([]domain.Project(nil), recent...),
		ProjectStats:  analytics.SummarizeProjects(projects),
		TaskStats:     analytics.SummarizeTasks(tasks),
		Notifications: notify.Build(s.now(), domain.RoleOrgAdmin, projects, tasks, nil),
	}, nil
}

// System fetches analytics and organizations in parallel. The first
// failure is returned.
func (s *dashboardService) System(ctx context.Context) (d *SystemDashboard, err error) {
	t := track(s.observer, "dashboard.system")
	defer func() { t.finish(ctx, err) }()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		stats    *domain.SystemAnalytics
		orgs     []domain.SystemOrganization
	)
	fail := func(e error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = e
		}
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		res, e := s.client.SystemAnalytics(ctx)
		if e != nil {
			fail(e)
			return
		}
		stats = res
	}()
	go func() {
		defer wg.Done()
		res, e := s.client.ListOrganizations(ctx)
		if e != nil {
			fail(e)
			return
		}
		orgs = res
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if stats == nil {
		stats = &domain.SystemAnalytics{}
	}
	t.set("organizations", len(orgs))
	return &SystemDashboard{
		Analytics:     *stats,
		Organizations: orgs,
		Pie:           analytics.Pie(stats.ActiveUsers7d, stats.UserCount),
		Line:          analytics.Line(orgs),
	}, nil
}

func (s *dashboardService) Analytics(ctx context.Context) (summary analytics.ProjectSummary, err error) {
	t := track(s.observer, "dashboard.analytics")
	defer func() { t.finish(ctx, err) }()

	projects, err := s.client.ListProjects(ctx)
	if err != nil {
		return analytics.ProjectSummary{}, err
	}
	return analytics.SummarizeProjects(projects), nil
}

func (s *dashboardService) Notifications(ctx context.Context, role domain.Role) []notify.Item {
	var err error
	t := track(s.observer, "dashboard.notifications")
	defer func() { t.finish(ctx, err) }()

	projects, err := s.client.ListProjects(ctx)
	if err != nil {
		return notify.Unavailable()
	}
	tasks, err := s.client.ListTasks(ctx)
	if err != nil {
		return notify.Unavailable()
	}
	var logs []domain.SystemLog
	if role.IsSystemAdmin() {
		if logs, err = s.client.ListLogs(ctx, notify.LogLimit); err != nil {
			return notify.Unavailable()
		}
	}
	items := notify.Build(s.now(), role, projects, tasks, logs)
	t.set("count", len(items))
	return items
}
