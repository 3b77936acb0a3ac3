package service

import (
	"context"

	"github.com/pulseforge/pulseforge/internal/api"
	"github.com/pulseforge/pulseforge/internal/domain"
)

type projectService struct {
	client   api.Client
	observer UseCaseObserver
}

func NewProjectService(client api.Client, observers ...UseCaseObserver) ProjectService {
	return &projectService{client: client, observer: useCaseObserverOrNoop(observers)}
}

func (s *projectService) List(ctx context.Context) (projects []domain.Project, err error) {
	t := track(s.observer, "project.list")
	defer func() { t.finish(ctx, err) }()

	projects, err = s.client.ListProjects(ctx)
	t.set("count", len(projects))
	return projects, err
}

func (s *projectService) Create(ctx context.Context, in domain.ProjectInput) (p *domain.Project, err error) {
	t := track(s.observer, "project.create")
	defer func() { t.finish(ctx, err) }()

	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, invalidErr("project", err)
	}
	return s.client.CreateProject(ctx, in)
}

type taskService struct {
	client   api.Client
	observer UseCaseObserver
}

func NewTaskService(client api.Client, observers ...UseCaseObserver) TaskService {
	return &taskService{client: client, observer: useCaseObserverOrNoop(observers)}
}

func (s *taskService) List(ctx context.Context) (tasks []domain.TaskItem, err error) {
	t := track(s.observer, "task.list")
	defer func() { t.finish(ctx, err) }()

	tasks, err = s.client.ListTasks(ctx)
	t.set("count", len(tasks))
	return tasks, err
}

func (s *taskService) Create(ctx context.Context, in domain.TaskInput) (task *domain.TaskItem, err error) {
	t := track(s.observer, "task.create")
	defer func() { t.finish(ctx, err) }()

	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, invalidErr("task", err)
	}
	t.set("project_id", in.ProjectID)
	return s.client.CreateTask(ctx, in)
}
