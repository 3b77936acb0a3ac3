package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pulseforge/pulseforge/internal/cli/formatter"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/navigation"
)

type tasksView struct {
	state    *SharedState
	load     loader
	form     formPanel
	tasks    []domain.TaskItem
	projects []domain.Project
}

type tasksLoadedMsg struct {
	tasks    []domain.TaskItem
	projects []domain.Project
	err      error
}

type taskCreatedMsg struct {
	task *domain.TaskItem
	err  error
}

func newTasksView(state *SharedState) *tasksView {
	return &tasksView{state: state, load: newLoader()}
}

func (v *tasksView) Init() tea.Cmd { return v.reload() }

type taskPage struct {
	tasks    []domain.TaskItem
	projects []domain.Project
}

func (v *tasksView) reload() tea.Cmd {
	app := v.state.App
	return v.load.start(fetch(func(ctx context.Context) (taskPage, error) {
		tasks, err := app.Tasks.List(ctx)
		if err != nil {
			return taskPage{}, err
		}
		projects, err := app.Projects.List(ctx)
		return taskPage{tasks: tasks, projects: projects}, err
	}, func(p taskPage, err error) tea.Msg {
		return tasksLoadedMsg{tasks: p.tasks, projects: p.projects, err: err}
	}))
}

func (v *tasksView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		v.load.done(msg.err)
		v.tasks, v.projects = msg.tasks, msg.projects
		return v, nil
	case taskCreatedMsg:
		if msg.err != nil {
			return v, flash(formatter.ErrorLine(msg.err))
		}
		v.tasks = prepend(v.tasks, *msg.task)
		return v, flash(formatter.StyleGreen.Render(fmt.Sprintf("Created task %s [#%d]", msg.task.Title, msg.task.ID)))
	case spinner.TickMsg:
		return v, v.load.update(msg)
	}

	if v.form.active() {
		return v, v.form.update(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keyReload):
			return v, v.reload()
		case key.Matches(k, keyNew):
			if len(v.projects) == 0 {
				return v, tea.Batch(openPage(navigation.Projects), flash(formatter.StyleYellow.Render("Create a project first.")))
			}
			return v, v.openForm()
		}
	}
	return v, nil
}

func (v *tasksView) openForm() tea.Cmd {
	values := &taskFormValues{
		ProjectID: v.projects[0].ID,
		Status:    domain.TaskTodo,
		Priority:  domain.PriorityMedium,
	}
	app := v.state.App
	return v.form.open("New task", taskForm(values, v.projects), func() tea.Cmd {
		in := values.input()
		return func() tea.Msg { return createTask(app, in) }
	})
}

func createTask(app *App, in domain.TaskInput) tea.Msg {
	t, err := app.Tasks.Create(context.Background(), in)
	return taskCreatedMsg{task: t, err: err}
}

func (v *tasksView) View() string {
	if v.form.active() {
		return v.form.view()
	}
	return v.load.render(func() string { return formatter.FormatTasks(v.tasks) })
}

func (v *tasksView) Page() navigation.Page { return navigation.Tasks }

func (v *tasksView) ShortHelp() []key.Binding {
	if v.form.active() {
		return nil
	}
	return []key.Binding{keyNew, keyReload}
}

func (v *tasksView) CapturesInput() bool { return v.form.active() }
