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

type projectsView struct {
	state    *SharedState
	load     loader
	form     formPanel
	projects []domain.Project
}

type projectsLoadedMsg struct {
	projects []domain.Project
	err      error
}

type projectCreatedMsg struct {
	project *domain.Project
	err     error
}

func newProjectsView(state *SharedState) *projectsView {
	return &projectsView{state: state, load: newLoader()}
}

func (v *projectsView) Init() tea.Cmd { return v.reload() }

func (v *projectsView) reload() tea.Cmd {
	return v.load.start(fetch(v.state.App.Projects.List, func(ps []domain.Project, err error) tea.Msg {
		return projectsLoadedMsg{projects: ps, err: err}
	}))
}

func (v *projectsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		v.load.done(msg.err)
		v.projects = msg.projects
		return v, nil
	case projectCreatedMsg:
		if msg.err != nil {
			return v, flash(formatter.ErrorLine(msg.err))
		}
		v.projects = prepend(v.projects, *msg.project)
		return v, flash(formatter.StyleGreen.Render(fmt.Sprintf("Created project %s [#%d]", msg.project.Name, msg.project.ID)))
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
			return v, v.openForm()
		}
	}
	return v, nil
}

func (v *projectsView) openForm() tea.Cmd {
	values := &projectFormValues{
		Status:    domain.ProjectActive,
		StartDate: v.state.App.now().Format(domain.DateLayout),
		Duration:  "14",
		TeamSize:  "1",
	}
	app := v.state.App
	return v.form.open("New project", projectForm(values), func() tea.Cmd {
		in := values.input()
		return func() tea.Msg { return createProject(app, in) }
	})
}

// createProject submits in and reports the result as a projectCreatedMsg.
func createProject(app *App, in domain.ProjectInput) tea.Msg {
	p, err := app.Projects.Create(context.Background(), in)
	return projectCreatedMsg{project: p, err: err}
}

func (v *projectsView) View() string {
	if v.form.active() {
		return v.form.view()
	}
	return v.load.render(func() string {
		return formatter.FormatProjects(v.projects, v.state.App.now())
	})
}

func (v *projectsView) Page() navigation.Page { return navigation.Projects }

func (v *projectsView) ShortHelp() []key.Binding {
	if v.form.active() {
		return nil
	}
	return []key.Binding{keyNew, keyReload}
}

func (v *projectsView) CapturesInput() bool { return v.form.active() }

// prepend puts item first. This is the optimistic local update after a
// create; the list is not refetched.
func prepend[T any](items []T, item T) []T {
	return append([]T{item}, items...)
}
