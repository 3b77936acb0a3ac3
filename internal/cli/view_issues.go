package cli

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pulseforge/pulseforge/internal/cli/formatter"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/navigation"
)

type issuesView struct {
	state    *SharedState
	load     loader
	form     formPanel
	search   searchBar
	issues   []domain.Issue
	projects []domain.Project
}

type issuesLoadedMsg struct {
	issues   []domain.Issue
	projects []domain.Project
	err      error
}

type issueReportedMsg struct {
	issue *domain.Issue
	err   error
}

func newIssuesView(state *SharedState) *issuesView {
	return &issuesView{state: state, load: newLoader(), search: newSearchBar("title, severity, status or project")}
}

func (v *issuesView) Init() tea.Cmd { return v.reload() }

type issuePage struct {
	issues   []domain.Issue
	projects []domain.Project
}

func (v *issuesView) reload() tea.Cmd {
	query, app := v.search.query, v.state.App
	return v.load.start(fetch(func(ctx context.Context) (issuePage, error) {
		issues, err := app.Community.Issues(ctx, query)
		if err != nil {
			return issuePage{}, err
		}
		// The project select is optional; a failed list leaves it empty.
		projects, _ := app.Projects.List(ctx)
		return issuePage{issues: issues, projects: projects}, nil
	}, func(p issuePage, err error) tea.Msg {
		return issuesLoadedMsg{issues: p.issues, projects: p.projects, err: err}
	}))
}

func (v *issuesView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case issuesLoadedMsg:
		v.load.done(msg.err)
		v.issues, v.projects = msg.issues, msg.projects
		return v, nil
	case issueReportedMsg:
		if msg.err != nil {
			return v, flash(formatter.ErrorLine(msg.err))
		}
		v.issues = prepend(v.issues, *msg.issue)
		return v, flash(formatter.StyleGreen.Render("Reported issue " + msg.issue.Title))
	case spinner.TickMsg:
		return v, v.load.update(msg)
	}

	if v.form.active() {
		return v, v.form.update(msg)
	}
	if v.search.focused() {
		submitted, cmd := v.search.update(msg)
		if submitted {
			return v, v.reload()
		}
		return v, cmd
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keyReload):
			return v, v.reload()
		case key.Matches(k, keySearch):
			return v, v.search.focus()
		case key.Matches(k, keyNew):
			values := &issueFormValues{Severity: domain.SeverityMedium}
			community := v.state.App.Community
			return v, v.form.open("Report issue", issueForm(values, v.projects), func() tea.Cmd {
				in := values.input()
				return func() tea.Msg {
					is, err := community.ReportIssue(context.Background(), in)
					return issueReportedMsg{issue: is, err: err}
				}
			})
		}
	}
	return v, nil
}

func (v *issuesView) View() string {
	if v.form.active() {
		return v.form.view()
	}
	return v.search.view() + v.load.render(func() string {
		return formatter.FormatIssues(v.issues)
	})
}

func (v *issuesView) Page() navigation.Page { return navigation.Issues }

func (v *issuesView) ShortHelp() []key.Binding {
	if v.CapturesInput() {
		return nil
	}
	return []key.Binding{keyNew, keySearch, keyReload}
}

func (v *issuesView) CapturesInput() bool { return v.form.active() || v.search.focused() }
