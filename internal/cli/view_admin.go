package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pulseforge/pulseforge/internal/api"
	"github.com/pulseforge/pulseforge/internal/cli/formatter"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/navigation"
	"github.com/pulseforge/pulseforge/internal/service"
)

const logLimitStep = 50

var (
	keySupport  = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "support request"))
	keyMoreLogs = key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "limit"))
	keyLessLogs = key.NewBinding(key.WithKeys("-"))
)

// adminView is the system admin Support page: request logs and the
// support request form. Org admins file requests from Settings.
type adminView struct {
	state *SharedState
	load  loader
	form  formPanel
	limit int
	logs  []domain.SystemLog
}

type logsLoadedMsg struct {
	logs []domain.SystemLog
	err  error
}

func newAdminView(state *SharedState) *adminView {
	return &adminView{state: state, load: newLoader(), limit: api.DefaultLogLimit}
}

func (v *adminView) Init() tea.Cmd { return v.reload() }

func (v *adminView) reload() tea.Cmd {
	limit, system := v.limit, v.state.App.System
	return v.load.start(fetch(func(ctx context.Context) ([]domain.SystemLog, error) {
		return system.Logs(ctx, limit)
	}, func(logs []domain.SystemLog, err error) tea.Msg {
		return logsLoadedMsg{logs: logs, err: err}
	}))
}

func (v *adminView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case logsLoadedMsg:
		v.load.done(msg.err)
		v.logs = msg.logs
		return v, nil
	case statusMsg:
		if msg.err != nil {
			return v, flash(formatter.ErrorLine(msg.err))
		}
		return v, flash(formatter.StyleGreen.Render(msg.status))
	case spinner.TickMsg:
		return v, v.load.update(msg)
	}

	if v.form.active() {
		return v, v.form.update(msg)
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	switch {
	case key.Matches(k, keyReload):
		return v, v.reload()
	case key.Matches(k, keyMoreLogs):
		return v, v.setLimit(v.limit + logLimitStep)
	case key.Matches(k, keyLessLogs):
		return v, v.setLimit(max(v.limit-logLimitStep, logLimitStep))
	case key.Matches(k, keySupport):
		in := &domain.SupportRequest{}
		support := v.state.App.Support
		return v, v.form.open("Support request", supportForm(in), func() tea.Cmd {
			return func() tea.Msg { return submitSupport(support, *in) }
		})
	}
	return v, nil
}

func (v *adminView) setLimit(limit int) tea.Cmd {
	limit = api.ClampLogLimit(limit)
	if limit == v.limit {
		return nil
	}
	v.limit = limit
	return v.reload()
}

func submitSupport(support service.SupportService, in domain.SupportRequest) tea.Msg {
	status, err := support.Request(context.Background(), in)
	return statusMsg{status: status, err: err}
}

func (v *adminView) View() string {
	if v.form.active() {
		return v.form.view()
	}
	intro := formatter.Dim("Press s to contact platform support.") + "\n"
	return intro + "\n" + v.load.render(func() string {
		return formatter.Bold(fmt.Sprintf("Request logs (latest %d)", v.limit)) + "\n" + formatter.FormatLogs(v.logs, v.state.App.now())
	})
}

func (v *adminView) Page() navigation.Page { return navigation.Admin }

func (v *adminView) ShortHelp() []key.Binding {
	if v.form.active() {
		return nil
	}
	return []key.Binding{keySupport, keyMoreLogs, keyReload}
}

func (v *adminView) CapturesInput() bool { return v.form.active() }
