package cli

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pulseforge/pulseforge/internal/cli/formatter"
	"github.com/pulseforge/pulseforge/internal/navigation"
	"github.com/pulseforge/pulseforge/internal/service"
)

// dashboardView shows the org overview, or the cross-tenant overview for
// system admins.
type dashboardView struct {
	state *SharedState
	load  loader
	org   *service.OrgDashboard
	sys   *service.SystemDashboard
}

type dashboardLoadedMsg struct {
	org *service.OrgDashboard
	sys *service.SystemDashboard
	err error
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{state: state, load: newLoader()}
}

func (v *dashboardView) Init() tea.Cmd { return v.reload() }

func (v *dashboardView) reload() tea.Cmd {
	dash := v.state.App.Dashboard
	if v.state.Role().IsSystemAdmin() {
		return v.load.start(fetch(dash.System, func(d *service.SystemDashboard, err error) tea.Msg {
			return dashboardLoadedMsg{sys: d, err: err}
		}))
	}
	return v.load.start(fetch(dash.Org, func(d *service.OrgDashboard, err error) tea.Msg {
		return dashboardLoadedMsg{org: d, err: err}
	}))
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.load.done(msg.err)
		v.org, v.sys = msg.org, msg.sys
		return v, nil
	case spinner.TickMsg:
		return v, v.load.update(msg)
	case tea.KeyMsg:
		if key.Matches(msg, keyReload) {
			return v, v.reload()
		}
	}
	return v, nil
}

func (v *dashboardView) View() string {
	return v.load.render(func() string {
		if v.sys != nil {
			return formatter.FormatSystemDashboard(v.sys)
		}
		if v.org != nil {
			return formatter.FormatOrgDashboard(v.org, v.state.App.now())
		}
		return ""
	})
}

func (v *dashboardView) Page() navigation.Page { return navigation.Dashboard }
func (v *dashboardView) ShortHelp() []key.Binding { return []key.Binding{keyReload} }
func (v *dashboardView) CapturesInput() bool { return false }
