package cli

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pulseforge/pulseforge/internal/analytics"
	"github.com/pulseforge/pulseforge/internal/cli/formatter"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/navigation"
)

type analyticsView struct {
	state   *SharedState
	load    loader
	summary *analytics.ProjectSummary
	system  *domain.SystemAnalytics
}

type analyticsLoadedMsg struct {
	summary *analytics.ProjectSummary
	system  *domain.SystemAnalytics
	err     error
}

func newAnalyticsView(state *SharedState) *analyticsView {
	return &analyticsView{state: state, load: newLoader()}
}

func (v *analyticsView) Init() tea.Cmd { return v.reload() }

func (v *analyticsView) reload() tea.Cmd {
	if v.state.Role().IsSystemAdmin() {
		return v.load.start(fetch(v.state.App.System.Analytics, func(a *domain.SystemAnalytics, err error) tea.Msg {
			return analyticsLoadedMsg{system: a, err: err}
		}))
	}
	return v.load.start(fetch(v.state.App.Dashboard.Analytics, func(s analytics.ProjectSummary, err error) tea.Msg {
		return analyticsLoadedMsg{summary: &s, err: err}
	}))
}

func (v *analyticsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case analyticsLoadedMsg:
		v.load.done(msg.err)
		v.summary, v.system = msg.summary, msg.system
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

func (v *analyticsView) View() string {
	return v.load.render(func() string {
		switch {
		case v.system != nil:
			return formatter.Header("Platform analytics") + "\n" + formatter.FormatSystemAnalytics(*v.system)
		case v.summary != nil:
			return formatter.FormatAnalytics(*v.summary)
		}
		return ""
	})
}

func (v *analyticsView) Page() navigation.Page { return navigation.Analytics }
func (v *analyticsView) ShortHelp() []key.Binding { return []key.Binding{keyReload} }
func (v *analyticsView) CapturesInput() bool { return false }
