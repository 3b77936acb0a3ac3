package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pulseforge/pulseforge/internal/cli/formatter"
	"github.com/pulseforge/pulseforge/internal/navigation"
)

// appModel is the root bubbletea Model for the TUI.
// It hosts exactly one page at a time next to the role's sidebar.
type appModel struct {
	state    *SharedState
	view     View
	flash    string
	checking bool
	quitting bool

	// Scrolls page content taller than the terminal.
	vp viewport.Model
}

func newAppModel(app *App) appModel {
	vp := viewport.New(0, 0)
	vp.KeyMap = contentViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return appModel{
		state:    &SharedState{App: app},
		checking: true,
		vp:       vp,
	}
}

func (m appModel) Init() tea.Cmd {
	auth := m.state.App.Auth
	return func() tea.Msg {
		sess, err := auth.Current(context.Background())
		return sessionCheckedMsg{session: sess, err: err}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.vp.Width = m.state.ContentWidth()
		m.vp.Height = m.state.ContentHeight()
		return m.forward(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.view != nil && m.state.User != nil {
			m.vp.SetContent(m.view.View())
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
		return m, nil

	case sessionCheckedMsg:
		m.checking = false
		if msg.err != nil {
			m.flash = formatter.ErrorLine(msg.err)
		}
		if msg.err != nil || msg.session == nil {
			return m.showAuth()
		}
		user := msg.session.User
		m.state.User = &user
		return m.open(navigation.Dashboard)

	case signedInMsg:
		user := msg.session.User
		m.state.User = &user
		m.flash = formatter.StyleGreen.Render("Signed in as " + user.DisplayName())
		return m.open(navigation.Dashboard)

	case signedOutMsg:
		m.state.User = nil
		m.flash = formatter.Dim("Signed out.")
		return m.showAuth()

	case openPageMsg:
		if m.state.User == nil {
			return m, nil
		}
		if !navigation.Allowed(m.state.Role(), msg.page) {
			m.flash = formatter.StyleYellow.Render("That page is not available for your role.")
			return m, nil
		}
		return m.open(msg.page)

	case flashMsg:
		m.flash = msg.text
		return m, nil
	}

	return m.forward(msg)
}

func (m appModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.view == nil {
		return m, nil
	}
	updated, cmd := m.view.Update(msg)
	m.view = updated.(View)
	return m, cmd
}

func (m appModel) showAuth() (tea.Model, tea.Cmd) {
	m.view = newAuthView(m.state)
	return m, m.view.Init()
}

func (m appModel) open(page navigation.Page) (tea.Model, tea.Cmd) {
	m.view = newPageView(m.state, page)
	m.vp.GotoTop()
	return m, m.view.Init()
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// Forms and search fields own the keyboard.
	if m.view != nil && m.view.CapturesInput() {
		return m.forward(msg)
	}

	if msg.String() == "q" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.state.User == nil {
		return m.forward(msg)
	}

	m.flash = ""
	role := m.state.Role()

	switch {
	case isContentScrollKey(msg):
		if m.view != nil {
			m.vp.SetContent(m.view.View())
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd

	case len(msg.Runes) == 1 && msg.Runes[0] >= '0' && msg.Runes[0] <= '9':
		idx := int(msg.Runes[0]-'0') - 1
		if idx < 0 {
			idx = 9
		}
		if items := navigation.Sidebar(role); idx < len(items) {
			return m.open(items[idx].Page)
		}
		return m, nil

	case msg.Type == tea.KeyTab || msg.Type == tea.KeyShiftTab:
		delta := 1
		if msg.Type == tea.KeyShiftTab {
			delta = -1
		}
		return m.open(cyclePage(navigation.NavPages(role), m.currentPage(), delta))

	case msg.String() == "L":
		auth := m.state.App.Auth
		return m, func() tea.Msg {
			if err := auth.Logout(context.Background()); err != nil {
				return flashMsg{text: formatter.ErrorLine(err)}
			}
			return signedOutMsg{}
		}
	}

	return m.forward(msg)
}

func (m appModel) currentPage() navigation.Page {
	if m.view == nil {
		return ""
	}
	return m.view.Page()
}

// cyclePage steps through the nav tabs. Pages outside the tabs start from
// the first tab.
func cyclePage(items []navigation.Item, current navigation.Page, delta int) navigation.Page {
	if len(items) == 0 {
		return navigation.Dashboard
	}
	idx := -1
	for i, it := range items {
		if it.Page == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return items[0].Page
	}
	n := len(items)
	return items[((idx+delta)%n+n)%n].Page
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}
	if m.checking || m.view == nil {
		return "\n  " + formatter.Dim("Checking session...")
	}

	if m.state.User == nil {
		sections := []string{
			formatter.StyleHeader.Render("PULSEFORGE"),
			m.view.View(),
			m.renderStatusBar(),
		}
		return m.pad(strings.Join(sections, "\n"))
	}

	role := m.state.Role()
	page := m.view.Page()

	body := m.view.View()
	if m.vp.Height > 0 {
		vp := m.vp
		vp.SetContent(body)
		body = vp.View()
	}

	content := strings.Join([]string{
		formatter.StyleHeader.Render(navigation.HeaderTitle(role, page)),
		formatter.RenderNav(role, page),
		"",
		body,
		m.renderStatusBar(),
	}, "\n")

	sidebar := formatter.RenderSidebar(m.state.User, page)
	return m.pad(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", content))
}

// pad fills to terminal height so the alt-screen renderer leaves no stale
// lines behind.
func (m appModel) pad(s string) string {
	if m.state.Height > 0 {
		lines := strings.Count(s, "\n") + 1
		if lines < m.state.Height {
			s += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return s
}

func (m appModel) renderStatusBar() string {
	var hints []string
	if m.view != nil {
		for _, b := range m.view.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if m.view == nil || !m.view.CapturesInput() {
		if m.state.User != nil {
			hints = append(hints, formatter.Dim("1-9: page"), formatter.Dim("tab: next"), formatter.Dim("L: sign out"))
		}
		hints = append(hints, formatter.Dim("q: quit"))
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.ContentWidth(), 20)))
	bar := sep + "\n" + strings.Join(hints, "  ")
	if m.flash != "" {
		bar = m.flash + "\n" + bar
	}
	return bar
}

// contentViewportKeyMap leaves the arrow keys to the pages.
func contentViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
	}
}

func isContentScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyPgUp, tea.KeyPgDown, tea.KeyCtrlU, tea.KeyCtrlD:
		return true
	}
	return false
}
