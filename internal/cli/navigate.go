package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/navigation"
)

// Navigation messages used by views to request transitions.
// The appModel handles these in its Update method.

// openPageMsg replaces the active page.
type openPageMsg struct {
	page navigation.Page
}

// sessionCheckedMsg carries the stored session read at startup.
type sessionCheckedMsg struct {
	session *domain.Session
	err     error
}

// signedInMsg is sent by the auth view after a successful login or register.
type signedInMsg struct {
	session *domain.Session
}

type signedOutMsg struct{}

// flashMsg sets the one-line status shown above the key hints.
type flashMsg struct {
	text string
}

func openPage(p navigation.Page) tea.Cmd {
	return func() tea.Msg { return openPageMsg{page: p} }
}

func flash(text string) tea.Cmd {
	return func() tea.Msg { return flashMsg{text: text} }
}

// newPageView builds the view for page. Callers check navigation.Allowed first.
func newPageView(state *SharedState, page navigation.Page) View {
	switch page {
	case navigation.Projects:
		return newProjectsView(state)
	case navigation.Tasks:
		return newTasksView(state)
	case navigation.Analytics:
		return newAnalyticsView(state)
	case navigation.Calendar:
		return newCalendarView(state)
	case navigation.Profile:
		return newProfileView(state)
	case navigation.Forum:
		return newForumView(state)
	case navigation.Issues:
		return newIssuesView(state)
	case navigation.Settings:
		return newSettingsView(state)
	case navigation.Admin:
		return newAdminView(state)
	}
	return newDashboardView(state)
}
