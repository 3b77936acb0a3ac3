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

var keyRename = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename"))

type profileView struct {
	state *SharedState
	load  loader
	form  formPanel
	user  *domain.AuthUser
}

type profileLoadedMsg struct {
	user *domain.AuthUser
	err  error
}

type profileRenamedMsg struct {
	user *domain.AuthUser
	err  error
}

func newProfileView(state *SharedState) *profileView {
	return &profileView{state: state, load: newLoader()}
}

func (v *profileView) Init() tea.Cmd { return v.reload() }

func (v *profileView) reload() tea.Cmd {
	return v.load.start(fetch(v.state.App.Profile.Show, func(u *domain.AuthUser, err error) tea.Msg {
		return profileLoadedMsg{user: u, err: err}
	}))
}

func (v *profileView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		v.load.done(msg.err)
		v.user = msg.user
		return v, nil
	case profileRenamedMsg:
		if msg.err != nil {
			return v, flash(formatter.ErrorLine(msg.err))
		}
		v.user = msg.user
		// The sidebar reads the shared user.
		if v.state.User != nil {
			v.state.User.Name = msg.user.Name
		}
		return v, flash(formatter.StyleGreen.Render("Display name set to " + msg.user.Name))
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
		case key.Matches(k, keyRename) && v.user != nil:
			name := v.user.Name
			profile := v.state.App.Profile
			return v, v.form.open("Rename", renameForm(&name), func() tea.Cmd {
				return func() tea.Msg {
					u, err := profile.Rename(context.Background(), name)
					return profileRenamedMsg{user: u, err: err}
				}
			})
		}
	}
	return v, nil
}

func (v *profileView) View() string {
	if v.form.active() {
		return v.form.view()
	}
	return v.load.render(func() string {
		if v.user == nil {
			return ""
		}
		return formatter.FormatProfile(v.user)
	})
}

func (v *profileView) Page() navigation.Page { return navigation.Profile }

func (v *profileView) ShortHelp() []key.Binding {
	if v.form.active() {
		return nil
	}
	return []key.Binding{keyRename, keyReload}
}

func (v *profileView) CapturesInput() bool { return v.form.active() }
