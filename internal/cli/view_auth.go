package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/pulseforge/pulseforge/internal/cli/formatter"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/navigation"
	"github.com/pulseforge/pulseforge/internal/service"
)

var (
	keyLogin    = key.NewBinding(key.WithKeys("l", "enter"), key.WithHelp("l", "log in"))
	keyRegister = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "register"))
	keyForgot   = key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "forgot password"))
)

// authView is shown while signed out. It hosts the login, register and
// password reset forms.
type authView struct {
	state      *SharedState
	form       formPanel
	lastTenant string
	status     string
	err        error
}

type lastTenantMsg struct {
	slug string
}

type authResultMsg struct {
	session *domain.Session
	status  string
	err     error
}

func newAuthView(state *SharedState) *authView {
	return &authView{state: state}
}

func (v *authView) Init() tea.Cmd {
	auth := v.state.App.Auth
	return func() tea.Msg {
		slug, _ := auth.LastTenant(context.Background())
		return lastTenantMsg{slug: slug}
	}
}

func (v *authView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case lastTenantMsg:
		v.lastTenant = msg.slug
		return v, nil
	case authResultMsg:
		v.err, v.status = msg.err, msg.status
		if msg.err == nil && msg.session != nil {
			sess := msg.session
			return v, func() tea.Msg { return signedInMsg{session: sess} }
		}
		return v, nil
	}

	if v.form.active() {
		return v, v.form.update(msg)
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	auth := v.state.App.Auth
	switch {
	case key.Matches(k, keyLogin):
		in := &service.LoginInput{TenantSlug: v.lastTenant}
		return v, v.form.open("Log in", loginForm(in), func() tea.Cmd {
			return func() tea.Msg { return login(auth, *in) }
		})
	case key.Matches(k, keyRegister):
		in := &service.RegisterInput{}
		return v, v.form.open("Create an organization", registerForm(in), func() tea.Cmd {
			return func() tea.Msg { return register(auth, *in) }
		})
	case key.Matches(k, keyForgot):
		email, tenant := "", v.lastTenant
		form := newForm(huh.NewGroup(
			huh.NewInput().Title("Email").Value(&email).Validate(required("email")),
			huh.NewInput().Title("Organization slug").Description("Optional").Value(&tenant),
		))
		return v, v.form.open("Reset password", form, func() tea.Cmd {
			return func() tea.Msg {
				status, err := auth.ForgotPassword(context.Background(), email, tenant)
				return authResultMsg{status: status, err: err}
			}
		})
	}
	return v, nil
}

func login(auth service.AuthService, in service.LoginInput) tea.Msg {
	sess, err := auth.Login(context.Background(), in)
	return authResultMsg{session: sess, err: err}
}

func register(auth service.AuthService, in service.RegisterInput) tea.Msg {
	sess, err := auth.Register(context.Background(), in)
	return authResultMsg{session: sess, err: err}
}

func (v *authView) View() string {
	if v.form.active() {
		return v.form.view()
	}
	var b strings.Builder
	b.WriteString("\n" + formatter.Bold("Sign in to your workspace") + "\n\n")
	if v.lastTenant != "" {
		b.WriteString(formatter.Dim("Last organization: "+v.lastTenant) + "\n\n")
	}
	b.WriteString("  l  Log in\n  r  Register a new organization\n  f  Forgot password\n")
	if v.err != nil {
		b.WriteString("\n" + formatter.ErrorLine(v.err) + "\n")
	} else if v.status != "" {
		b.WriteString("\n" + formatter.StyleGreen.Render(v.status) + "\n")
	}
	return b.String()
}

// Page is empty: the auth screen has no sidebar entry.
func (v *authView) Page() navigation.Page { return "" }

func (v *authView) ShortHelp() []key.Binding {
	if v.form.active() {
		return nil
	}
	return []key.Binding{keyLogin, keyRegister, keyForgot}
}

func (v *authView) CapturesInput() bool { return v.form.active() }
