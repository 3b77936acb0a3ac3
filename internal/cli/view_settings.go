package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pulseforge/pulseforge/internal/cli/formatter"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/navigation"
)

var (
	keyEditSettings = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit settings"))
	keyTestEmail    = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "test email"))
	keyNewTenant    = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new tenant"))
	keyEditTenant   = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "update tenant"))
)

// settingsView edits workspace settings. For system admins it is the
// Configuration page and also manages tenants.
type settingsView struct {
	state    *SharedState
	load     loader
	form     formPanel
	settings domain.WorkspaceSettings
	tenants  []domain.SystemTenant
	cursor   int
}

type settingsLoadedMsg struct {
	settings domain.WorkspaceSettings
	tenants  []domain.SystemTenant
	err      error
}

type settingsSavedMsg struct {
	settings domain.WorkspaceSettings
	err      error
}

// statusMsg carries a backend status line, e.g. from a test email.
type statusMsg struct {
	status string
	err    error
}

type tenantSavedMsg struct {
	tenant  *domain.SystemTenant
	created bool
	err     error
}

func newSettingsView(state *SharedState) *settingsView {
	return &settingsView{state: state, load: newLoader()}
}

func (v *settingsView) Init() tea.Cmd { return v.reload() }

type settingsPage struct {
	settings domain.WorkspaceSettings
	tenants  []domain.SystemTenant
}

func (v *settingsView) reload() tea.Cmd {
	app, system := v.state.App, v.state.Role().IsSystemAdmin()
	return v.load.start(fetch(func(ctx context.Context) (settingsPage, error) {
		ws, err := app.Settings.Get(ctx)
		if err != nil || !system {
			return settingsPage{settings: ws}, err
		}
		tenants, err := app.System.Tenants(ctx)
		return settingsPage{settings: ws, tenants: tenants}, err
	}, func(p settingsPage, err error) tea.Msg {
		return settingsLoadedMsg{settings: p.settings, tenants: p.tenants, err: err}
	}))
}

func (v *settingsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		v.load.done(msg.err)
		v.settings, v.tenants = msg.settings, msg.tenants
		v.cursor = min(v.cursor, max(len(v.tenants)-1, 0))
		return v, nil
	case settingsSavedMsg:
		if msg.err != nil {
			return v, flash(formatter.ErrorLine(msg.err))
		}
		v.settings = msg.settings
		return v, flash(formatter.StyleGreen.Render("Settings saved."))
	case statusMsg:
		if msg.err != nil {
			return v, flash(formatter.ErrorLine(msg.err))
		}
		return v, flash(formatter.StyleGreen.Render(msg.status))
	case tenantSavedMsg:
		return v, v.applyTenant(msg)
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
	system := v.state.Role().IsSystemAdmin()
	switch {
	case key.Matches(k, keyReload):
		return v, v.reload()
	case key.Matches(k, keyEditSettings):
		return v, v.openSettings()
	case key.Matches(k, keyTestEmail):
		return v, v.openTestEmail()
	case !system && key.Matches(k, keySupport):
		return v, v.openSupport()
	case system && key.Matches(k, keyNewTenant):
		return v, v.openTenant(nil)
	case system && key.Matches(k, keyEditTenant) && len(v.tenants) > 0:
		t := v.tenants[v.cursor]
		return v, v.openTenant(&t)
	case system && key.Matches(k, keyUpDown):
		if s := k.String(); s == "up" || s == "k" {
			v.cursor = max(v.cursor-1, 0)
		} else {
			v.cursor = min(v.cursor+1, max(len(v.tenants)-1, 0))
		}
	}
	return v, nil
}

func (v *settingsView) applyTenant(msg tenantSavedMsg) tea.Cmd {
	if msg.err != nil {
		return flash(formatter.ErrorLine(msg.err))
	}
	t := *msg.tenant
	if msg.created {
		v.tenants = prepend(v.tenants, t)
		v.cursor = 0
		return flash(formatter.StyleGreen.Render(fmt.Sprintf("Created tenant %s (%s) [#%d]", t.Name, t.Slug, t.ID)))
	}
	for i := range v.tenants {
		if v.tenants[i].ID == t.ID {
			v.tenants[i] = t
		}
	}
	return flash(formatter.StyleGreen.Render(fmt.Sprintf("Updated tenant %s (%s)", t.Name, t.Slug)))
}

func (v *settingsView) openSettings() tea.Cmd {
	values := &settingsFormValues{WorkspaceSettings: v.settings}
	settings := v.state.App.Settings
	return v.form.open("Workspace settings", settingsForm(values), func() tea.Cmd {
		ws := values.settings()
		return func() tea.Msg {
			saved, err := settings.Save(context.Background(), ws)
			return settingsSavedMsg{settings: saved, err: err}
		}
	})
}

func (v *settingsView) openTestEmail() tea.Cmd {
	in := &domain.TestNotification{}
	support := v.state.App.Support
	return v.form.open("Test notification", testNotificationForm(in), func() tea.Cmd {
		return func() tea.Msg {
			status, err := support.TestNotification(context.Background(), *in)
			return statusMsg{status: status, err: err}
		}
	})
}

// openSupport is the org support mailbox. System admins reach the same
// form from the Support page.
func (v *settingsView) openSupport() tea.Cmd {
	in := &domain.SupportRequest{}
	support := v.state.App.Support
	return v.form.open("Support request", supportForm(in), func() tea.Cmd {
		return func() tea.Msg { return submitSupport(support, *in) }
	})
}

// openTenant edits existing, or creates a tenant when existing is nil.
func (v *settingsView) openTenant(existing *domain.SystemTenant) tea.Cmd {
	in := &domain.TenantInput{}
	title := "New tenant"
	if existing != nil {
		in.Slug, in.Name, in.LogoURL = existing.Slug, existing.Name, existing.LogoURL
		title = fmt.Sprintf("Update tenant #%d", existing.ID)
	}
	system := v.state.App.System
	return v.form.open(title, tenantForm(in), func() tea.Cmd {
		return func() tea.Msg {
			ctx := context.Background()
			if existing == nil {
				t, err := system.CreateTenant(ctx, *in)
				return tenantSavedMsg{tenant: t, created: true, err: err}
			}
			t, err := system.UpdateTenant(ctx, existing.ID, *in)
			return tenantSavedMsg{tenant: t, err: err}
		}
	})
}

func (v *settingsView) View() string {
	if v.form.active() {
		return v.form.view()
	}
	return v.load.render(func() string {
		var b strings.Builder
		b.WriteString(formatter.Header("Workspace settings") + "\n")
		b.WriteString(formatter.FormatSettings(v.settings))
		if !v.state.Role().IsSystemAdmin() {
			b.WriteString("\n" + formatter.Dim("Press s to write to platform support.") + "\n")
			return b.String()
		}
		b.WriteString("\n" + formatter.Header("Tenants") + "\n")
		if len(v.tenants) == 0 {
			b.WriteString(formatter.Dim("No tenants yet.") + "\n")
			return b.String()
		}
		for i, t := range v.tenants {
			marker := "  "
			if i == v.cursor {
				marker = formatter.StyleHeader.Render("▸ ")
			}
			fmt.Fprintf(&b, "%s#%-4d %-20s %s %s\n", marker, t.ID, t.Slug, t.Name, formatter.Dim(formatter.OrDash(t.LogoURL)))
		}
		return b.String()
	})
}

func (v *settingsView) Page() navigation.Page { return navigation.Settings }

func (v *settingsView) ShortHelp() []key.Binding {
	if v.form.active() {
		return nil
	}
	keys := []key.Binding{keyEditSettings, keyTestEmail}
	if v.state.Role().IsSystemAdmin() {
		keys = append(keys, keyUpDown, keyNewTenant, keyEditTenant)
	} else {
		keys = append(keys, keySupport)
	}
	return append(keys, keyReload)
}

func (v *settingsView) CapturesInput() bool { return v.form.active() }
