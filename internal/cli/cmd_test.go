package cli

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/pulseforge/pulseforge/internal/api"
	"github.com/pulseforge/pulseforge/internal/api/apitest"
	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/pulseforge/pulseforge/internal/repository"
	"github.com/pulseforge/pulseforge/internal/service"
	"github.com/pulseforge/pulseforge/internal/session"
	"github.com/pulseforge/pulseforge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliHarness struct {
	srv   *apitest.Server
	store *session.Store
	app   *App
}

// testApp wires every service against the fake backend and an in-memory
// session store.
func testApp(t *testing.T) *cliHarness {
	t.Helper()
	noTerminal(t)

	srv := apitest.New(t)
	database := testutil.NewTestDB(t)
	store := session.NewStore(database, testutil.NewTestUoW(database))
	client := api.NewClient(api.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, store, nil)

	return &cliHarness{
		srv:   srv,
		store: store,
		app: &App{
			Auth:      service.NewAuthService(client, store),
			Projects:  service.NewProjectService(client),
			Tasks:     service.NewTaskService(client),
			Dashboard: service.NewDashboardService(client),
			Calendar:  service.NewCalendarService(client),
			System:    service.NewSystemService(client),
			Community: service.NewCommunityService(client),
			Support:   service.NewSupportService(client),
			Profile:   service.NewProfileService(store),
			Settings:  service.NewSettingsService(repository.NewSQLiteStorageRepo(database), store),
		},
	}
}

// noTerminal keeps commands from opening interactive forms or the TUI.
func noTerminal(t *testing.T) {
	t.Helper()
	prevTTY, prevRun := stdinIsTerminal, runProgram
	stdinIsTerminal = func() bool { return false }
	runProgram = func(*App) error {
		t.Fatal("TUI started in a test")
		return nil
	}
	t.Cleanup(func() {
		stdinIsTerminal, runProgram = prevTTY, prevRun
	})
}

// signIn creates an account on the fake backend and stores its session.
func (h *cliHarness) signIn(t *testing.T, role domain.Role) domain.AuthUser {
	t.Helper()
	var u domain.AuthUser
	if role.IsSystemAdmin() {
		u = h.srv.AddUser("pulseforge", "PulseForge", "Root", "root@pulseforge.test", "secret1", role)
	} else {
		u = h.srv.AddUser("acme", "Acme Corp", "Ada Lovelace", "ada@acme.test", "secret1", role)
	}
	require.NoError(t, h.store.WriteSession(context.Background(), &domain.Session{Token: h.srv.TokenFor(u), User: u}))
	return u
}

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- Root ---

func TestRootCmd_PrintsHelpWithoutTerminal(t *testing.T) {
	h := testApp(t)

	out, err := executeCmd(t, h.app)
	require.NoError(t, err)
	assert.Contains(t, out, "pulseforge")
	assert.Contains(t, out, "dashboard")
}

func TestRootCmd_StartsTUIOnTerminal(t *testing.T) {
	h := testApp(t)
	stdinIsTerminal = func() bool { return true }
	started := false
	runProgram = func(*App) error {
		started = true
		return nil
	}

	_, err := executeCmd(t, h.app)
	require.NoError(t, err)
	assert.True(t, started)
}

// --- Auth ---

func TestLoginCmd_StoresSession(t *testing.T) {
	h := testApp(t)
	h.srv.AddUser("acme", "Acme Corp", "Ada Lovelace", "ada@acme.test", "secret1", domain.RoleOrgAdmin)

	out, err := executeCmd(t, h.app, "login", "--tenant", "ACME", "--email", "ada@acme.test", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Ada Lovelace (acme)")

	sess, err := h.store.GetSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "ada@acme.test", sess.User.Email)
	assert.NotEmpty(t, sess.Token)
}

func TestLoginCmd_DefaultsToLastTenant(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)
	require.NoError(t, h.store.Logout(context.Background()))

	out, err := executeCmd(t, h.app, "login", "--email", "ada@acme.test", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "(acme)")
}

func TestLoginCmd_BadPasswordShowsServerMessage(t *testing.T) {
	h := testApp(t)
	h.srv.AddUser("acme", "Acme Corp", "Ada Lovelace", "ada@acme.test", "secret1", domain.RoleOrgAdmin)

	_, err := executeCmd(t, h.app, "login", "--tenant", "acme", "--email", "ada@acme.test", "--password", "wrong")
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestLoginCmd_MissingEmail(t *testing.T) {
	h := testApp(t)

	_, err := executeCmd(t, h.app, "login", "--tenant", "acme")
	require.Error(t, err)
	assert.Equal(t, "Enter email first.", err.Error())
}

func TestRegisterCmd_CreatesOrganization(t *testing.T) {
	h := testApp(t)

	out, err := executeCmd(t, h.app, "register",
		"--tenant", "globex", "--tenant-name", "Globex",
		"--name", "Hank Scorpio", "--email", "hank@globex.test", "--password", "volcano")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered Globex and logged in as Hank Scorpio")

	user, err := h.store.GetCurrentUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "globex", user.TenantSlug)
}

func TestRegisterCmd_ShortPassword(t *testing.T) {
	h := testApp(t)

	_, err := executeCmd(t, h.app, "register",
		"--tenant", "globex", "--tenant-name", "Globex",
		"--email", "hank@globex.test", "--password", "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 6 characters")
}

func TestForgotPasswordCmd_PrintsStatus(t *testing.T) {
	h := testApp(t)

	out, err := executeCmd(t, h.app, "forgot-password", "--email", "ada@acme.test", "--tenant", "acme")
	require.NoError(t, err)
	assert.Contains(t, out, "reset email has been sent")
}

func TestLogoutCmd_ClearsSession(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)

	out, err := executeCmd(t, h.app, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")

	sess, err := h.store.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestWhoAmICmd(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)

	out, err := executeCmd(t, h.app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@acme.test")
	assert.Contains(t, out, "Token expires")
}

func TestWhoAmICmd_SignedOut(t *testing.T) {
	h := testApp(t)

	_, err := executeCmd(t, h.app, "whoami")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrNotAuthenticated)
}

// --- Workspace ---

func TestProjectCmd_AddThenList(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)

	out, err := executeCmd(t, h.app, "project", "add",
		"--name", "Website relaunch", "--assignees", "ada, grace", "--start", "2026-03-01", "--duration", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Website relaunch")
	assert.Contains(t, out, "due 2026-03-10")

	out, err = executeCmd(t, h.app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Website relaunch")
	assert.Contains(t, out, "ada, grace")
}

func TestProjectCmd_AddRequiresName(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)

	_, err := executeCmd(t, h.app, "project", "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"name" not set`)
}

func TestProjectCmd_RejectsUnknownStatus(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)

	_, err := executeCmd(t, h.app, "project", "add", "--name", "X", "--status", "paused")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paused")
}

func TestProjectCmd_ListEmpty(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)

	out, err := executeCmd(t, h.app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects yet.")
}

func TestProjectCmd_ServerErrorMessage(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)
	h.srv.Fail(http.MethodGet, "/api/v1/projects", http.StatusInternalServerError, "database unavailable")

	_, err := executeCmd(t, h.app, "project", "list")
	require.Error(t, err)
	assert.Equal(t, "database unavailable", err.Error())
}

func TestProjectCmd_SignedOut(t *testing.T) {
	h := testApp(t)

	_, err := executeCmd(t, h.app, "project", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrNotAuthenticated)
}

func TestTaskCmd_AddThenList(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)
	p := h.srv.SeedProject(testutil.NewTestProject("Mobile app"))

	out, err := executeCmd(t, h.app, "task", "add",
		"--project", formatID(p.ID), "--title", "Design login", "--priority", "HIGH", "--subtasks", "wireframe,review")
	require.NoError(t, err)
	assert.Contains(t, out, "Created task Design login")
	assert.Contains(t, out, "in Mobile app")

	out, err = executeCmd(t, h.app, "task", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Design login")
	assert.Contains(t, out, "Mobile app")
}

func TestTaskCmd_UnknownProject(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)

	_, err := executeCmd(t, h.app, "task", "add", "--project", "999", "--title", "Orphan")
	require.Error(t, err)
	assert.Equal(t, "project not found for this tenant", err.Error())
}

func TestDashboardCmd_Org(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)
	h.srv.SeedProject(testutil.NewTestProject("Alpha"))
	h.srv.SeedProject(testutil.NewTestProject("Beta", testutil.WithProjectStatus(domain.ProjectDone)))

	out, err := executeCmd(t, h.app, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "DASHBOARD")
	assert.Contains(t, out, "1 active · 1 done · 0 blocked")
	assert.Contains(t, out, "Recent projects")
	assert.Contains(t, out, "Alpha")
}

func TestDashboardCmd_System(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleSystemAdmin)
	h.srv.AddUser("acme", "Acme Corp", "Ada", "ada@acme.test", "secret1", domain.RoleOrgAdmin)

	out, err := executeCmd(t, h.app, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "SYSTEM DASHBOARD")
	assert.Contains(t, out, "Acme Corp")
}

func TestAnalyticsCmd_Org(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)
	h.srv.SeedProject(testutil.NewTestProject("Alpha", testutil.WithProjectStatus(domain.ProjectBlocked)))

	out, err := executeCmd(t, h.app, "analytics")
	require.NoError(t, err)
	assert.Contains(t, out, "Status distribution")
}

func TestNotificationsCmd_Unavailable(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)
	h.srv.Fail(http.MethodGet, "/api/v1/projects", http.StatusBadGateway, "")

	out, err := executeCmd(t, h.app, "notifications")
	require.NoError(t, err)
	assert.Contains(t, out, "Notifications unavailable")
}

func TestMenuCmd_SystemLabels(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleSystemAdmin)

	out, err := executeCmd(t, h.app, "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration")
	assert.Contains(t, out, "Support")
	assert.NotContains(t, out, "Projects")
}

func TestMenuCmd_SignedOutIsOrgMenu(t *testing.T) {
	h := testApp(t)

	out, err := executeCmd(t, h.app, "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "Projects")
	assert.Contains(t, out, "Forum")
}

// --- Calendar ---

func TestCalendarCmd_MonthAndDay(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)
	start := time.Date(2026, 5, 4, 0, 0, 0, 0, time.Local)
	h.srv.SeedProject(testutil.NewTestProject("Launch", testutil.WithStartDate(start), testutil.WithDueDate(start.AddDate(0, 0, 3))))

	out, err := executeCmd(t, h.app, "calendar", "--month", "2026-05", "--day", "2026-05-04")
	require.NoError(t, err)
	assert.Contains(t, out, "May 2026")
	assert.Contains(t, out, "Launch starts")
}

func TestCalendarCmd_PrintsMonthWhenUpdatesFail(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleSystemAdmin)
	start := time.Date(2026, 5, 4, 0, 0, 0, 0, time.Local)
	h.srv.SeedProject(testutil.NewTestProject("Launch", testutil.WithStartDate(start)))
	h.srv.Fail(http.MethodGet, "/api/v1/system/updates", http.StatusInternalServerError, "updates offline")

	out, err := executeCmd(t, h.app, "calendar", "--month", "2026-05", "--day", "2026-05-04")
	require.Error(t, err)
	assert.Equal(t, "updates offline", err.Error())
	assert.Contains(t, out, "May 2026")
	assert.Contains(t, out, "Launch starts")
}

func TestCalendarCmd_BadMonth(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)

	_, err := executeCmd(t, h.app, "calendar", "--month", "May")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "month must use YYYY-MM")
}

// --- System ---

func TestSystemCmd_TenantLifecycle(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleSystemAdmin)

	out, err := executeCmd(t, h.app, "system", "tenant", "add", "--slug", "  Initech ", "--name", "Initech")
	require.NoError(t, err)
	assert.Contains(t, out, "Created tenant Initech (initech)")

	out, err = executeCmd(t, h.app, "system", "tenants")
	require.NoError(t, err)
	assert.Contains(t, out, "initech")
}

func TestSystemCmd_TenantAddRequiresName(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleSystemAdmin)

	_, err := executeCmd(t, h.app, "system", "tenant", "add", "--slug", "initech")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestSystemCmd_TenantUpdateBadID(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleSystemAdmin)

	_, err := executeCmd(t, h.app, "system", "tenant", "update", "abc", "--slug", "x", "--name", "X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid id "abc"`)
}

func TestSystemCmd_Logs(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleSystemAdmin)
	h.srv.SeedLog(domain.SystemLog{Method: "GET", Path: "/api/v1/projects", StatusCode: 200, LatencyMS: 12, CreatedAt: time.Now()})

	out, err := executeCmd(t, h.app, "system", "logs", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "/api/v1/projects")
	assert.Contains(t, out, "12ms")
}

func TestSystemCmd_ForbiddenForOrgAdmin(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)

	_, err := executeCmd(t, h.app, "system", "orgs")
	require.Error(t, err)
	assert.True(t, api.IsStatus(err, http.StatusForbidden))
}

func TestSystemCmd_ScheduleUpdate(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleSystemAdmin)
	date := time.Now().AddDate(0, 0, 7).Format(domain.DateLayout)

	out, err := executeCmd(t, h.app, "system", "update", "add",
		"--date", date, "--title", "Dark mode", "--brief", "New theme", "--expectations", "No downtime")
	require.NoError(t, err)
	assert.Contains(t, out, "Scheduled Dark mode for "+date)
	assert.Contains(t, out, "Recipients")

	out, err = executeCmd(t, h.app, "system", "updates")
	require.NoError(t, err)
	assert.Contains(t, out, "Dark mode")
}

func TestSystemCmd_ScheduleUpdateRejectsPastDate(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleSystemAdmin)

	_, err := executeCmd(t, h.app, "system", "update", "add",
		"--date", "2020-01-01", "--title", "Old", "--brief", "b", "--expectations", "e")
	require.Error(t, err)
	assert.Equal(t, "Select a date after today.", err.Error())
}

// --- Account ---

func TestProfileCmd_ShowAndRename(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)

	out, err := executeCmd(t, h.app, "profile", "rename", "Countess", "Ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Display name set to Countess Ada")

	out, err = executeCmd(t, h.app, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Countess Ada")
	assert.Contains(t, out, "Acme Corp")
}

func TestSettingsCmd_SetAndShow(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)

	out, err := executeCmd(t, h.app, "settings", "set", "logRetentionDays", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved logRetentionDays")

	out, err = executeCmd(t, h.app, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "30")
	assert.Contains(t, out, "East Africa Time")
}

func TestSettingsCmd_UnknownKey(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)

	_, err := executeCmd(t, h.app, "settings", "set", "colour", "red")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Unknown setting "colour"`)
}

func TestSupportCmd_Request(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)

	out, err := executeCmd(t, h.app, "support", "request", "--subject", "Invoices", "--message", "Missing PDF")
	require.NoError(t, err)
	assert.Contains(t, out, "sent")

	reqs := h.srv.SupportRequests()
	require.Len(t, reqs, 1)
	assert.Equal(t, domain.SupportNormal, reqs[0].Priority)
}

func TestNotifyCmd_Test(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)

	_, err := executeCmd(t, h.app, "notify", "test", "--subject", "Hello", "--message", "Ping")
	require.NoError(t, err)

	mail := h.srv.Mail()
	require.Len(t, mail, 1)
	assert.Equal(t, "ada@acme.test", mail[0].Email)
}

// --- Community ---

func TestForumCmd_PostAndSearch(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)

	out, err := executeCmd(t, h.app, "forum", "post", "--title", "Release notes", "--body", "Shipping Friday")
	require.NoError(t, err)
	assert.Contains(t, out, "Posted Release notes")

	out, err = executeCmd(t, h.app, "forum", "list", "--search", "FRIDAY")
	require.NoError(t, err)
	assert.Contains(t, out, "Release notes")

	out, err = executeCmd(t, h.app, "forum", "list", "--search", "nothing-matches")
	require.NoError(t, err)
	assert.Contains(t, out, "No posts yet.")
}

func TestIssueCmd_AddWithProject(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)
	p := h.srv.SeedProject(testutil.NewTestProject("Billing"))

	out, err := executeCmd(t, h.app, "issue", "add",
		"--title", "Invoice totals wrong", "--description", "Rounding", "--severity", "high", "--project", formatID(p.ID))
	require.NoError(t, err)
	assert.Contains(t, out, "Reported issue Invoice totals wrong")

	out, err = executeCmd(t, h.app, "issue", "list", "--search", "billing")
	require.NoError(t, err)
	assert.Contains(t, out, "Invoice totals wrong")
}

func TestIssueCmd_RejectsUnknownSeverity(t *testing.T) {
	h := testApp(t)
	h.signIn(t, domain.RoleOrgAdmin)

	_, err := executeCmd(t, h.app, "issue", "add", "--title", "x", "--description", "y", "--severity", "urgent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "urgent")
}
