package navigation

import (
	"testing"

	"github.com/pulseforge/pulseforge/internal/domain"
	"github.com/stretchr/testify/assert"
)

func pagesOf(items []Item) []Page {
	out := make([]Page, len(items))
	for i, it := range items {
		out[i] = it.Page
	}
	return out
}

func labelsOf(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func TestSidebar_SystemAdmin(t *testing.T) {
	got := Sidebar(domain.RoleSystemAdmin)
	assert.Equal(t, []Page{Dashboard, Analytics, Calendar, Settings, Admin}, pagesOf(got))
	assert.Equal(t, []string{"Dashboard", "Analytics", "Calendar", "Configuration", "Support"}, labelsOf(got))
}

func TestSidebar_OrgAdmin(t *testing.T) {
	got := Sidebar(domain.RoleOrgAdmin)
	assert.Equal(t, []Page{Dashboard, Projects, Tasks, Analytics, Calendar, Profile, Forum, Issues, Settings}, pagesOf(got))
	assert.Equal(t, "Settings", got[len(got)-1].Label)
}

func TestSidebar_UnknownRoleIsOrgAdmin(t *testing.T) {
	assert.Equal(t, Sidebar(domain.RoleOrgAdmin), Sidebar(domain.NormalizeRole("owner")))
	assert.Equal(t, Sidebar(domain.RoleOrgAdmin), Sidebar(domain.Role("")))
}

func TestNavPages(t *testing.T) {
	assert.Equal(t,
		[]string{"Dashboard", "Analytics", "Calendar", "Support", "Configuration"},
		labelsOf(NavPages(domain.RoleSystemAdmin)))
	assert.Equal(t,
		[]string{"Dashboard", "Projects", "Tasks", "Analytics", "Calendar", "Profile", "Settings"},
		labelsOf(NavPages(domain.RoleOrgAdmin)))
}

func TestHeaderTitle(t *testing.T) {
	tests := []struct {
		role domain.Role
		page Page
		want string
	}{
		{domain.RoleSystemAdmin, Admin, "Support"},
		{domain.RoleSystemAdmin, Settings, "Configuration"},
		{domain.RoleSystemAdmin, Dashboard, "Dashboard"},
		{domain.RoleOrgAdmin, Admin, "Admin"},
		{domain.RoleOrgAdmin, Settings, "Settings"},
		{domain.RoleOrgAdmin, Forum, "Forum"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.page), func(t *testing.T) {
			assert.Equal(t, tt.want, HeaderTitle(tt.role, tt.page))
		})
	}
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed(domain.RoleSystemAdmin, Admin))
	assert.False(t, Allowed(domain.RoleSystemAdmin, Projects))
	assert.False(t, Allowed(domain.RoleOrgAdmin, Admin))
	assert.True(t, Allowed(domain.RoleOrgAdmin, Issues))
}

func TestHint(t *testing.T) {
	assert.Equal(t, "Tenants and notifications", Hint(domain.RoleSystemAdmin, Settings))
	assert.Equal(t, "Workspace preferences", Hint(domain.RoleOrgAdmin, Settings))
	for _, p := range Menu() {
		assert.NotEmpty(t, Hint(domain.RoleOrgAdmin, p), p)
	}
}

func TestMenusAreFreshSlices(t *testing.T) {
	first := Sidebar(domain.RoleSystemAdmin)
	first[0] = Item{Page: Projects, Label: "Hacked"}
	m := Menu()
	m[0] = Admin

	assert.Equal(t, Dashboard, Sidebar(domain.RoleSystemAdmin)[0].Page)
	assert.Equal(t, Dashboard, Menu()[0])
	assert.Len(t, Sidebar(domain.RoleOrgAdmin), 9)
}

func TestParsePage(t *testing.T) {
	p, ok := ParsePage(domain.RoleSystemAdmin, "configuration")
	assert.True(t, ok)
	assert.Equal(t, Settings, p)

	p, ok = ParsePage(domain.RoleOrgAdmin, "Tasks")
	assert.True(t, ok)
	assert.Equal(t, Tasks, p)

	_, ok = ParsePage(domain.RoleOrgAdmin, "billing")
	assert.False(t, ok)
}
